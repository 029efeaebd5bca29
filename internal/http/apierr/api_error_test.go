package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/pkg/validator"
)

func TestNew(t *testing.T) {
	t.Run("Should map not found to 404", func(t *testing.T) {
		res := New(apperr.ProductNotFoundErr)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, apperr.ProductNotFoundErr.Code(), res.Code)
	})

	t.Run("Should map a duplicate name to 400", func(t *testing.T) {
		res := New(apperr.CategoryNameTakenErr)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Should unwrap a wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("create category: %w", apperr.CategoryNameTakenErr.WrapParent(errors.New("duplicate key")))
		res := New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, apperr.CategoryNameTakenErr.Msg(), res.Message)
	})

	t.Run("Should map insufficient stock to 400", func(t *testing.T) {
		res := New(apperr.InsufficientStockErr)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Should map storage upload failure to 502", func(t *testing.T) {
		res := New(apperr.StorageUploadErr)

		assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	})

	t.Run("Should carry field details for validation errors", func(t *testing.T) {
		type payload struct {
			Nombre string `validate:"required"`
		}

		err := validator.NewDefaultValidator().Validate(payload{})
		require.Error(t, err)

		res := New(err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.NotNil(t, res.Details)
		require.Len(t, *res.Details, 1)
		assert.Equal(t, "Nombre", (*res.Details)[0].Field)
	})

	t.Run("Should fall back to internal server error", func(t *testing.T) {
		res := New(errors.New("boom"))

		assert.Equal(t, InternalServerErr, res)
	})
}
