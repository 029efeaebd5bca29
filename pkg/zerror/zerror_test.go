package zerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZError(t *testing.T) {
	t.Run("Should format without parent", func(t *testing.T) {
		err := NewNotFound("PRODUCT_NOT_FOUND", "product not found")

		assert.Equal(t, "Code=PRODUCT_NOT_FOUND, Msg=product not found", err.Error())
	})

	t.Run("Should format with parent", func(t *testing.T) {
		err := NewNotFound("PRODUCT_NOT_FOUND", "product not found").
			WrapParent(errors.New("no rows"))

		assert.Equal(t, "Code=PRODUCT_NOT_FOUND, Msg=product not found, Parent=(no rows)", err.Error())
	})

	t.Run("Should unwrap to the parent", func(t *testing.T) {
		parent := errors.New("no rows")
		err := NewNotFound("PRODUCT_NOT_FOUND", "product not found").WrapParent(parent)

		assert.ErrorIs(t, err, parent)
	})

	t.Run("Should match the predefined error after wrapping", func(t *testing.T) {
		base := NewConflict("CATEGORY_NAME_TAKEN", "name taken")
		err := fmt.Errorf("create category: %w", base.WrapParent(errors.New("duplicate key")))

		assert.ErrorIs(t, err, base)
	})

	t.Run("Should not match a different error", func(t *testing.T) {
		base := NewConflict("CATEGORY_NAME_TAKEN", "name taken")
		other := NewNotFound("CATEGORY_NOT_FOUND", "not found")

		assert.NotErrorIs(t, base, other)
	})

	t.Run("Should keep wrapping nil a no-op", func(t *testing.T) {
		base := NewBadRequest("INSUFFICIENT_STOCK", "insufficient stock")
		wrapped := base.WrapParent(nil)

		require.NoError(t, wrapped.Parent())
		assert.Equal(t, base, wrapped)
	})
}
