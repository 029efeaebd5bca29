package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrmz/tienda-catalog/pkg/optional"
)

func TestValueUnmarshalJSON(t *testing.T) {
	type payload struct {
		Name  optional.Value[string]  `json:"name"`
		Price optional.Value[float64] `json:"price"`
	}

	t.Run("Should leave absent fields unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"price": 9.5}`), &p))

		assert.False(t, p.Name.Set)
		assert.True(t, p.Price.Set)
		assert.True(t, p.Price.Valid)
		assert.Equal(t, 9.5, p.Price.V)
	})

	t.Run("Should mark explicit null as set but invalid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &p))

		assert.True(t, p.Name.Set)
		assert.False(t, p.Name.Valid)
	})

	t.Run("Should reject mistyped values", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"price": "free"}`), &p))
	})
}

func TestValueAccessors(t *testing.T) {
	t.Run("Should expose value through Get and Ptr", func(t *testing.T) {
		v := optional.New("hola")

		got, ok := v.Get()
		assert.True(t, ok)
		assert.Equal(t, "hola", got)
		require.NotNil(t, v.Ptr())
		assert.Equal(t, "hola", *v.Ptr())
	})

	t.Run("Should return nil pointer for null and absent", func(t *testing.T) {
		assert.Nil(t, optional.Null[string]().Ptr())

		var absent optional.Value[string]
		assert.Nil(t, absent.Ptr())
		_, ok := absent.Get()
		assert.False(t, ok)
	})
}
