package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds a field of a partial-update payload and tracks whether the
// field was present at all. Three states are distinguished:
//
//   - absent:        Set == false (leave the stored value unchanged)
//   - explicit null: Set == true, Valid == false (clear the stored value)
//   - value:         Set == true, Valid == true
//
// The zero Value is absent, so update payload structs need no constructor.
type Value[T any] struct {
	V     T
	Set   bool
	Valid bool
}

// New returns a present, non-null Value holding v.
func New[T any](v T) Value[T] {
	return Value[T]{V: v, Set: true, Valid: true}
}

// Null returns a present but null Value.
func Null[T any]() Value[T] {
	return Value[T]{Set: true}
}

// Get returns the held value and whether it is present and non-null.
func (o Value[T]) Get() (T, bool) {
	return o.V, o.Set && o.Valid
}

// Ptr returns a pointer to the held value, or nil when absent or null.
func (o Value[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.V
	return &v
}

var nullLiteral = []byte("null")

// UnmarshalJSON implements [json.Unmarshaler]. It is only invoked for keys
// present in the payload, which is what makes the absent state observable.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, nullLiteral) {
		o.Valid = false
		return nil
	}

	if err := json.Unmarshal(data, &o.V); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return nullLiteral, nil
	}
	return json.Marshal(o.V)
}
