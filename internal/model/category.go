package model

import (
	"time"
)

// Category groups products. Names are unique among non-deleted categories.
type Category struct {
	ID          int64      `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion *string    `json:"descripcion"`
	Activa      bool       `json:"activa"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the category has been soft-deleted.
func (c Category) Deleted() bool {
	return c.DeletedAt != nil
}
