package model

import (
	"time"
)

type Product struct {
	ID          int64      `json:"id"`
	Nombre      string     `json:"nombre"`
	Descripcion *string    `json:"descripcion"`
	Precio      float64    `json:"precio"`
	Stock       int        `json:"stock"`
	Activo      bool       `json:"activo"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	MediaURL    *string    `json:"media_url"`
	CategoriaID int64      `json:"categoria_id"`
}

// Deleted reports whether the product has been soft-deleted.
func (p Product) Deleted() bool {
	return p.DeletedAt != nil
}
