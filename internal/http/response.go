package http

import (
	"time"

	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/repository"
	"github.com/davidrmz/tienda-catalog/internal/service"
)

// CategoryResponse is the full category projection.
type CategoryResponse struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activa      bool    `json:"activa"`
}

// CategoryWithProductsResponse adds the category's non-deleted products.
type CategoryWithProductsResponse struct {
	CategoryResponse
	Productos []ProductResponse `json:"productos"`
}

// DeletedCategoryResponse is the soft-deleted category projection.
type DeletedCategoryResponse struct {
	CategoryResponse
	DeletedAt *time.Time `json:"deleted_at"`
}

// ProductResponse is the full product projection. Categoria is only
// populated on endpoints that nest the category.
type ProductResponse struct {
	ID          int64             `json:"id"`
	Nombre      string            `json:"nombre"`
	Descripcion *string           `json:"descripcion"`
	Precio      float64           `json:"precio"`
	Stock       int               `json:"stock"`
	Activo      bool              `json:"activo"`
	CategoriaID int64             `json:"categoria_id"`
	MediaURL    *string           `json:"media_url"`
	Categoria   *CategoryResponse `json:"categoria,omitempty"`
}

// ProductListItemResponse is the list projection: the category collapses to
// its name.
type ProductListItemResponse struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Stock       int     `json:"stock"`
	Activo      bool    `json:"activo"`
	CategoriaID int64   `json:"categoria_id"`
	MediaURL    *string `json:"media_url"`
	Categoria   string  `json:"categoria"`
}

// DeletedProductResponse is the soft-deleted product projection. Its
// category is optional because category soft-deletes do not cascade.
type DeletedProductResponse struct {
	ID          int64             `json:"id"`
	Nombre      string            `json:"nombre"`
	Descripcion *string           `json:"descripcion"`
	Precio      float64           `json:"precio"`
	Stock       int               `json:"stock"`
	Activo      bool              `json:"activo"`
	CategoriaID int64             `json:"categoria_id"`
	MediaURL    *string           `json:"media_url"`
	Categoria   *CategoryResponse `json:"categoria"`
	DeletedAt   *time.Time        `json:"deleted_at"`
}

// MessageResponse is the confirmation body returned by deletes.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

func newCategoryResponse(c model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activa:      c.Activa,
	}
}

func newCategoryWithProductsResponse(cwp service.CategoryWithProducts) CategoryWithProductsResponse {
	products := make([]ProductResponse, 0, len(cwp.Productos))
	for _, p := range cwp.Productos {
		products = append(products, newProductResponse(p))
	}

	return CategoryWithProductsResponse{
		CategoryResponse: newCategoryResponse(cwp.Category),
		Productos:        products,
	}
}

func newDeletedCategoryResponse(c model.Category) DeletedCategoryResponse {
	return DeletedCategoryResponse{
		CategoryResponse: newCategoryResponse(c),
		DeletedAt:        c.DeletedAt,
	}
}

func newProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Activo:      p.Activo,
		CategoriaID: p.CategoriaID,
		MediaURL:    p.MediaURL,
	}
}

func newProductWithCategoryResponse(pwc repository.ProductWithCategory) ProductResponse {
	res := newProductResponse(pwc.Product)
	if pwc.Categoria != nil {
		categoria := newCategoryResponse(*pwc.Categoria)
		res.Categoria = &categoria
	}
	return res
}

func newProductListItemResponse(item repository.ProductListItem) ProductListItemResponse {
	return ProductListItemResponse{
		ID:          item.Product.ID,
		Nombre:      item.Product.Nombre,
		Descripcion: item.Product.Descripcion,
		Precio:      item.Product.Precio,
		Stock:       item.Product.Stock,
		Activo:      item.Product.Activo,
		CategoriaID: item.Product.CategoriaID,
		MediaURL:    item.Product.MediaURL,
		Categoria:   item.CategoriaNombre,
	}
}

func newDeletedProductResponse(pwc repository.ProductWithCategory) DeletedProductResponse {
	res := DeletedProductResponse{
		ID:          pwc.Product.ID,
		Nombre:      pwc.Product.Nombre,
		Descripcion: pwc.Product.Descripcion,
		Precio:      pwc.Product.Precio,
		Stock:       pwc.Product.Stock,
		Activo:      pwc.Product.Activo,
		CategoriaID: pwc.Product.CategoriaID,
		MediaURL:    pwc.Product.MediaURL,
		DeletedAt:   pwc.Product.DeletedAt,
	}
	if pwc.Categoria != nil {
		categoria := newCategoryResponse(*pwc.Categoria)
		res.Categoria = &categoria
	}
	return res
}
