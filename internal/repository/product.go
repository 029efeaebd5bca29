package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/storage/db"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
)

type CreateProductParams struct {
	Nombre      string
	Descripcion *string
	Precio      float64
	Stock       int
	Activo      bool
	CategoriaID int64
	MediaURL    *string
}

type UpdateProductParams struct {
	Nombre      optional.Value[string]
	Descripcion optional.Value[string]
	Precio      optional.Value[float64]
	Stock       optional.Value[int]
	Activo      optional.Value[bool]
	CategoriaID optional.Value[int64]
	MediaURL    optional.Value[string]
}

// ProductWithCategory pairs a product with its category. The category is nil
// when it has itself been soft-deleted, which soft-deleted products tolerate.
type ProductWithCategory struct {
	Product   model.Product
	Categoria *model.Category
}

// ProductListItem is the list projection row: the category is collapsed to
// its name.
type ProductListItem struct {
	Product         model.Product
	CategoriaNombre string
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	Create(ctx context.Context, params CreateProductParams) (model.Product, error)
	Get(ctx context.Context, id int64) (model.Product, error)
	GetWithCategory(ctx context.Context, id int64) (ProductWithCategory, error)
	List(ctx context.Context) ([]ProductListItem, error)
	ListDeleted(ctx context.Context) ([]ProductWithCategory, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	Update(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	Deactivate(ctx context.Context, id int64) (model.Product, error)
	DecrementStock(ctx context.Context, id int64, cantidad int) (model.Product, error)
	SoftDelete(ctx context.Context, id int64) (model.Product, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, nombre, descripcion, precio, stock, activo, deleted_at, media_url, categoria_id`

func (r productRepository) Create(ctx context.Context, params CreateProductParams) (model.Product, error) {
	precio, err := numericFromFloat(params.Precio)
	if err != nil {
		return model.Product{}, fmt.Errorf("convert precio: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO productos (nombre, descripcion, precio, stock, activo, media_url, categoria_id)
		VALUES (@nombre, @descripcion, @precio, @stock, @activo, @media_url, @categoria_id)
		RETURNING `+productColumns+`;
	`, pgx.NamedArgs{
		"nombre":       params.Nombre,
		"descripcion":  params.Descripcion,
		"precio":       precio,
		"stock":        params.Stock,
		"activo":       params.Activo,
		"media_url":    params.MediaURL,
		"categoria_id": params.CategoriaID,
	})

	product, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (r productRepository) Get(ctx context.Context, id int64) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM productos
		WHERE id = @id AND deleted_at IS NULL;
	`, pgx.NamedArgs{"id": id})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r productRepository) GetWithCategory(ctx context.Context, id int64) (ProductWithCategory, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productJoinColumns+`
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id AND c.deleted_at IS NULL
		WHERE p.id = @id AND p.deleted_at IS NULL;
	`, pgx.NamedArgs{"id": id})

	result, err := scanProductWithCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductWithCategory{}, apperr.ProductNotFoundErr
		}
		return ProductWithCategory{}, fmt.Errorf("get product with category: %w", err)
	}

	return result, nil
}

func (r productRepository) List(ctx context.Context) ([]ProductListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productPrefixedColumns+`, c.nombre
		FROM productos p
		JOIN categorias c ON c.id = p.categoria_id
		WHERE p.deleted_at IS NULL
		ORDER BY p.id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]ProductListItem, 0)
	for rows.Next() {
		var (
			item   ProductListItem
			precio pgtype.Numeric
		)
		if err := rows.Scan(
			&item.Product.ID, &item.Product.Nombre, &item.Product.Descripcion,
			&precio, &item.Product.Stock, &item.Product.Activo,
			&item.Product.DeletedAt, &item.Product.MediaURL, &item.Product.CategoriaID,
			&item.CategoriaNombre,
		); err != nil {
			return nil, fmt.Errorf("scan product list item: %w", err)
		}
		if item.Product.Precio, err = floatFromNumeric(precio); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return items, nil
}

func (r productRepository) ListDeleted(ctx context.Context) ([]ProductWithCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productJoinColumns+`
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id AND c.deleted_at IS NULL
		WHERE p.deleted_at IS NOT NULL
		ORDER BY p.id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list deleted products: %w", err)
	}
	defer rows.Close()

	results := make([]ProductWithCategory, 0)
	for rows.Next() {
		result, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deleted product: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted products: %w", err)
	}

	return results, nil
}

func (r productRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM productos
		WHERE categoria_id = @categoria_id AND deleted_at IS NULL
		ORDER BY id;
	`, pgx.NamedArgs{"categoria_id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products by category: %w", err)
	}

	return products, nil
}

func (r productRepository) Update(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	setPrecio := params.Precio.Set && params.Precio.Valid
	precio, err := numericFromFloat(params.Precio.V)
	if setPrecio && err != nil {
		return model.Product{}, fmt.Errorf("convert precio: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE productos
		SET nombre       = CASE WHEN @set_nombre THEN @nombre ELSE nombre END,
		    descripcion  = CASE WHEN @set_descripcion THEN @descripcion ELSE descripcion END,
		    precio       = CASE WHEN @set_precio THEN @precio ELSE precio END,
		    stock        = CASE WHEN @set_stock THEN @stock ELSE stock END,
		    activo       = CASE WHEN @set_activo THEN @activo ELSE activo END,
		    media_url    = CASE WHEN @set_media_url THEN @media_url ELSE media_url END,
		    categoria_id = CASE WHEN @set_categoria_id THEN @categoria_id ELSE categoria_id END
		WHERE id = @id AND deleted_at IS NULL
		RETURNING `+productColumns+`;
	`, pgx.NamedArgs{
		"id":               id,
		"set_nombre":       params.Nombre.Set && params.Nombre.Valid,
		"nombre":           params.Nombre.V,
		"set_descripcion":  params.Descripcion.Set,
		"descripcion":      params.Descripcion.Ptr(),
		"set_precio":       setPrecio,
		"precio":           precio,
		"set_stock":        params.Stock.Set && params.Stock.Valid,
		"stock":            params.Stock.V,
		"set_activo":       params.Activo.Set && params.Activo.Valid,
		"activo":           params.Activo.V,
		"set_media_url":    params.MediaURL.Set,
		"media_url":        params.MediaURL.Ptr(),
		"set_categoria_id": params.CategoriaID.Set && params.CategoriaID.Valid,
		"categoria_id":     params.CategoriaID.V,
	})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (r productRepository) Deactivate(ctx context.Context, id int64) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE productos
		SET activo = FALSE
		WHERE id = @id AND deleted_at IS NULL
		RETURNING `+productColumns+`;
	`, pgx.NamedArgs{"id": id})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("deactivate product: %w", err)
	}

	return product, nil
}

// DecrementStock is a single conditional update, so two concurrent calls
// serialize on the row and can never both succeed with only enough stock for
// one.
func (r productRepository) DecrementStock(ctx context.Context, id int64, cantidad int) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE productos
		SET stock = stock - @cantidad
		WHERE id = @id AND deleted_at IS NULL AND stock >= @cantidad
		RETURNING `+productColumns+`;
	`, pgx.NamedArgs{"id": id, "cantidad": cantidad})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.InsufficientStockErr
		}
		return model.Product{}, fmt.Errorf("decrement stock: %w", err)
	}

	return product, nil
}

func (r productRepository) SoftDelete(ctx context.Context, id int64) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE productos
		SET deleted_at = NOW()
		WHERE id = @id AND deleted_at IS NULL
		RETURNING `+productColumns+`;
	`, pgx.NamedArgs{"id": id})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("soft delete product: %w", err)
	}

	return product, nil
}

const (
	productPrefixedColumns = `p.id, p.nombre, p.descripcion, p.precio, p.stock, p.activo, p.deleted_at, p.media_url, p.categoria_id`
	productJoinColumns     = productPrefixedColumns + `, c.id, c.nombre, c.descripcion, c.activa, c.deleted_at`
)

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p      model.Product
		precio pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &precio, &p.Stock,
		&p.Activo, &p.DeletedAt, &p.MediaURL, &p.CategoriaID); err != nil {
		return model.Product{}, err
	}

	var err error
	if p.Precio, err = floatFromNumeric(precio); err != nil {
		return model.Product{}, err
	}

	return p, nil
}

func scanProductWithCategory(row pgx.Row) (ProductWithCategory, error) {
	var (
		result ProductWithCategory
		precio pgtype.Numeric

		categoryID          *int64
		categoryNombre      *string
		categoryDescripcion *string
		categoryActiva      *bool
		categoryDeletedAt   *time.Time
	)
	if err := row.Scan(
		&result.Product.ID, &result.Product.Nombre, &result.Product.Descripcion,
		&precio, &result.Product.Stock, &result.Product.Activo,
		&result.Product.DeletedAt, &result.Product.MediaURL, &result.Product.CategoriaID,
		&categoryID, &categoryNombre, &categoryDescripcion, &categoryActiva, &categoryDeletedAt,
	); err != nil {
		return ProductWithCategory{}, err
	}

	var err error
	if result.Product.Precio, err = floatFromNumeric(precio); err != nil {
		return ProductWithCategory{}, err
	}

	if categoryID != nil {
		result.Categoria = &model.Category{
			ID:          *categoryID,
			Nombre:      *categoryNombre,
			Descripcion: categoryDescripcion,
			Activa:      *categoryActiva,
			DeletedAt:   categoryDeletedAt,
		}
	}

	return result, nil
}
