package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/storage/db"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
)

type CreateCategoryParams struct {
	Nombre      string
	Descripcion *string
	Activa      bool
}

type UpdateCategoryParams struct {
	Nombre      optional.Value[string]
	Descripcion optional.Value[string]
	Activa      optional.Value[bool]
}

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	Create(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	Get(ctx context.Context, id int64) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ListDeleted(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id int64, params UpdateCategoryParams) (model.Category, error)
	Deactivate(ctx context.Context, id int64) (model.Category, error)
	SoftDelete(ctx context.Context, id int64) (model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, nombre, descripcion, activa, deleted_at`

func (r categoryRepository) Create(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO categorias (nombre, descripcion, activa)
		VALUES (@nombre, @descripcion, @activa)
		RETURNING `+categoryColumns+`;
	`, pgx.NamedArgs{
		"nombre":      params.Nombre,
		"descripcion": params.Descripcion,
		"activa":      params.Activa,
	})

	category, err := scanCategory(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return model.Category{}, apperr.CategoryNameTakenErr.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) Get(ctx context.Context, id int64) (model.Category, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categorias
		WHERE id = @id AND deleted_at IS NULL;
	`, pgx.NamedArgs{"id": id})

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, apperr.CategoryNotFoundErr
		}
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categorias
		WHERE deleted_at IS NULL
		ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return collectCategories(rows)
}

func (r categoryRepository) ListDeleted(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categorias
		WHERE deleted_at IS NOT NULL
		ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list deleted categories: %w", err)
	}

	return collectCategories(rows)
}

func (r categoryRepository) Update(ctx context.Context, id int64, params UpdateCategoryParams) (model.Category, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE categorias
		SET nombre      = CASE WHEN @set_nombre THEN @nombre ELSE nombre END,
		    descripcion = CASE WHEN @set_descripcion THEN @descripcion ELSE descripcion END,
		    activa      = CASE WHEN @set_activa THEN @activa ELSE activa END
		WHERE id = @id AND deleted_at IS NULL
		RETURNING `+categoryColumns+`;
	`, pgx.NamedArgs{
		"id":              id,
		"set_nombre":      params.Nombre.Set && params.Nombre.Valid,
		"nombre":          params.Nombre.V,
		"set_descripcion": params.Descripcion.Set,
		"descripcion":     params.Descripcion.Ptr(),
		"set_activa":      params.Activa.Set && params.Activa.Valid,
		"activa":          params.Activa.V,
	})

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, apperr.CategoryNotFoundErr
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return model.Category{}, apperr.CategoryNameTakenErr.WrapParent(err)
		}
		return model.Category{}, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) Deactivate(ctx context.Context, id int64) (model.Category, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE categorias
		SET activa = FALSE
		WHERE id = @id AND deleted_at IS NULL
		RETURNING `+categoryColumns+`;
	`, pgx.NamedArgs{"id": id})

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, apperr.CategoryNotFoundErr
		}
		return model.Category{}, fmt.Errorf("deactivate category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) SoftDelete(ctx context.Context, id int64) (model.Category, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE categorias
		SET deleted_at = NOW()
		WHERE id = @id AND deleted_at IS NULL
		RETURNING `+categoryColumns+`;
	`, pgx.NamedArgs{"id": id})

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, apperr.CategoryNotFoundErr
		}
		return model.Category{}, fmt.Errorf("soft delete category: %w", err)
	}

	return category, nil
}

func (r categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categorias WHERE id = @id AND deleted_at IS NULL
		);
	`, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}

	return exists, nil
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activa, &c.DeletedAt); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func collectCategories(rows pgx.Rows) ([]model.Category, error) {
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}
