package service

import (
	"context"
	"fmt"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/repository"
	"github.com/davidrmz/tienda-catalog/internal/storage/db"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
)

type CreateProductParams struct {
	Nombre      string
	Descripcion *string
	Precio      float64
	Stock       int
	// Activo defaults to true when nil.
	Activo      *bool
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

type ProductService interface {
	Create(ctx context.Context, params CreateProductParams) (model.Product, error)
	Get(ctx context.Context, id int64) (model.Product, error)
	GetWithCategory(ctx context.Context, id int64) (repository.ProductWithCategory, error)
	List(ctx context.Context) ([]repository.ProductListItem, error)
	ListDeleted(ctx context.Context) ([]repository.ProductWithCategory, error)
	Update(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	Deactivate(ctx context.Context, id int64) (model.Product, error)
	DecrementStock(ctx context.Context, id int64, cantidad int) (model.Product, error)
	SoftDelete(ctx context.Context, id int64) (model.Product, error)
}

type productService struct {
	db           db.DB
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		db:           db,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create checks the category reference and inserts in one transaction so a
// concurrent category soft-delete cannot slip between check and insert.
func (s *productService) Create(ctx context.Context, params CreateProductParams) (model.Product, error) {
	activo := true
	if params.Activo != nil {
		activo = *params.Activo
	}

	var product model.Product
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		exists, err := s.categoryRepo.WithDB(tx).Exists(ctx, params.CategoriaID)
		if err != nil {
			return fmt.Errorf("category repository exists: %w", err)
		}
		if !exists {
			return apperr.CategoryNotFoundErr
		}

		product, err = s.productRepo.WithDB(tx).Create(ctx, repository.CreateProductParams{
			Nombre:      params.Nombre,
			Descripcion: params.Descripcion,
			Precio:      params.Precio,
			Stock:       params.Stock,
			Activo:      activo,
			CategoriaID: params.CategoriaID,
			MediaURL:    params.MediaURL,
		})
		if err != nil {
			return fmt.Errorf("product repository create: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	return product, nil
}

func (s *productService) Get(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.Get(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get: %w", err)
	}

	return product, nil
}

func (s *productService) GetWithCategory(ctx context.Context, id int64) (repository.ProductWithCategory, error) {
	result, err := s.productRepo.GetWithCategory(ctx, id)
	if err != nil {
		return repository.ProductWithCategory{}, fmt.Errorf("product repository get with category: %w", err)
	}

	return result, nil
}

func (s *productService) List(ctx context.Context) ([]repository.ProductListItem, error) {
	items, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list: %w", err)
	}

	return items, nil
}

func (s *productService) ListDeleted(ctx context.Context) ([]repository.ProductWithCategory, error) {
	results, err := s.productRepo.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list deleted: %w", err)
	}

	return results, nil
}

func (s *productService) Update(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	var product model.Product
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		if categoriaID, ok := params.CategoriaID.Get(); ok {
			exists, err := s.categoryRepo.WithDB(tx).Exists(ctx, categoriaID)
			if err != nil {
				return fmt.Errorf("category repository exists: %w", err)
			}
			if !exists {
				return apperr.CategoryNotFoundErr
			}
		}

		var err error
		product, err = s.productRepo.WithDB(tx).Update(ctx, id, repository.UpdateProductParams{
			Nombre:      params.Nombre,
			Descripcion: params.Descripcion,
			Precio:      params.Precio,
			Stock:       params.Stock,
			Activo:      params.Activo,
			CategoriaID: params.CategoriaID,
			MediaURL:    params.MediaURL,
		})
		if err != nil {
			return fmt.Errorf("product repository update: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	return product, nil
}

func (s *productService) Deactivate(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.Deactivate(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository deactivate: %w", err)
	}

	return product, nil
}

func (s *productService) DecrementStock(ctx context.Context, id int64, cantidad int) (model.Product, error) {
	if cantidad <= 0 {
		return model.Product{}, apperr.ValidationErr.WrapParent(fmt.Errorf("cantidad must be positive, got %d", cantidad))
	}

	product, err := s.productRepo.DecrementStock(ctx, id, cantidad)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository decrement stock: %w", err)
	}

	return product, nil
}

func (s *productService) SoftDelete(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.SoftDelete(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository soft delete: %w", err)
	}

	return product, nil
}
