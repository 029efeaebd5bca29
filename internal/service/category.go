package service

import (
	"context"
	"fmt"

	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/repository"
	"github.com/davidrmz/tienda-catalog/internal/storage/db"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
)

type CreateCategoryParams struct {
	Nombre      string
	Descripcion *string
	// Activa defaults to true when nil.
	Activa *bool
}

type UpdateCategoryParams struct {
	Nombre      optional.Value[string]
	Descripcion optional.Value[string]
	Activa      optional.Value[bool]
}

// CategoryWithProducts is the detail projection of a category together with
// its non-deleted products.
type CategoryWithProducts struct {
	Category  model.Category
	Productos []model.Product
}

type CategoryService interface {
	Create(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	Get(ctx context.Context, id int64) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ListDeleted(ctx context.Context) ([]model.Category, error)
	GetWithProducts(ctx context.Context, id int64) (CategoryWithProducts, error)
	Update(ctx context.Context, id int64, params UpdateCategoryParams) (model.Category, error)
	Deactivate(ctx context.Context, id int64) (model.Category, error)
	SoftDelete(ctx context.Context, id int64) (model.Category, error)
}

type categoryService struct {
	db           db.DB
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(
	db db.DB,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	activa := true
	if params.Activa != nil {
		activa = *params.Activa
	}

	category, err := s.categoryRepo.Create(ctx, repository.CreateCategoryParams{
		Nombre:      params.Nombre,
		Descripcion: params.Descripcion,
		Activa:      activa,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository create: %w", err)
	}

	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.Get(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository get: %w", err)
	}

	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list: %w", err)
	}

	return categories, nil
}

func (s *categoryService) ListDeleted(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list deleted: %w", err)
	}

	return categories, nil
}

func (s *categoryService) GetWithProducts(ctx context.Context, id int64) (CategoryWithProducts, error) {
	category, err := s.categoryRepo.Get(ctx, id)
	if err != nil {
		return CategoryWithProducts{}, fmt.Errorf("category repository get: %w", err)
	}

	products, err := s.productRepo.ListByCategory(ctx, id)
	if err != nil {
		return CategoryWithProducts{}, fmt.Errorf("product repository list by category: %w", err)
	}

	return CategoryWithProducts{
		Category:  category,
		Productos: products,
	}, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, params UpdateCategoryParams) (model.Category, error) {
	category, err := s.categoryRepo.Update(ctx, id, repository.UpdateCategoryParams{
		Nombre:      params.Nombre,
		Descripcion: params.Descripcion,
		Activa:      params.Activa,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository update: %w", err)
	}

	return category, nil
}

func (s *categoryService) Deactivate(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.Deactivate(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository deactivate: %w", err)
	}

	return category, nil
}

// SoftDelete marks the category deleted without touching its products;
// deleted-product projections treat the category as optional for this
// reason.
func (s *categoryService) SoftDelete(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.SoftDelete(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository soft delete: %w", err)
	}

	return category, nil
}
