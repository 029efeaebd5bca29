package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/repository"
	"github.com/davidrmz/tienda-catalog/internal/service"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
	"github.com/davidrmz/tienda-catalog/pkg/ptr"
)

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default activa to true", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			createFunc: func(_ context.Context, params repository.CreateCategoryParams) (model.Category, error) {
				assert.True(t, params.Activa)
				return model.Category{ID: 1, Nombre: params.Nombre, Activa: params.Activa}, nil
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		category, err := svc.Create(ctx, service.CreateCategoryParams{Nombre: "Bebidas"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), category.ID)
		assert.Equal(t, "Bebidas", category.Nombre)
		assert.True(t, category.Activa)
	})

	t.Run("Should honor explicit activa false", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			createFunc: func(_ context.Context, params repository.CreateCategoryParams) (model.Category, error) {
				assert.False(t, params.Activa)
				return model.Category{ID: 2, Nombre: params.Nombre}, nil
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		_, err := svc.Create(ctx, service.CreateCategoryParams{Nombre: "Archivadas", Activa: ptr.New(false)})

		require.NoError(t, err)
	})

	t.Run("Should propagate duplicate name conflict", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			createFunc: func(context.Context, repository.CreateCategoryParams) (model.Category, error) {
				return model.Category{}, apperr.CategoryNameTakenErr
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		_, err := svc.Create(ctx, service.CreateCategoryParams{Nombre: "Bebidas"})

		assert.ErrorIs(t, err, apperr.CategoryNameTakenErr)
	})
}

func TestCategoryServiceGetWithProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return category with its products", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			getFunc: func(_ context.Context, id int64) (model.Category, error) {
				return model.Category{ID: id, Nombre: "Bebidas", Activa: true}, nil
			},
		}
		productRepo := &productRepoMock{
			listByCategoryFunc: func(_ context.Context, categoryID int64) ([]model.Product, error) {
				return []model.Product{{ID: 10, Nombre: "Agua", CategoriaID: categoryID}}, nil
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, productRepo)

		result, err := svc.GetWithProducts(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Bebidas", result.Category.Nombre)
		require.Len(t, result.Productos, 1)
		assert.Equal(t, "Agua", result.Productos[0].Nombre)
	})

	t.Run("Should fail when category is missing", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			getFunc: func(context.Context, int64) (model.Category, error) {
				return model.Category{}, apperr.CategoryNotFoundErr
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		_, err := svc.GetWithProducts(ctx, 99)

		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
	})
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should pass through only supplied fields", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			updateFunc: func(_ context.Context, id int64, params repository.UpdateCategoryParams) (model.Category, error) {
				assert.True(t, params.Nombre.Set)
				assert.False(t, params.Descripcion.Set)
				assert.False(t, params.Activa.Set)
				return model.Category{ID: id, Nombre: params.Nombre.V, Activa: true}, nil
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		category, err := svc.Update(ctx, 1, service.UpdateCategoryParams{
			Nombre: optional.New("Snacks"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Snacks", category.Nombre)
	})
}

func TestCategoryServiceSoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should propagate not found for already deleted category", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			softDeleteFunc: func(context.Context, int64) (model.Category, error) {
				return model.Category{}, apperr.CategoryNotFoundErr
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		_, err := svc.SoftDelete(ctx, 1)

		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
	})

	t.Run("Should wrap unexpected repository errors", func(t *testing.T) {
		repoErr := errors.New("connection reset")
		categoryRepo := &categoryRepoMock{
			softDeleteFunc: func(context.Context, int64) (model.Category, error) {
				return model.Category{}, repoErr
			},
		}
		svc := service.NewCategoryService(fakeDB{}, categoryRepo, &productRepoMock{})

		_, err := svc.SoftDelete(ctx, 1)

		assert.ErrorIs(t, err, repoErr)
	})
}
