package service_test

import (
	"context"
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

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create when category exists", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			existsFunc: func(_ context.Context, id int64) (bool, error) {
				assert.Equal(t, int64(1), id)
				return true, nil
			},
		}
		productRepo := &productRepoMock{
			createFunc: func(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
				assert.True(t, params.Activo)
				return model.Product{
					ID:          10,
					Nombre:      params.Nombre,
					Precio:      params.Precio,
					Stock:       params.Stock,
					Activo:      params.Activo,
					CategoriaID: params.CategoriaID,
				}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, categoryRepo)

		product, err := svc.Create(ctx, service.CreateProductParams{
			Nombre:      "Agua",
			Precio:      10.5,
			Stock:       5,
			CategoriaID: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(10), product.ID)
		assert.Equal(t, 10.5, product.Precio)
		assert.Equal(t, 5, product.Stock)
	})

	t.Run("Should fail with not found for missing or deleted category", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			existsFunc: func(context.Context, int64) (bool, error) {
				return false, nil
			},
		}
		created := false
		productRepo := &productRepoMock{
			createFunc: func(context.Context, repository.CreateProductParams) (model.Product, error) {
				created = true
				return model.Product{}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, categoryRepo)

		_, err := svc.Create(ctx, service.CreateProductParams{Nombre: "Agua", Precio: 1, CategoriaID: 99})

		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
		assert.False(t, created, "nothing should be persisted")
	})

	t.Run("Should honor explicit activo false", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			existsFunc: func(context.Context, int64) (bool, error) { return true, nil },
		}
		productRepo := &productRepoMock{
			createFunc: func(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
				assert.False(t, params.Activo)
				return model.Product{}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, categoryRepo)

		_, err := svc.Create(ctx, service.CreateProductParams{
			Nombre:      "Agua",
			Precio:      1,
			CategoriaID: 1,
			Activo:      ptr.New(false),
		})

		require.NoError(t, err)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should re-check category reference when it changes", func(t *testing.T) {
		checked := false
		categoryRepo := &categoryRepoMock{
			existsFunc: func(_ context.Context, id int64) (bool, error) {
				checked = true
				assert.Equal(t, int64(2), id)
				return true, nil
			},
		}
		productRepo := &productRepoMock{
			updateFunc: func(_ context.Context, id int64, params repository.UpdateProductParams) (model.Product, error) {
				return model.Product{ID: id, CategoriaID: params.CategoriaID.V}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, categoryRepo)

		product, err := svc.Update(ctx, 10, service.UpdateProductParams{
			CategoriaID: optional.New(int64(2)),
		})

		require.NoError(t, err)
		assert.True(t, checked)
		assert.Equal(t, int64(2), product.CategoriaID)
	})

	t.Run("Should skip category check when reference is untouched", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			existsFunc: func(context.Context, int64) (bool, error) {
				t.Fatal("exists should not be called")
				return false, nil
			},
		}
		productRepo := &productRepoMock{
			updateFunc: func(_ context.Context, id int64, params repository.UpdateProductParams) (model.Product, error) {
				assert.True(t, params.Precio.Set)
				return model.Product{ID: id, Precio: params.Precio.V}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, categoryRepo)

		product, err := svc.Update(ctx, 10, service.UpdateProductParams{
			Precio: optional.New(12.0),
		})

		require.NoError(t, err)
		assert.Equal(t, 12.0, product.Precio)
	})

	t.Run("Should fail when new category is missing", func(t *testing.T) {
		categoryRepo := &categoryRepoMock{
			existsFunc: func(context.Context, int64) (bool, error) { return false, nil },
		}
		svc := service.NewProductService(fakeDB{}, &productRepoMock{}, categoryRepo)

		_, err := svc.Update(ctx, 10, service.UpdateProductParams{
			CategoriaID: optional.New(int64(99)),
		})

		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
	})
}

func TestProductServiceDecrementStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject non-positive cantidad before persistence", func(t *testing.T) {
		productRepo := &productRepoMock{
			decrementStockFunc: func(context.Context, int64, int) (model.Product, error) {
				t.Fatal("repository should not be reached")
				return model.Product{}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, &categoryRepoMock{})

		_, err := svc.DecrementStock(ctx, 10, 0)

		assert.ErrorIs(t, err, apperr.ValidationErr)
	})

	t.Run("Should decrement stock", func(t *testing.T) {
		productRepo := &productRepoMock{
			decrementStockFunc: func(_ context.Context, id int64, cantidad int) (model.Product, error) {
				assert.Equal(t, 3, cantidad)
				return model.Product{ID: id, Stock: 2}, nil
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, &categoryRepoMock{})

		product, err := svc.DecrementStock(ctx, 10, 3)

		require.NoError(t, err)
		assert.Equal(t, 2, product.Stock)
	})

	t.Run("Should propagate insufficient stock", func(t *testing.T) {
		productRepo := &productRepoMock{
			decrementStockFunc: func(context.Context, int64, int) (model.Product, error) {
				return model.Product{}, apperr.InsufficientStockErr
			},
		}
		svc := service.NewProductService(fakeDB{}, productRepo, &categoryRepoMock{})

		_, err := svc.DecrementStock(ctx, 10, 10)

		assert.ErrorIs(t, err, apperr.InsufficientStockErr)
	})
}
