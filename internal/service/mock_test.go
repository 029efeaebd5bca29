package service_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/davidrmz/tienda-catalog/internal/model"
	"github.com/davidrmz/tienda-catalog/internal/repository"
	"github.com/davidrmz/tienda-catalog/internal/storage/db"
)

// fakeDB satisfies db.DB for service tests; only WithTx is expected to run.
type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type categoryRepoMock struct {
	createFunc      func(ctx context.Context, params repository.CreateCategoryParams) (model.Category, error)
	getFunc         func(ctx context.Context, id int64) (model.Category, error)
	listFunc        func(ctx context.Context) ([]model.Category, error)
	listDeletedFunc func(ctx context.Context) ([]model.Category, error)
	updateFunc      func(ctx context.Context, id int64, params repository.UpdateCategoryParams) (model.Category, error)
	deactivateFunc  func(ctx context.Context, id int64) (model.Category, error)
	softDeleteFunc  func(ctx context.Context, id int64) (model.Category, error)
	existsFunc      func(ctx context.Context, id int64) (bool, error)
}

func (m *categoryRepoMock) WithDB(db.DB) repository.CategoryRepository { return m }

func (m *categoryRepoMock) Create(ctx context.Context, params repository.CreateCategoryParams) (model.Category, error) {
	return m.createFunc(ctx, params)
}

func (m *categoryRepoMock) Get(ctx context.Context, id int64) (model.Category, error) {
	return m.getFunc(ctx, id)
}

func (m *categoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	return m.listFunc(ctx)
}

func (m *categoryRepoMock) ListDeleted(ctx context.Context) ([]model.Category, error) {
	return m.listDeletedFunc(ctx)
}

func (m *categoryRepoMock) Update(ctx context.Context, id int64, params repository.UpdateCategoryParams) (model.Category, error) {
	return m.updateFunc(ctx, id, params)
}

func (m *categoryRepoMock) Deactivate(ctx context.Context, id int64) (model.Category, error) {
	return m.deactivateFunc(ctx, id)
}

func (m *categoryRepoMock) SoftDelete(ctx context.Context, id int64) (model.Category, error) {
	return m.softDeleteFunc(ctx, id)
}

func (m *categoryRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFunc(ctx, id)
}

type productRepoMock struct {
	createFunc          func(ctx context.Context, params repository.CreateProductParams) (model.Product, error)
	getFunc             func(ctx context.Context, id int64) (model.Product, error)
	getWithCategoryFunc func(ctx context.Context, id int64) (repository.ProductWithCategory, error)
	listFunc            func(ctx context.Context) ([]repository.ProductListItem, error)
	listDeletedFunc     func(ctx context.Context) ([]repository.ProductWithCategory, error)
	listByCategoryFunc  func(ctx context.Context, categoryID int64) ([]model.Product, error)
	updateFunc          func(ctx context.Context, id int64, params repository.UpdateProductParams) (model.Product, error)
	deactivateFunc      func(ctx context.Context, id int64) (model.Product, error)
	decrementStockFunc  func(ctx context.Context, id int64, cantidad int) (model.Product, error)
	softDeleteFunc      func(ctx context.Context, id int64) (model.Product, error)
}

func (m *productRepoMock) WithDB(db.DB) repository.ProductRepository { return m }

func (m *productRepoMock) Create(ctx context.Context, params repository.CreateProductParams) (model.Product, error) {
	return m.createFunc(ctx, params)
}

func (m *productRepoMock) Get(ctx context.Context, id int64) (model.Product, error) {
	return m.getFunc(ctx, id)
}

func (m *productRepoMock) GetWithCategory(ctx context.Context, id int64) (repository.ProductWithCategory, error) {
	return m.getWithCategoryFunc(ctx, id)
}

func (m *productRepoMock) List(ctx context.Context) ([]repository.ProductListItem, error) {
	return m.listFunc(ctx)
}

func (m *productRepoMock) ListDeleted(ctx context.Context) ([]repository.ProductWithCategory, error) {
	return m.listDeletedFunc(ctx)
}

func (m *productRepoMock) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return m.listByCategoryFunc(ctx, categoryID)
}

func (m *productRepoMock) Update(ctx context.Context, id int64, params repository.UpdateProductParams) (model.Product, error) {
	return m.updateFunc(ctx, id, params)
}

func (m *productRepoMock) Deactivate(ctx context.Context, id int64) (model.Product, error) {
	return m.deactivateFunc(ctx, id)
}

func (m *productRepoMock) DecrementStock(ctx context.Context, id int64, cantidad int) (model.Product, error) {
	return m.decrementStockFunc(ctx, id, cantidad)
}

func (m *productRepoMock) SoftDelete(ctx context.Context, id int64) (model.Product, error) {
	return m.softDeleteFunc(ctx, id)
}
