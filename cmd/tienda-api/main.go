package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/davidrmz/tienda-catalog/internal/config"
	"github.com/davidrmz/tienda-catalog/internal/http"
	"github.com/davidrmz/tienda-catalog/internal/log"
	"github.com/davidrmz/tienda-catalog/internal/repository"
	"github.com/davidrmz/tienda-catalog/internal/service"
	"github.com/davidrmz/tienda-catalog/internal/storage/db"
	"github.com/davidrmz/tienda-catalog/internal/storage/objstore"
	"github.com/davidrmz/tienda-catalog/internal/telemetry"
	"github.com/davidrmz/tienda-catalog/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Storage  config.Storage
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	var uploader objstore.Uploader
	minioUploader, err := objstore.NewMinioUploader(cfg.Storage)
	switch {
	case err == nil:
		uploader = minioUploader
	case errors.Is(err, objstore.ErrNotConfigured):
		logger.WarnContext(ctx, "object storage not configured, image uploads disabled")
	default:
		return fmt.Errorf("error creating object storage uploader: %w", err)
	}

	categoryRepository := repository.NewCategoryRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)

	categoryService := service.NewCategoryService(dbClient, categoryRepository, productRepository)
	productService := service.NewProductService(dbClient, productRepository, categoryRepository)

	interruptChan := cmdutil.InterruptChan()

	svc := http.New(cfg.HTTP, logger, categoryService, productService, uploader, dbClient)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-interruptChan

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
