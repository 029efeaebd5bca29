package apperr

import "github.com/davidrmz/tienda-catalog/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	CategoryNotFoundErr  = zerror.NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	CategoryNameTakenErr = zerror.NewConflict("CATEGORY_NAME_TAKEN", "an active category with this name already exists")

	ProductNotFoundErr = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	// InsufficientStockErr covers both a missing product and not enough
	// stock; the decrement is a single conditional update and does not
	// distinguish the two.
	InsufficientStockErr = zerror.NewBadRequest("INSUFFICIENT_STOCK", "product not found or insufficient stock")

	StorageUploadErr        = zerror.NewBadGateway("STORAGE_UPLOAD_FAILED", "image upload failed")
	StorageNotConfiguredErr = zerror.NewBadGateway("STORAGE_NOT_CONFIGURED", "object storage is not configured")
)
