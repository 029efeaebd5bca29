package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
)

const maxUploadMemory = 32 << 20 // 32 MB

type CreateCategoryRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=1,max=100"`
	Descripcion *string `json:"descripcion"`
	Activa      *bool   `json:"activa"`
}

type UpdateCategoryRequest struct {
	Nombre      optional.Value[string] `json:"nombre"`
	Descripcion optional.Value[string] `json:"descripcion"`
	Activa      optional.Value[bool]   `json:"activa"`
}

// Validate enforces field constraints on the fields that are present.
// Non-nullable fields reject an explicit null.
func (req UpdateCategoryRequest) Validate() error {
	if req.Nombre.Set {
		if !req.Nombre.Valid {
			return apperr.ValidationErr.WrapParent(fmt.Errorf("nombre cannot be null"))
		}
		if err := validateNombre(req.Nombre.V); err != nil {
			return err
		}
	}
	if req.Activa.Set && !req.Activa.Valid {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("activa cannot be null"))
	}
	return nil
}

type RestarStockRequest struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0"`
}

type CreateProductRequest struct {
	Nombre      string  `validate:"required,min=1,max=100"`
	Descripcion *string
	Precio      float64 `validate:"required,gt=0"`
	Stock       int     `validate:"gte=0"`
	Activo      *bool
	CategoriaID int64 `validate:"required"`
}

type UpdateProductRequest struct {
	Nombre      optional.Value[string]
	Descripcion optional.Value[string]
	Precio      optional.Value[float64]
	Stock       optional.Value[int]
	Activo      optional.Value[bool]
	CategoriaID optional.Value[int64]
}

func (req UpdateProductRequest) Validate() error {
	if req.Nombre.Set {
		if !req.Nombre.Valid {
			return apperr.ValidationErr.WrapParent(fmt.Errorf("nombre cannot be null"))
		}
		if err := validateNombre(req.Nombre.V); err != nil {
			return err
		}
	}
	if precio, ok := req.Precio.Get(); req.Precio.Set && (!ok || precio <= 0) {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("precio must be greater than 0"))
	}
	if stock, ok := req.Stock.Get(); req.Stock.Set && (!ok || stock < 0) {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("stock must be greater than or equal to 0"))
	}
	if req.Activo.Set && !req.Activo.Valid {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("activo cannot be null"))
	}
	if req.CategoriaID.Set && !req.CategoriaID.Valid {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("categoria_id cannot be null"))
	}
	return nil
}

func validateNombre(nombre string) error {
	if n := utf8.RuneCountInString(nombre); n < 1 || n > 100 {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("nombre must be between 1 and 100 characters"))
	}
	return nil
}

// parseCreateProductForm reads the multipart create payload. The imagen file
// part is handled separately by the caller.
func parseCreateProductForm(r *http.Request) (CreateProductRequest, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return CreateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("parse multipart form: %w", err))
	}

	var req CreateProductRequest
	form := r.MultipartForm

	// Presence is checked up front: stock may legitimately be 0, which the
	// struct tags alone cannot tell apart from an absent field.
	for _, key := range []string{"nombre", "precio", "stock", "categoria_id"} {
		if _, ok := formLookup(form, key); !ok {
			return CreateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("%s is required", key))
		}
	}

	req.Nombre = formValue(form, "nombre")
	if v, ok := formLookup(form, "descripcion"); ok {
		req.Descripcion = &v
	}

	var err error
	if req.Precio, err = parseFormFloat(form, "precio"); err != nil {
		return CreateProductRequest{}, err
	}
	if req.Stock, err = parseFormInt(form, "stock"); err != nil {
		return CreateProductRequest{}, err
	}
	if req.CategoriaID, err = parseFormInt64(form, "categoria_id"); err != nil {
		return CreateProductRequest{}, err
	}
	if v, ok := formLookup(form, "activo"); ok {
		activo, err := strconv.ParseBool(v)
		if err != nil {
			return CreateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("activo must be a boolean: %w", err))
		}
		req.Activo = &activo
	}

	return req, nil
}

// parseUpdateProductForm reads the multipart partial-update payload. A field
// absent from the form is left unchanged; a nullable field submitted with an
// empty value is cleared.
func parseUpdateProductForm(r *http.Request) (UpdateProductRequest, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return UpdateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("parse multipart form: %w", err))
	}

	var req UpdateProductRequest
	form := r.MultipartForm

	if v, ok := formLookup(form, "nombre"); ok {
		req.Nombre = optional.New(v)
	}
	if v, ok := formLookup(form, "descripcion"); ok {
		if v == "" {
			req.Descripcion = optional.Null[string]()
		} else {
			req.Descripcion = optional.New(v)
		}
	}
	if v, ok := formLookup(form, "precio"); ok {
		precio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return UpdateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("precio must be a number: %w", err))
		}
		req.Precio = optional.New(precio)
	}
	if v, ok := formLookup(form, "stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return UpdateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("stock must be an integer: %w", err))
		}
		req.Stock = optional.New(stock)
	}
	if v, ok := formLookup(form, "activo"); ok {
		activo, err := strconv.ParseBool(v)
		if err != nil {
			return UpdateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("activo must be a boolean: %w", err))
		}
		req.Activo = optional.New(activo)
	}
	if v, ok := formLookup(form, "categoria_id"); ok {
		categoriaID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return UpdateProductRequest{}, apperr.ValidationErr.WrapParent(fmt.Errorf("categoria_id must be an integer: %w", err))
		}
		req.CategoriaID = optional.New(categoriaID)
	}

	return req, nil
}

func formLookup(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func formValue(form *multipart.Form, key string) string {
	v, _ := formLookup(form, key)
	return v
}

func parseFormFloat(form *multipart.Form, key string) (float64, error) {
	v, ok := formLookup(form, key)
	if !ok {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, apperr.ValidationErr.WrapParent(fmt.Errorf("%s must be a number: %w", key, err))
	}
	return f, nil
}

func parseFormInt(form *multipart.Form, key string) (int, error) {
	v, ok := formLookup(form, key)
	if !ok {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperr.ValidationErr.WrapParent(fmt.Errorf("%s must be an integer: %w", key, err))
	}
	return i, nil
}

func parseFormInt64(form *multipart.Form, key string) (int64, error) {
	v, ok := formLookup(form, key)
	if !ok {
		return 0, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, apperr.ValidationErr.WrapParent(fmt.Errorf("%s must be an integer: %w", key, err))
	}
	return i, nil
}

func parseIDParam(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationErr.WrapParent(fmt.Errorf("invalid id %q", raw))
	}
	return id, nil
}
