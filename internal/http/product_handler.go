package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/internal/service"
	"github.com/davidrmz/tienda-catalog/internal/storage/objstore"
	"github.com/davidrmz/tienda-catalog/pkg/optional"
	"github.com/davidrmz/tienda-catalog/pkg/validator"
)

type productHandler struct {
	productSvc service.ProductService
	uploader   objstore.Uploader
	validate   validator.Validator

	*responder
}

func newProductHandler(productSvc service.ProductService, uploader objstore.Uploader, validate validator.Validator, responder *responder) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		uploader:   uploader,
		validate:   validate,
		responder:  responder,
	}
}

func (h *productHandler) Register(r chi.Router) {
	r.Route("/productos", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/eliminados", h.ListDeleted)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/categoria", h.GetWithCategory)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/desactivar", h.Deactivate)
		r.Patch("/{id}/restar-stock", h.DecrementStock)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *productHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateProductForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	// The upload happens before persistence; its failure aborts the create.
	mediaURL, err := h.uploadImage(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.Create(r.Context(), service.CreateProductParams{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Stock:       req.Stock,
		Activo:      req.Activo,
		CategoriaID: req.CategoriaID,
		MediaURL:    mediaURL,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.productSvc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]ProductListItemResponse, 0, len(results))
	for _, result := range results {
		items = append(items, newProductListItemResponse(result))
	}

	h.writeJSON(w, r, http.StatusOK, items)
}

func (h *productHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	results, err := h.productSvc.ListDeleted(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]DeletedProductResponse, 0, len(results))
	for _, result := range results {
		items = append(items, newDeletedProductResponse(result))
	}

	h.writeJSON(w, r, http.StatusOK, items)
}

func (h *productHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) GetWithCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.productSvc.GetWithCategory(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProductWithCategoryResponse(result))
}

func (h *productHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	req, err := parseUpdateProductForm(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	params := service.UpdateProductParams{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Stock:       req.Stock,
		Activo:      req.Activo,
		CategoriaID: req.CategoriaID,
	}

	mediaURL, err := h.uploadImage(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if mediaURL != nil {
		params.MediaURL = optional.New(*mediaURL)
	}

	product, err := h.productSvc.Update(r.Context(), id, params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.Deactivate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) DecrementStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req RestarStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperr.ValidationErr.WrapParent(fmt.Errorf("decode body: %w", err)))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.DecrementStock(r.Context(), id, req.Cantidad)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.productSvc.SoftDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Mensaje: "Producto eliminado correctamente"})
}

// uploadImage stores the optional imagen file part and returns its public
// URL, or nil when no file was submitted.
func (h *productHandler) uploadImage(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("imagen")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperr.ValidationErr.WrapParent(fmt.Errorf("read imagen: %w", err))
	}
	defer func() {
		_ = file.Close()
	}()

	if h.uploader == nil {
		return nil, apperr.StorageNotConfiguredErr
	}

	url, err := h.uploader.Upload(r.Context(), file, header.Size, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		return nil, apperr.StorageUploadErr.WrapParent(err)
	}

	return &url, nil
}
