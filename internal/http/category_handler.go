package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidrmz/tienda-catalog/internal/apperr"
	"github.com/davidrmz/tienda-catalog/internal/service"
	"github.com/davidrmz/tienda-catalog/pkg/validator"
)

type categoryHandler struct {
	categorySvc service.CategoryService
	validate    validator.Validator

	*responder
}

func newCategoryHandler(categorySvc service.CategoryService, validate validator.Validator, responder *responder) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
		validate:    validate,
		responder:   responder,
	}
}

func (h *categoryHandler) Register(r chi.Router) {
	r.Route("/categorias", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/eliminadas", h.ListDeleted)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/productos", h.GetWithProducts)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/desactivar", h.Deactivate)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *categoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperr.ValidationErr.WrapParent(fmt.Errorf("decode body: %w", err)))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	category, err := h.categorySvc.Create(r.Context(), service.CreateCategoryParams{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      req.Activa,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCategoryResponse(category))
}

func (h *categoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, newCategoryResponse(category))
	}

	h.writeJSON(w, r, http.StatusOK, items)
}

func (h *categoryHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.ListDeleted(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := make([]DeletedCategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, newDeletedCategoryResponse(category))
	}

	h.writeJSON(w, r, http.StatusOK, items)
}

func (h *categoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	category, err := h.categorySvc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCategoryResponse(category))
}

func (h *categoryHandler) GetWithProducts(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.categorySvc.GetWithProducts(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCategoryWithProductsResponse(result))
}

func (h *categoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperr.ValidationErr.WrapParent(fmt.Errorf("decode body: %w", err)))
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	category, err := h.categorySvc.Update(r.Context(), id, service.UpdateCategoryParams{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      req.Activa,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCategoryResponse(category))
}

func (h *categoryHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	category, err := h.categorySvc.Deactivate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCategoryResponse(category))
}

func (h *categoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.categorySvc.SoftDelete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, MessageResponse{Mensaje: "Categoría eliminada correctamente"})
}
