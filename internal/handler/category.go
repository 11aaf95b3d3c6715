package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
	"github.com/inkstream/inkstream-go/internal/validate"
)

// CategoryHandler handles the /category routes.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// HandleCreate handles POST /api/v1/category.
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.CategoryRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	categoryID, err := h.categories.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			response.Error(w, apperr.IllegalPayload("Category name already exists"))
			return
		}
		log.Err(err).Msg("Failed to create category")
		response.Error(w, apperr.System("Failed to create category"))
		return
	}

	response.Created(w, "Category created successfully", map[string]string{"categoryId": categoryID})
}

// HandleList handles GET /api/v1/category.
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		log.Err(err).Msg("Failed to list categories")
		response.Error(w, apperr.System("Failed to list categories"))
		return
	}

	response.OK(w, "", categories)
}

// HandleUpdate handles PUT /api/v1/category/{categoryId}.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if appErr := validate.UUIDParams(r, "categoryId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.CategoryRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.categories.Update(r.Context(), chi.URLParam(r, "categoryId"), req); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.Error(w, apperr.ResourceNotFound("Category not found"))
		case errors.Is(err, service.ErrDuplicateCategory):
			response.Error(w, apperr.IllegalPayload("Category name already exists"))
		default:
			log.Err(err).Msg("Failed to update category")
			response.Error(w, apperr.System("Failed to update category"))
		}
		return
	}

	response.OK(w, "Category updated successfully", nil)
}

// HandleDelete handles DELETE /api/v1/category/{categoryId}.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if appErr := validate.UUIDParams(r, "categoryId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.Error(w, apperr.ResourceNotFound("Category not found"))
		case errors.Is(err, service.ErrCategoryInUse):
			response.Error(w, apperr.IllegalPayload("Category is still used by articles"))
		default:
			log.Err(err).Msg("Failed to delete category")
			response.Error(w, apperr.System("Failed to delete category"))
		}
		return
	}

	response.NoContent(w)
}
