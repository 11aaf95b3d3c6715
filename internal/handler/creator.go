package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
	"github.com/inkstream/inkstream-go/internal/validate"
)

// CreatorHandler handles the public /creator routes.
type CreatorHandler struct {
	creators *service.CreatorService
}

// NewCreatorHandler creates a new CreatorHandler.
func NewCreatorHandler(creators *service.CreatorService) *CreatorHandler {
	return &CreatorHandler{creators: creators}
}

// HandleList handles GET /api/v1/creator.
func (h *CreatorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	creators, err := h.creators.List(r.Context(), validate.Pagination(r), query.Get("type"), query.Get("q"))
	if err != nil {
		log.Err(err).Msg("Failed to list creators")
		response.Error(w, apperr.System("Failed to list creators"))
		return
	}

	response.OK(w, "", creators)
}

// HandleFollowers handles GET /api/v1/creator/{creatorId}/followers.
func (h *CreatorHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	if appErr := validate.UUIDParams(r, "creatorId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	followers, err := h.creators.Followers(r.Context(), chi.URLParam(r, "creatorId"))
	if err != nil {
		log.Err(err).Msg("Failed to list creator followers")
		response.Error(w, apperr.System("Failed to list creator followers"))
		return
	}

	response.OK(w, "", followers)
}

// HandleFollowings handles GET /api/v1/creator/{creatorId}/followings.
func (h *CreatorHandler) HandleFollowings(w http.ResponseWriter, r *http.Request) {
	if appErr := validate.UUIDParams(r, "creatorId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	followings, err := h.creators.Followings(r.Context(), chi.URLParam(r, "creatorId"))
	if err != nil {
		log.Err(err).Msg("Failed to list creator followings")
		response.Error(w, apperr.System("Failed to list creator followings"))
		return
	}

	response.OK(w, "", followings)
}
