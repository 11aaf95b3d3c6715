package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
	"github.com/inkstream/inkstream-go/internal/validate"
)

const notCommentAuthorMessage = "Comment not found or you are not the author of this comment"

// CommentHandler handles the authenticated /comment routes.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// HandleUpdate handles PATCH /api/v1/comment/{commentId}.
func (h *CommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "commentId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.CommentRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	err := h.comments.Update(r.Context(), identity.ID, chi.URLParam(r, "commentId"), req.Content)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			response.Error(w, apperr.ResourceNotFound(notCommentAuthorMessage))
			return
		}
		log.Err(err).Msg("Failed to update comment")
		response.Error(w, apperr.System("Failed to update comment"))
		return
	}

	response.OK(w, "Comment updated successfully", nil)
}

// HandleDelete handles DELETE /api/v1/comment/{commentId}.
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "commentId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.comments.Delete(r.Context(), identity.ID, chi.URLParam(r, "commentId")); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			response.Error(w, apperr.ResourceNotFound(notCommentAuthorMessage))
			return
		}
		log.Err(err).Msg("Failed to delete comment")
		response.Error(w, apperr.System("Failed to delete comment"))
		return
	}

	response.NoContent(w)
}
