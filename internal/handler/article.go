package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
	"github.com/inkstream/inkstream-go/internal/validate"
)

// defaultHotCount is the hot-article listing size when no count is given.
const defaultHotCount = 10

const notCreatorMessage = "Article not found or you are not the creator of this article"

// ArticleHandler handles the /articles, /hot-articles and /article routes.
type ArticleHandler struct {
	articles *service.ArticleService
	users    *service.UserService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles *service.ArticleService, users *service.UserService) *ArticleHandler {
	return &ArticleHandler{articles: articles, users: users}
}

// HandleList handles GET /api/v1/articles.
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := model.ArticleListParams{
		Pagination: validate.Pagination(r),
		Keyword:    query.Get("q"),
		Category:   query.Get("category"),
		Hot:        query.Get("type") == "hot",
	}

	articles, err := h.articles.List(r.Context(), params)
	if err != nil {
		log.Err(err).Msg("Failed to list articles")
		response.Error(w, apperr.System("Failed to list articles"))
		return
	}

	response.OK(w, "", articles)
}

// HandleListHot handles GET /api/v1/hot-articles.
func (h *ArticleHandler) HandleListHot(w http.ResponseWriter, r *http.Request) {
	count := defaultHotCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apperr.IllegalQueryString("Count must be a number."))
			return
		}
		// Non-positive counts are numeric and therefore valid; they just
		// select nothing.
		count = max(n, 0)
	}

	articles, err := h.articles.ListHot(r.Context(), count)
	if err != nil {
		log.Err(err).Msg("Failed to list hot articles")
		response.Error(w, apperr.System("Failed to list hot articles"))
		return
	}

	response.OK(w, "", articles)
}

// HandleGet handles GET /api/v1/article/{articleId}. Paid content is
// truncated to a preview unless the caller is the creator or a subscriber.
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if appErr := validate.UUIDParams(r, "articleId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	article, err := h.articles.Get(r.Context(), chi.URLParam(r, "articleId"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.Error(w, apperr.ResourceNotFound("Article not found"))
			return
		}
		log.Err(err).Msg("Failed to get article")
		response.Error(w, apperr.System("Failed to get article"))
		return
	}

	if article.IsNeedPay {
		unlocked, err := h.canReadPaidContent(r, article)
		if err != nil {
			log.Err(err).Msg("Failed to check subscription")
			response.Error(w, apperr.System("Failed to get article"))
			return
		}
		if !unlocked {
			article = service.Preview(article)
		}
	}

	response.OK(w, "", article)
}

func (h *ArticleHandler) canReadPaidContent(r *http.Request, article *model.Article) (bool, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return false, nil
	}
	if identity.ID == article.CreatorID {
		return true, nil
	}
	return h.users.IsSubscribed(r.Context(), identity.ID, article.CreatorID)
}

// HandleCreate handles POST /api/v1/article.
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.CreateArticleRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	articleID, err := h.articles.Create(r.Context(), identity.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.Error(w, apperr.ResourceNotFound("Category not found"))
			return
		}
		log.Err(err).Msg("Failed to create article")
		response.Error(w, apperr.System("Failed to create article"))
		return
	}

	response.Created(w, "Article created successfully", map[string]string{"articleId": articleID})
}

// HandleUpdate handles PATCH /api/v1/article/{articleId}.
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "articleId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.UpdateArticleRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	err := h.articles.Update(r.Context(), identity.ID, chi.URLParam(r, "articleId"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotCreator):
			response.Error(w, apperr.ResourceNotFound(notCreatorMessage))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.Error(w, apperr.ResourceNotFound("Category not found"))
		default:
			log.Err(err).Msg("Failed to update article")
			response.Error(w, apperr.System("Failed to update article"))
		}
		return
	}

	response.OK(w, "Article updated successfully", nil)
}

// HandleDelete handles DELETE /api/v1/article/{articleId}.
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "articleId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.articles.Delete(r.Context(), identity.ID, chi.URLParam(r, "articleId")); err != nil {
		if errors.Is(err, service.ErrNotCreator) {
			response.Error(w, apperr.ResourceNotFound(notCreatorMessage))
			return
		}
		log.Err(err).Msg("Failed to delete article")
		response.Error(w, apperr.System("Failed to delete article"))
		return
	}

	response.NoContent(w)
}

// HandleLike handles POST /api/v1/article/{articleId}/like.
func (h *ArticleHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handleLikeChange(w, r, h.articles.Like, service.ErrAlreadyLiked, "Article already liked")
}

// HandleUnlike handles DELETE /api/v1/article/{articleId}/like.
func (h *ArticleHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.handleLikeChange(w, r, h.articles.Unlike, service.ErrNotLiked, "Article not liked yet")
}

func (h *ArticleHandler) handleLikeChange(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, userID, articleID string) error, conflict error, conflictMessage string) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "articleId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := change(r.Context(), identity.ID, chi.URLParam(r, "articleId")); err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			response.Error(w, apperr.ResourceNotFound("Article not found"))
		case errors.Is(err, conflict):
			response.Error(w, apperr.IllegalPayload(conflictMessage))
		default:
			log.Err(err).Msg("Failed to change article like")
			response.Error(w, apperr.System("Failed to change article like"))
		}
		return
	}

	response.NoContent(w)
}

// HandleAddComment handles POST /api/v1/article/{articleId}/comment.
func (h *ArticleHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "articleId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.CommentRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	err := h.articles.AddComment(r.Context(), identity.ID, chi.URLParam(r, "articleId"), req.Content)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.Error(w, apperr.ResourceNotFound("Article not found"))
			return
		}
		log.Err(err).Msg("Failed to add comment")
		response.Error(w, apperr.System("Failed to add comment"))
		return
	}

	response.Created(w, "Comment added successfully", nil)
}

// HandleComments handles GET /api/v1/article/{articleId}/comments.
func (h *ArticleHandler) HandleComments(w http.ResponseWriter, r *http.Request) {
	if appErr := validate.UUIDParams(r, "articleId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	comments, err := h.articles.Comments(r.Context(), chi.URLParam(r, "articleId"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.Error(w, apperr.ResourceNotFound("Article not found"))
			return
		}
		log.Err(err).Msg("Failed to list comments")
		response.Error(w, apperr.System("Failed to list comments"))
		return
	}

	response.OK(w, "", comments)
}
