package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/payment"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
	"github.com/inkstream/inkstream-go/internal/validate"
)

// UserHandler handles the authenticated /user routes.
type UserHandler struct {
	users    *service.UserService
	articles *service.ArticleService
	orders   *service.OrderService
	codec    *payment.Codec
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, articles *service.ArticleService, orders *service.OrderService, codec *payment.Codec) *UserHandler {
	return &UserHandler{users: users, articles: articles, orders: orders, codec: codec}
}

// HandleInfo handles GET /api/v1/user.
func (h *UserHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	info, err := h.users.Info(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, apperr.UserNotFound(""))
			return
		}
		log.Err(err).Msg("Failed to get user info")
		response.Error(w, apperr.System("Failed to get user info"))
		return
	}

	response.OK(w, "", info)
}

// HandleUpdate handles PATCH /api/v1/user.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.UpdateUserRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.users.UpdateProfile(r.Context(), identity.ID, req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, apperr.UserNotFound(""))
			return
		}
		log.Err(err).Msg("Failed to update user")
		response.Error(w, apperr.System("Failed to update user"))
		return
	}

	response.OK(w, "User updated successfully", nil)
}

// HandleFollowers handles GET /api/v1/user/followers.
func (h *UserHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	h.handleFollowList(w, r, h.users.Followers, "Failed to list followers")
}

// HandleFollowings handles GET /api/v1/user/followings.
func (h *UserHandler) HandleFollowings(w http.ResponseWriter, r *http.Request) {
	h.handleFollowList(w, r, h.users.Followings, "Failed to list followings")
}

func (h *UserHandler) handleFollowList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, userID string) ([]model.FollowerInfo, error), failure string) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	users, err := list(r.Context(), identity.ID)
	if err != nil {
		log.Err(err).Msg(failure)
		response.Error(w, apperr.System(failure))
		return
	}

	response.OK(w, "", users)
}

func (h *UserHandler) handleFollowChange(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, followerID, followingID string) error, selfMessage, failure string) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "userId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	err := change(r.Context(), identity.ID, chi.URLParam(r, "userId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			response.Error(w, apperr.IllegalPathParam(selfMessage))
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(w, apperr.UserNotFound(""))
		default:
			log.Err(err).Msg(failure)
			response.Error(w, apperr.System(failure))
		}
		return
	}

	response.NoContent(w)
}

// HandleFollow handles POST /api/v1/user/{userId}/follow.
func (h *UserHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	h.handleFollowChange(w, r, h.users.Follow, "You cannot follow yourself", "Failed to follow user")
}

// HandleUnfollow handles DELETE /api/v1/user/{userId}/follow.
func (h *UserHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	h.handleFollowChange(w, r, h.users.Unfollow, "You cannot unfollow yourself", "Failed to unfollow user")
}

// HandleArticles handles GET /api/v1/user/articles.
func (h *UserHandler) HandleArticles(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	articles, err := h.articles.ListByCreator(r.Context(), identity.ID)
	if err != nil {
		log.Err(err).Msg("Failed to list user articles")
		response.Error(w, apperr.System("Failed to list user articles"))
		return
	}

	response.OK(w, "", articles)
}

// HandleSubscribe handles POST /api/v1/user/{userId}/subscribe. It opens a
// pending order and returns the encrypted trade payload the client posts to
// the payment gateway.
func (h *UserHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if appErr := validate.UUIDParams(r, "userId"); appErr != nil {
		response.Error(w, appErr)
		return
	}

	order, buyer, err := h.orders.CreateForSubscription(r.Context(), identity.ID, chi.URLParam(r, "userId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfSubscribe):
			response.Error(w, apperr.IllegalPathParam("You cannot subscribe yourself"))
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(w, apperr.UserNotFound(""))
		default:
			log.Err(err).Msg("Failed to create subscription order")
			response.Error(w, apperr.System("Failed to create subscription order"))
		}
		return
	}

	payload := h.codec.EncryptTrade(payment.Trade{
		MerchantOrderNo: order.OrderNo,
		Amount:          service.SubscriptionAmount,
		ItemDesc:        "Monthly subscription",
		Email:           buyer.Email,
		Timestamp:       time.Now().Unix(),
	})

	response.Created(w, "Order created successfully", payload)
}
