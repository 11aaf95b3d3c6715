// Package handler exposes the HTTP surface. Handlers validate input, call a
// service, and translate service sentinels into typed errors for the response
// boundary.
package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
	"github.com/inkstream/inkstream-go/internal/validate"
)

// maxBodySize caps request bodies before decoding.
const maxBodySize = 1 << 20 // 1MB

// loginFailedMessage deliberately does not reveal whether the email exists.
const loginFailedMessage = "User not found or wrong password"

// AuthHandler handles the /auth routes.
type AuthHandler struct {
	auth      *service.AuthService
	clientURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, clientURL string) *AuthHandler {
	return &AuthHandler{auth: auth, clientURL: clientURL}
}

// HandleRegister handles POST /api/v1/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.RegisterRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.auth.Register(r.Context(), req); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Error(w, apperr.UserAlreadyExists())
			return
		}
		log.Err(err).Msg("Failed to register user")
		response.Error(w, apperr.System("Failed to register user"))
		return
	}

	response.Created(w, "User registered successfully", nil)
}

// HandleLogin handles POST /api/v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.LoginRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(w, apperr.New(http.StatusUnauthorized, apperr.CodeUserNotFound, loginFailedMessage))
		case errors.Is(err, service.ErrPasswordMismatch):
			response.Error(w, apperr.New(http.StatusUnauthorized, apperr.CodePasswordNotMatch, loginFailedMessage))
		default:
			log.Err(err).Msg("Failed to login user")
			response.Error(w, apperr.System("Failed to login"))
		}
		return
	}

	response.OK(w, "", map[string]string{"token": token})
}

// HandleVerifyEmail handles POST /api/v1/auth/verify-email.
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.VerifyEmailRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.auth.VerifyEmail(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Error(w, apperr.UserAlreadyExists())
			return
		}
		log.Err(err).Msg("Failed to verify email")
		response.Error(w, apperr.System("Failed to verify email"))
		return
	}

	response.OK(w, "Email is available", nil)
}

// HandleLogout handles POST /api/v1/auth/logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	if err := h.auth.Logout(r.Context(), identity.Token); err != nil {
		log.Err(err).Msg("Failed to logout user")
		response.Error(w, apperr.System("Failed to logout"))
		return
	}

	response.NoContent(w)
}

// HandleResetPassword handles PATCH /api/v1/auth/reset-password.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.PermissionDenied(""))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.ResetPasswordRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), identity.ID, req.Password); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(w, apperr.UserNotFound(""))
			return
		}
		log.Err(err).Msg("Failed to reset password")
		response.Error(w, apperr.System("Failed to reset password"))
		return
	}

	response.OK(w, "Password reset successfully", nil)
}

// HandleForgotPassword handles POST /api/v1/auth/forgot-password. The
// response is the same whether or not the email exists.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.ForgotPasswordRequest
	if appErr := validate.Body(r, &req); appErr != nil {
		response.Error(w, appErr)
		return
	}

	token, err := h.auth.ForgotPassword(r.Context(), req.Email)
	switch {
	case err == nil:
		// Mail delivery is an external collaborator; surface the link in the
		// logs so operators can relay it.
		log.Info().
			Str("email", req.Email).
			Str("link", h.clientURL+"/reset-password?token="+token).
			Msg("Password reset link issued")
	case errors.Is(err, service.ErrUserNotFound):
	default:
		log.Err(err).Msg("Failed to issue password reset token")
		response.Error(w, apperr.System("Failed to process request"))
		return
	}

	response.OK(w, "If the email exists, a reset link has been sent", nil)
}
