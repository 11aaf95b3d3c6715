package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/authority"
	"github.com/inkstream/inkstream-go/internal/response"
)

// Identity is the authenticated caller attached to the request context. It
// lives for one request and is never persisted.
type Identity struct {
	ID    string
	Email string
	Token string
}

type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from the request
// context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// Auth resolves bearer tokens through the authority store.
type Auth struct {
	store authority.Store
}

func NewAuth(store authority.Store) *Auth {
	return &Auth{store: store}
}

// Required rejects requests without a resolvable bearer token. No store
// lookup happens when the header is missing or malformed.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			response.Error(w, apperr.PermissionDenied("Token is required"))
			return
		}

		identity, appErr := a.resolve(r.Context(), token)
		if appErr != nil {
			response.Error(w, appErr)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// Optional lets requests without a token through unauthenticated; a token
// that is present but invalid still fails.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		identity, appErr := a.resolve(r.Context(), token)
		if appErr != nil {
			response.Error(w, appErr)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// resolve performs the single store lookup for a request. A store error is
// reported the same way as an unknown token. An identity whose id is not a
// well-formed resource identifier destroys the session as a side effect.
func (a *Auth) resolve(ctx context.Context, token string) (*Identity, *apperr.Error) {
	rec, err := a.store.Get(ctx, token)
	if err != nil {
		log.Err(err).Msg("Authority store lookup failed")
		return nil, apperr.PermissionDenied("Token is invalid")
	}
	if rec == nil {
		return nil, apperr.PermissionDenied("Token is invalid")
	}

	if _, err := uuid.Parse(rec.ID); err != nil {
		if delErr := a.store.Delete(ctx, token); delErr != nil {
			log.Err(delErr).Msg("Failed to delete session with invalid identity")
		}
		return nil, apperr.PermissionDenied("Authority ID is invalid")
	}

	return &Identity{ID: rec.ID, Email: rec.Email, Token: token}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}

func withIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
