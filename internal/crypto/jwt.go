package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidActionToken = errors.New("invalid or expired token")

// ActionClaims are the claims of a short-lived, single-purpose token such as
// a password-reset link. Session authentication does not use JWTs; those are
// opaque tokens resolved through the authority store.
type ActionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// GenerateActionToken creates a signed token binding a user id and email to
// an expiry.
func GenerateActionToken(userID, email, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := ActionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkstream",
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateActionToken parses and validates an action token, returning its
// claims if valid.
func ValidateActionToken(tokenString, secret string) (*ActionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidActionToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("inkstream"))
	if err != nil {
		return nil, ErrInvalidActionToken
	}

	claims, ok := token.Claims.(*ActionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidActionToken
	}

	return claims, nil
}
