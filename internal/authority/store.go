// Package authority maps opaque bearer tokens to the identity they were
// issued for. Records are created on login, destroyed on logout or when found
// structurally invalid, and expire on their own otherwise.
package authority

import "context"

// Record is the identity stored under a session token. Multiple tokens may
// reference the same identity; nothing enforces single-session.
type Record struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Store is the token/session store contract. Get returns (nil, nil) for a
// missing or expired token; Delete is idempotent.
type Store interface {
	Set(ctx context.Context, token string, rec Record) error
	Get(ctx context.Context, token string) (*Record, error)
	Delete(ctx context.Context, token string) error
}
