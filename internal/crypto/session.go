package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSessionToken creates the opaque bearer token stored in the
// authority store. 32 bytes gives 256 bits of entropy.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
