package auth

import (
	"crypto/rand"
	"encoding/base64"
)

const (
	// SessionTokenLength is the length of session tokens in bytes
	SessionTokenLength = 32
)

// GenerateSessionToken generates a cryptographically secure random token
// used as the opaque session cookie value
func GenerateSessionToken() (string, error) {
	b := make([]byte, SessionTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
