// Package auth provides the password digest and session token primitives.
// The legacy store format is username:sha256hex, so the SHA-256 scheme must
// stay the default; bcrypt records are recognized by their $2 prefix.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// SchemeSHA256 stores hex(sha256(password)), the legacy record format.
	SchemeSHA256 = "sha256"
	// SchemeBcrypt stores a bcrypt hash. Opt-in for new deployments.
	SchemeBcrypt = "bcrypt"

	// TokenBytes is the entropy of a session token (128 bits as hex).
	TokenBytes = 16

	bcryptPrefix = "$2"
)

// NewSessionToken returns a cryptographically random hex token.
func NewSessionToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword digests the raw password under the given scheme.
func HashPassword(password, scheme string) (string, error) {
	switch scheme {
	case SchemeBcrypt:
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(hashed), nil
	case SchemeSHA256:
		sum := sha256.Sum256([]byte(password))
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash scheme: %s", scheme)
	}
}

// VerifyPassword reports whether the raw password matches the stored hash.
// The scheme is detected from the stored value, so mixed stores verify fine.
func VerifyPassword(password, storedHash string) bool {
	if strings.HasPrefix(storedHash, bcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
}
