package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match the stored
// credential.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// IsBcryptHash reports whether stored looks like a bcrypt digest.
func IsBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// PasswordVerifier checks a supplied password against a stored credential.
// Bcrypt is the default; plaintext equality survives only as a deprecated
// legacy mode for rows predating hashing, and must be enabled explicitly.
type PasswordVerifier struct {
	allowPlaintext bool
}

// NewPasswordVerifier builds a verifier.
func NewPasswordVerifier(allowPlaintext bool) *PasswordVerifier {
	return &PasswordVerifier{allowPlaintext: allowPlaintext}
}

// Verify returns nil when the password matches the stored credential.
func (v *PasswordVerifier) Verify(stored, password string) error {
	if IsBcryptHash(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			return ErrPasswordMismatch
		}
		return nil
	}
	if !v.allowPlaintext {
		return ErrPasswordMismatch
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
