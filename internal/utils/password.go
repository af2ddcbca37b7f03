package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Two credential formats coexist in the users table: the legacy unsalted
// sha256 hex digest inherited from early deployments (the seeded admin row
// uses it) and bcrypt for everything created or rehashed since. Bcrypt
// hashes are recognised by their "$2" version prefix.

// LegacyHashPassword computes the legacy sha256 hex digest of a password.
// New credentials should use BcryptPassword; this survives only so old rows
// remain verifiable until cmd/rehash has upgraded them.
func LegacyHashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// BcryptPassword hashes a password with bcrypt at the default cost.
func BcryptPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password with bcrypt: %w", err)
	}
	return string(hashed), nil
}

// IsLegacyHash reports whether storedHash is in the legacy sha256 hex format
// rather than bcrypt.
func IsLegacyHash(storedHash string) bool {
	return !strings.HasPrefix(storedHash, "$2")
}

// VerifyPassword checks a plaintext password against a stored credential,
// handling both formats.
func VerifyPassword(password, storedHash string) bool {
	if IsLegacyHash(storedHash) {
		digest := LegacyHashPassword(password)
		return subtle.ConstantTimeCompare([]byte(digest), []byte(storedHash)) == 1
	}

	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
