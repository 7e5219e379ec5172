package userstore

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword hashes a password using SHA-256 for storage.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// VerifyPassword compares a plaintext password against a stored hash in
// constant time.
func VerifyPassword(password, hash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
