// Package auth provides password hashing and identity token utilities.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

var (
	// ErrHashFailed indicates the hashing primitive itself errored.
	ErrHashFailed = errors.New("password hashing failed")
	// ErrInvalidHash indicates the stored hash is malformed.
	ErrInvalidHash = errors.New("invalid hash format")
)

// HashPassword creates a bcrypt hash of the given password.
// bcrypt embeds a per-call random salt in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailed, err)
	}
	return string(hash), nil
}

// VerifyPassword checks if the password matches the stored hash.
// A mismatch returns (false, nil); only a malformed hash returns an error.
// bcrypt's comparison is constant-time over the derived key.
func VerifyPassword(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}
