package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// bcryptCost is the work factor for new hashes. Existing hashes keep
// the cost they were created with.
const bcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt. Passwords
// below MinPasswordLength are rejected before any hashing happens.
func HashPassword(password string) (string, error) {
	if !IsPasswordValid(password) {
		return "", ErrPasswordTooShort
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// VerifyPassword compares a stored bcrypt hash against a candidate
// password, returning ErrPasswordMismatch when they differ.
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// IsPasswordValid reports whether a new password meets the length
// policy. Handlers call it to reject weak passwords with a clean 400
// instead of surfacing the hashing error.
func IsPasswordValid(password string) bool {
	return len(password) >= MinPasswordLength
}
