package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost) // Hash with default cost
	if err != nil {
		return "", err // Return error if hashing fails
	}
	return string(hash), nil // Return the hash as a string
}

// CheckPassword compares a stored bcrypt hash against a plaintext candidate
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil // True only on a match
}
