package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == "password123" {
		t.Fatal("Hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "password123") {
		t.Error("Expected the correct password to verify")
	}
	if CheckPassword(hash, "wrongpassword") {
		t.Error("Expected a wrong password to fail")
	}
}
