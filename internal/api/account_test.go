package api

import (
	"net/http"
	"testing"

	"stocktracker/internal/domain"
)

func TestRegisterIssuesTokenAndAssignsUserRole(t *testing.T) {
	r, db := setupTestRouter(t)

	resp := registerUser(t, r, "Alice", "alice@example.com", "password123")
	if resp.Token == "" {
		t.Fatal("Expected a token on registration")
	}
	if resp.Username != "alice" {
		t.Errorf("Expected case-normalized username alice, got %s", resp.Username)
	}

	// Every new registrant gets the default User role
	var user domain.User
	if err := db.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("Failed to load registered user: %v", err)
	}
	if user.RoleID != domain.RoleUserID {
		t.Errorf("Expected role ID %d, got %d", domain.RoleUserID, user.RoleID)
	}
	if user.Password == "password123" {
		t.Error("Password must not be stored in plaintext")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, db := setupTestRouter(t)

	registerUser(t, r, "Alice", "alice@example.com", "password123")

	// Same username, different casing and email: still a conflict
	w := doRequest(r, http.MethodPost, "/api/account/register", RegisterRequest{
		Username: "ALICE",
		Email:    "other@example.com",
		Password: "password123",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate username, got %d", w.Code)
	}

	// Duplicate email is rejected too
	w = doRequest(r, http.MethodPost, "/api/account/register", RegisterRequest{
		Username: "Bob",
		Email:    "alice@example.com",
		Password: "password123",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate email, got %d", w.Code)
	}

	// The first registration is the only row
	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly 1 user, got %d", count)
	}
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setupTestRouter(t)

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"short password", RegisterRequest{Username: "alice", Email: "a@example.com", Password: "short"}},
		{"long password", RegisterRequest{Username: "alice", Email: "a@example.com", Password: "0123456789abcdef"}},
		{"bad username", RegisterRequest{Username: "1alice!", Email: "a@example.com", Password: "password123"}},
		{"bad email", RegisterRequest{Username: "alice", Email: "not-an-email", Password: "password123"}},
		{"missing fields", RegisterRequest{Username: "alice"}},
	}
	for _, tc := range cases {
		w := doRequest(r, http.MethodPost, "/api/account/register", tc.req, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	r, _ := setupTestRouter(t)

	registerUser(t, r, "Alice", "alice@example.com", "password123")

	// Correct credentials return a token the authorization gate accepts
	w := doRequest(r, http.MethodPost, "/api/account/login", LoginRequest{Username: "Alice", Password: "password123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on login, got %d, body %s", w.Code, w.Body.String())
	}
	var resp AuthResponse
	if err := decodeBody(w, &resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected a token on login")
	}
	if got := doRequest(r, http.MethodGet, "/api/portfolio", nil, resp.Token); got.Code != http.StatusOK {
		t.Errorf("Expected the gate to accept the issued token, got %d", got.Code)
	}

	// Wrong password: 401 and no token
	w = doRequest(r, http.MethodPost, "/api/account/login", LoginRequest{Username: "Alice", Password: "wrongpassword"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", w.Code)
	}
	var failed AuthResponse
	_ = decodeBody(w, &failed)
	if failed.Token != "" {
		t.Error("No token may be issued on a failed login")
	}

	// Unknown username: 401
	w = doRequest(r, http.MethodPost, "/api/account/login", LoginRequest{Username: "nobody", Password: "password123"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown username, got %d", w.Code)
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	r, _ := setupTestRouter(t)

	// Missing token
	if w := doRequest(r, http.MethodGet, "/api/portfolio", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}
	// Garbage token
	if w := doRequest(r, http.MethodGet, "/api/portfolio", nil, "not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a malformed token, got %d", w.Code)
	}
}
