package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appdb "stocktracker/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Fixed token configuration for tests
const (
	testSecret   = "test-signing-key-for-handler-tests"
	testIssuer   = "stocktracker-test"
	testAudience = "stocktracker-clients"
)

// setupTestRouter builds a router over an in-memory database. The Redis
// client points at a closed port, so every cache call errors and handlers
// fall through to the database.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Setup in-memory database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	// Migrate schema and seed roles
	if err := appdb.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	// Unreachable Redis: the cache layer must never be authoritative
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	r := gin.New()
	SetupRouter(r, db, rdb, testSecret, testIssuer, testAudience)
	return r, db
}

// doRequest performs a request against the router, JSON-encoding body when
// present and attaching the bearer token when non-empty
func doRequest(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response body into dest
func decodeBody(w *httptest.ResponseRecorder, dest any) error {
	return json.Unmarshal(w.Body.Bytes(), dest)
}

// registerUser registers an account and returns its auth response
func registerUser(t *testing.T, r *gin.Engine, username, email, password string) AuthResponse {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/account/register", RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to register %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode register response: %v", err)
	}
	return resp
}

// createStock inserts a catalog stock via the API using the given token
func createStock(t *testing.T, r *gin.Engine, token, symbol, company string) uint {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/stock", StockRequest{
		Symbol:      symbol,
		CompanyName: company,
		Purchase:    100,
		LastDiv:     1.5,
		Industry:    "Tech",
		MarketCap:   1000000,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create stock %s: status %d, body %s", symbol, w.Code, w.Body.String())
	}
	var stock struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stock); err != nil {
		t.Fatalf("Failed to decode stock response: %v", err)
	}
	return stock.ID
}
