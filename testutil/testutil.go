// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/health-mate/auth"
	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/db"
	"github.com/danielhkuo/health-mate/middleware"
)

// TestDBURL is an in-memory SQLite database. db.Open pins the pool to a
// single connection, so every query in a test sees the same database.
const TestDBURL = ":memory:"

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret-0123456789abcdef"

// TestPassword is the password of every user made by CreateTestUser
const TestPassword = "password123"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DriverSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.DriverSQLite,
		JWTSecret:    TestJWTSecret,
		TokenTTL:     time.Hour,
		AdminEmails:  []string{"admin@example.com"},
		CORSOrigins:  []string{"*"},
	}
}

// passwordHash is computed once per test binary; bcrypt is slow
var (
	hashOnce     sync.Once
	passwordHash string
	hashErr      error
)

func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		passwordHash, hashErr = auth.HashPassword(TestPassword)
	})
	if hashErr != nil {
		t.Fatalf("Failed to hash password: %v", hashErr)
	}
	return passwordHash
}

// CreateTestUser inserts a user with TestPassword and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, name, email, role string) string {
	t.Helper()
	return CreateTestUserAt(t, conn, name, email, role, time.Now().UTC())
}

// CreateTestUserAt is CreateTestUser with an explicit created_at
func CreateTestUserAt(t *testing.T, conn *sql.DB, name, email, role string, createdAt time.Time) string {
	t.Helper()

	hash := testPasswordHash(t)

	userID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, name, email, hash, role, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestChat inserts a chat and returns its ID
func CreateTestChat(t *testing.T, conn *sql.DB, userID, botType, title string, createdAt time.Time) string {
	t.Helper()

	chatID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO chats (id, user_id, bot_type, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, chatID, userID, botType, title, `[{"text":"hello","sender":"user"}]`, createdAt.UTC(), createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test chat: %v", err)
	}

	return chatID
}

// CreateTestSubscription inserts a subscription and returns its ID
func CreateTestSubscription(t *testing.T, conn *sql.DB, userID, plan string, amount float64, createdAt time.Time) string {
	t.Helper()

	subID := auth.NewID()
	created := createdAt.UTC()
	_, err := conn.Exec(`
		INSERT INTO subscriptions
			(id, user_id, plan_type, amount, payment_status, start_date, renewal_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'completed', $5, $6, $7, $8)
	`, subID, userID, plan, amount, created, created.Add(30*24*time.Hour), created, created)
	if err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return subID
}

// Token issues a bearer token for the user
func Token(t *testing.T, cfg cliparse.Config, userID, email, role string) string {
	t.Helper()

	token, _, err := auth.IssueToken(userID, email, role, cfg.JWTSecret, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// AuthHeader returns an Authorization header map for MakeRequest
func AuthHeader(t *testing.T, cfg cliparse.Config, userID, email, role string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + Token(t, cfg, userID, email, role)}
}

// AsUser attaches claims to the request as RequireAuth would, for calling
// handlers directly
func AsUser(req *http.Request, userID, email, role string) *http.Request {
	claims := &auth.Claims{UserID: userID, Email: email, Role: role}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
