// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/naijavote/auth"
	"github.com/danielhkuo/naijavote/cliparse"
	"github.com/danielhkuo/naijavote/db"
	"github.com/danielhkuo/naijavote/models"
)

// SetupTestDB creates a fresh sqlite database in a temp directory with
// the full schema. One open connection: sqlite has a single writer, so
// serializing the pool keeps concurrent tests free of SQLITE_BUSY.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "naijavote_test.db")
	conn, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              5000,
		DatabaseURL:       "file:naijavote_test.db",
		DatabaseType:      "sqlite",
		JWTSecret:         "test-jwt-secret",
		VoteEncryptionKey: "test-vote-encryption-key",
	}
}

// TestPassword is the password used for all fixture voters.
const TestPassword = "password123"

var (
	hashOnce     sync.Once
	passwordHash string
)

// CreateTestVoter inserts a voter with role and returns its ID.
// The bcrypt hash of TestPassword is computed once per process.
func CreateTestVoter(t *testing.T, dbConn *sql.DB, email, role string) string {
	t.Helper()

	hashOnce.Do(func() {
		h, err := auth.HashPassword(TestPassword)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		passwordHash = h
	})

	id := uuid.New().String()
	now := models.FormatTime(time.Now().UTC())
	_, err := dbConn.Exec(`
		INSERT INTO voter (id, email, nin, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, email, randomNIN(), passwordHash, role, now, now)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// randomNIN produces a unique 11-digit national id for fixtures
func randomNIN() string {
	u := uuid.New()
	nin := make([]byte, 11)
	for i := range nin {
		nin[i] = '0' + u[i]%10
	}
	return string(nin)
}

// AccessToken issues a signed access token for a fixture voter.
func AccessToken(t *testing.T, cfg cliparse.Config, userID, role string) string {
	t.Helper()

	token, err := auth.GenerateAccessToken(userID, role, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}
	return token
}

// CreateTestElection inserts an election row directly, bypassing the
// registry's schedule validation so fixtures can sit anywhere in time.
// status should be models.StatusDraft, StatusOpen, or StatusClosed.
func CreateTestElection(t *testing.T, dbConn *sql.DB, status models.ElectionStatus, start, end time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := dbConn.Exec(`
		INSERT INTO election (id, title, description, start_date, end_date, status, created_at)
		VALUES ($1, 'Test Election', 'An election for testing', $2, $3, $4, $5)
	`, id, models.FormatTime(start), models.FormatTime(end), string(status),
		models.FormatTime(time.Now().UTC()))
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return id
}

// AddTestCandidate inserts a candidate and returns its ID
func AddTestCandidate(t *testing.T, dbConn *sql.DB, electionID, name, party string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := dbConn.Exec(`
		INSERT INTO candidate (id, election_id, name, party, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, electionID, name, party, models.FormatTime(time.Now().UTC()))
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
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
