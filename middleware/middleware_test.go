// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/naijavote/middleware"
	"github.com/danielhkuo/naijavote/models"
	"github.com/danielhkuo/naijavote/testutil"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func TestProtect(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	cfg := testutil.GetTestConfig()

	userID := testutil.CreateTestVoter(t, dbConn, "voter@example.com", models.RoleVoter)
	token := testutil.AccessToken(t, cfg, userID, models.RoleVoter)

	var seen middleware.AuthUser
	handler := middleware.Protect(dbConn, cfg, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.UserFromContext(r.Context())
		okHandler(w, r)
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/protected", nil, nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/protected", nil, map[string]string{
			"Authorization": "Basic dXNlcjpwYXNz",
		}))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/protected", nil, map[string]string{
			"Authorization": "Bearer not.a.token",
		}))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/protected", nil, map[string]string{
			"Authorization": "Bearer " + token,
		}))
		testutil.AssertStatus(t, w, http.StatusOK)
		if seen.ID != userID {
			t.Errorf("Expected authenticated user in context, got %q", seen.ID)
		}
		if seen.Role != models.RoleVoter {
			t.Errorf("Expected role in context, got %q", seen.Role)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		if _, err := dbConn.Exec(`DELETE FROM voter WHERE id = $1`, userID); err != nil {
			t.Fatalf("Failed to delete voter: %v", err)
		}
		w := httptest.NewRecorder()
		handler(w, testutil.MakeRequest("GET", "/protected", nil, map[string]string{
			"Authorization": "Bearer " + token,
		}))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestProtectPicksUpRoleChanges(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	cfg := testutil.GetTestConfig()

	userID := testutil.CreateTestVoter(t, dbConn, "voter@example.com", models.RoleVoter)
	token := testutil.AccessToken(t, cfg, userID, models.RoleVoter)

	// Promote after the token was issued; the guard reads the current role
	if _, err := dbConn.Exec(`UPDATE voter SET role = $1 WHERE id = $2`, models.RoleAdmin, userID); err != nil {
		t.Fatalf("Failed to promote voter: %v", err)
	}

	var seen middleware.AuthUser
	handler := middleware.Protect(dbConn, cfg, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.UserFromContext(r.Context())
		okHandler(w, r)
	})

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/protected", nil, map[string]string{
		"Authorization": "Bearer " + token,
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
	if seen.Role != models.RoleAdmin {
		t.Errorf("Expected current role from the database, got %q", seen.Role)
	}
}

func TestRequireAdmin(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	cfg := testutil.GetTestConfig()

	voterID := testutil.CreateTestVoter(t, dbConn, "voter@example.com", models.RoleVoter)
	adminID := testutil.CreateTestVoter(t, dbConn, "admin@example.com", models.RoleAdmin)

	handler := middleware.Protect(dbConn, cfg, middleware.RequireAdmin(okHandler))

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/admin", nil, map[string]string{
		"Authorization": "Bearer " + testutil.AccessToken(t, cfg, voterID, models.RoleVoter),
	}))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/admin", nil, map[string]string{
		"Authorization": "Bearer " + testutil.AccessToken(t, cfg, adminID, models.RoleAdmin),
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestRequireAdminWithoutProtect(t *testing.T) {
	handler := middleware.RequireAdmin(okHandler)

	w := httptest.NewRecorder()
	handler(w, testutil.MakeRequest("GET", "/admin", nil, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestRateLimiter(t *testing.T) {
	rl := middleware.NewRateLimiter(3, time.Hour, "slow down")
	handler := rl.Wrap(okHandler)

	req := testutil.MakeRequest("GET", "/limited", nil, nil)
	req.RemoteAddr = "10.0.0.1:12345"

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	w := httptest.NewRecorder()
	handler(w, req)
	testutil.AssertStatus(t, w, http.StatusTooManyRequests)

	// A different client has its own bucket
	other := testutil.MakeRequest("GET", "/limited", nil, nil)
	other.RemoteAddr = "10.0.0.2:12345"
	w = httptest.NewRecorder()
	handler(w, other)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"remote addr with port", "192.168.1.1:54321", nil, "192.168.1.1"},
		{"x-forwarded-for single", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
		{"ipv6 remote addr", "[::1]:8080", nil, "::1"},
		{"remote addr without port", "192.168.1.1", nil, "192.168.1.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/", nil, tc.headers)
			req.RemoteAddr = tc.remoteAddr
			if got := middleware.GetClientIP(req); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := middleware.CORS(http.HandlerFunc(okHandler))

	req := testutil.MakeRequest("OPTIONS", "/api/votes", nil, map[string]string{
		"Origin": "http://localhost:3000",
	})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected origin echoed back, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Expected allowed methods header on preflight")
	}
}
