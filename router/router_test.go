// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/naijavote/router"
	"github.com/danielhkuo/naijavote/testutil"
)

func TestRoutes(t *testing.T) {
	dbConn := testutil.SetupTestDB(t)
	defer dbConn.Close()
	mux := router.NewRouter(dbConn, testutil.GetTestConfig())

	cases := []struct {
		name     string
		method   string
		path     string
		expected int
	}{
		{"health", "GET", "/health", http.StatusOK},
		{"root", "GET", "/", http.StatusOK},
		{"list elections is public", "GET", "/api/elections", http.StatusOK},
		{"create election needs auth", "POST", "/api/elections", http.StatusUnauthorized},
		{"cast vote needs auth", "POST", "/api/votes", http.StatusUnauthorized},
		{"results need auth", "GET", "/api/votes/some-id/results", http.StatusUnauthorized},
		{"verify needs auth", "GET", "/api/votes/some-id/verify", http.StatusUnauthorized},
		{"me needs auth", "GET", "/api/auth/me", http.StatusUnauthorized},
		{"unknown route", "GET", "/api/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, nil))
			testutil.AssertStatus(t, w, tc.expected)
		})
	}
}
