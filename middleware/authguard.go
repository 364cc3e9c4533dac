// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/naijavote/auth"
	"github.com/danielhkuo/naijavote/cliparse"
	"github.com/danielhkuo/naijavote/models"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthUser is the authenticated identity attached to the request
// context by Protect.
type AuthUser struct {
	ID   string
	Role string
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(userContextKey).(AuthUser)
	return u, ok
}

// Protect requires a valid Bearer access token and re-checks that the
// user still exists (handles deleted accounts with live tokens).
func Protect(db *sql.DB, cfg cliparse.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			ErrorResponse(w, http.StatusUnauthorized, "No token provided")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseAccessToken(token, cfg.JWTSecret)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				ErrorResponse(w, http.StatusUnauthorized, "Token expired, please login again")
				return
			}
			ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		var role string
		err = db.QueryRowContext(r.Context(), `
			SELECT role FROM voter WHERE id = $1
		`, claims.UserID).Scan(&role)
		if err == sql.ErrNoRows {
			ErrorResponse(w, http.StatusUnauthorized, "User no longer exists")
			return
		}
		if err != nil {
			slog.Error("failed to verify user", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, AuthUser{ID: claims.UserID, Role: role})
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin gates a handler to ADMIN users. Must run after Protect.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			ErrorResponse(w, http.StatusForbidden, "Access denied. Admins only.")
			return
		}
		next(w, r)
	}
}
