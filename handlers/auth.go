// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielhkuo/naijavote/auth"
	"github.com/danielhkuo/naijavote/middleware"
	"github.com/danielhkuo/naijavote/models"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.NIN == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email, nin, and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid email")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.NIN, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidNIN) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RefreshToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	access, refresh, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRefreshToken) || errors.Is(err, models.ErrRefreshTokenExpired) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RefreshToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	if err := h.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, models.ErrInvalidRefreshToken) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "No token provided")
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), user.ID)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"user": u})
}
