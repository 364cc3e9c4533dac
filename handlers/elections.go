// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/naijavote/middleware"
	"github.com/danielhkuo/naijavote/models"
	"github.com/danielhkuo/naijavote/registry"
)

type ElectionHandler struct {
	registry *registry.Registry
}

func NewElectionHandler(reg *registry.Registry) *ElectionHandler {
	return &ElectionHandler{registry: reg}
}

// Create handles POST /api/elections
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Title) < 3 || len(req.Title) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be 3-100 characters")
		return
	}
	if len(req.Description) < 10 || len(req.Description) > 500 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description must be 10-500 characters")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid start date format, use ISO 8601")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid end date format, use ISO 8601")
		return
	}

	election, err := h.registry.Create(r.Context(), req.Title, req.Description, start, end)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, map[string]any{
		"message":  "Election created",
		"election": election,
	})
}

// List handles GET /api/elections
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	elections, err := h.registry.List(r.Context())
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"elections": elections})
}

// Get handles GET /api/elections/:id
func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	election, err := h.registry.Get(r.Context(), id)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"election": election})
}

// UpdateStatus handles PATCH /api/elections/:id/status
func (h *ElectionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Status == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status is required")
		return
	}

	election, err := h.registry.Transition(r.Context(), id, models.ElectionStatus(req.Status))
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"message":  "Election status updated",
		"election": election,
	})
}

// AddCandidate handles POST /api/elections/:id/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Name) < 2 || len(req.Name) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate name must be 2-100 characters")
		return
	}
	if len(req.Party) < 2 || len(req.Party) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "party must be 2-100 characters")
		return
	}

	candidate, err := h.registry.AddCandidate(r.Context(), id, req.Name, req.Party)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, map[string]any{
		"message":   "Candidate added",
		"candidate": candidate,
	})
}

// RemoveCandidate handles DELETE /api/elections/candidates/:candidateId
func (h *ElectionHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateId")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidateId is required")
		return
	}

	if err := h.registry.RemoveCandidate(r.Context(), candidateID); err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"message": "Candidate removed"})
}
