// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/naijavote/ledger"
	"github.com/danielhkuo/naijavote/middleware"
	"github.com/danielhkuo/naijavote/models"
	"github.com/danielhkuo/naijavote/tally"
)

type VoteHandler struct {
	engine    *ledger.Engine
	tabulator *tally.Tabulator
}

func NewVoteHandler(engine *ledger.Engine, tabulator *tally.Tabulator) *VoteHandler {
	return &VoteHandler{engine: engine, tabulator: tabulator}
}

// CastVote handles POST /api/votes
// The voter identity comes from the access token, never the body.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ElectionID == "" || req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId and candidateId are required")
		return
	}
	if _, err := uuid.Parse(req.ElectionID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid election ID format")
		return
	}
	if _, err := uuid.Parse(req.CandidateID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid candidate ID format")
		return
	}

	receipt, err := h.engine.CastVote(r.Context(), user.ID, req.ElectionID, req.CandidateID)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message: "Vote cast successfully",
		Receipt: *receipt,
	})
}

// GetResults handles GET /api/votes/:electionId/results
func (h *VoteHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	results, err := h.tabulator.GetResults(r.Context(), electionID)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// VerifyChain handles GET /api/votes/:electionId/verify
func (h *VoteHandler) VerifyChain(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	report, err := h.engine.VerifyChain(r.Context(), electionID)
	if err != nil {
		writeCoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}
