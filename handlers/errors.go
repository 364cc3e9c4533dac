// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/naijavote/middleware"
	"github.com/danielhkuo/naijavote/models"
)

// writeCoreError maps the core error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an infrastructure failure and maps
// to 500 without leaking detail to the client.
func writeCoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrElectionNotFound),
		errors.Is(err, models.ErrCandidateNotFound),
		errors.Is(err, models.ErrUserNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())

	case errors.Is(err, models.ErrInvalidSchedule),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrVotingNotStarted),
		errors.Is(err, models.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, models.ErrIllegalTransition),
		errors.Is(err, models.ErrElectionNotDraft),
		errors.Is(err, models.ErrElectionNotOpen),
		errors.Is(err, models.ErrDuplicateParty),
		errors.Is(err, models.ErrDuplicateVote),
		errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrResultsNotAvailable):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, models.ErrChainConflict):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "System busy, please retry")

	default:
		slog.Error("internal error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
