// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Core error taxonomy. Every precondition failure in the registry,
// ledger, and tabulator is one of these sentinels (possibly wrapped
// with detail via fmt.Errorf and %w). Storage-layer failures are never
// mapped onto these: they stay wrapped driver errors so callers can
// tell "your request was invalid" from "the system is unavailable".
var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidSchedule   = errors.New("invalid election schedule")
	ErrInvalidStatus     = errors.New("invalid election status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrElectionNotDraft  = errors.New("election is not in draft")
	ErrDuplicateParty    = errors.New("a candidate from this party already exists in this election")

	ErrElectionNotOpen  = errors.New("this election is not currently open for voting")
	ErrVotingNotStarted = errors.New("voting has not started yet")
	ErrVotingClosed     = errors.New("voting has closed for this election")
	ErrDuplicateVote    = errors.New("you have already voted in this election")

	// ErrChainConflict is returned when concurrent casts contend for
	// the same chain tail. Retryable; the ledger engine retries a
	// bounded number of times before surfacing it.
	ErrChainConflict = errors.New("vote chain write conflict")

	ErrResultsNotAvailable = errors.New("results are only available after the election is closed")

	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateUser       = errors.New("email or NIN already registered")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired, please login again")
)
