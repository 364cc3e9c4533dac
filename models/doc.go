// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API,
plus the core error taxonomy.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, nin, password
  - LoginRequest: email, password
  - RefreshRequest: refreshToken
  - CreateElectionRequest: title, description, startDate, endDate
  - UpdateStatusRequest: status
  - AddCandidateRequest: name, party
  - CastVoteRequest: electionId, candidateId

# Response Types

  - AuthResponse: accessToken, refreshToken, user
  - CastVoteResponse: message, receipt (voteHash, electionId, timestamp)
  - ChainReport: valid, message, totalVotes
  - ElectionResults: election, winner, tied, results
  - ErrorResponse: error, message

# Domain Types

  - User: registered voter with role
  - Election: lifecycle state machine (DRAFT -> OPEN -> CLOSED)
  - Candidate: per-election, unique party (case-insensitive)
  - Vote: immutable ledger entry with hash chain linkage

# Constants

Election status values:

	StatusDraft  = "DRAFT"
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"

User roles:

	RoleVoter = "VOTER"
	RoleAdmin = "ADMIN"

# Errors

Every core precondition failure is a package-level sentinel (e.g.
ErrDuplicateVote, ErrIllegalTransition). Handlers map them to HTTP
status codes with errors.Is.
*/
package models
