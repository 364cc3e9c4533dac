// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry owns election and candidate records.

# Lifecycle

Elections are created in DRAFT and move forward-only:

	DRAFT -> OPEN -> CLOSED

Transition rejects every other edge, including no-ops and backward
moves, with models.ErrIllegalTransition. The schedule invariant
(end after start, start not in the past) is checked once, at Create.

# Candidates

Candidates exist only while the owning election is in DRAFT. Within one
election no two candidates may share a party, compared
case-insensitively; a unique index on (election_id, LOWER(party))
backstops the application check.

# Read models

Get and List return ElectionDetail values that include per-candidate
and total committed vote counts, aggregated with SQL COUNT.
*/
package registry
