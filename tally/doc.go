// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally aggregates committed ledger entries into ranked election
results.

Results are sealed until the election is CLOSED: GetResults fails with
models.ErrResultsNotAvailable for DRAFT and OPEN elections so partial
tallies can never influence a running election.

Ranking is by vote count descending with candidate name as the
deterministic secondary key. A tie for first place is reported
explicitly (Tied = true, Winner = nil) instead of being resolved by
whichever candidate happens to sort first.
*/
package tally
