// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the vote-casting engine and chain verifier: a
state-gated, tamper-evident, append-only ledger of ballots.

# Casting

CastVote checks, in order: election exists, election is OPEN, the
current instant is within [start, end], the candidate belongs to the
election, and the voter has not already voted. On success it commits
one immutable entry:

  - vote_hash: SHA-256 over (voter, election, candidate, timestamp)
  - previous_hash: the hash of the election's current chain tail,
    or NULL for the first entry
  - encrypted_vote: the candidate choice sealed with AES-256-CBC and
    a fresh random IV

The receipt returned to the voter carries only the hash, election id,
and timestamp, preserving ballot secrecy.

# Serialization

The read-tail -> duplicate-check -> insert sequence runs inside one
database transaction while holding a per-election mutex, so concurrent
casts cannot observe the same tail and fork the chain. Locking is
scoped per election; different elections never contend. The
UNIQUE(voter_id, election_id) constraint backstops the duplicate check.
Retryable contention surfaces as models.ErrChainConflict and is retried
a bounded number of times inside CastVote.

# Verification

VerifyChain replays an election's entries in creation order and checks
each link. It is read-only and may run at any time, including before
the election closes.
*/
package ledger
