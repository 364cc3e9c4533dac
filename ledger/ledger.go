// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/naijavote/encryption"
	"github.com/danielhkuo/naijavote/models"
)

// castAttempts bounds internal retries on chain write conflicts before
// the conflict is surfaced to the caller.
const castAttempts = 3

// Engine accepts vote-cast requests and commits them to the append-only
// hash-chained ledger. The sealer is injected at construction so the
// encryption key is explicit configuration, not ambient state.
type Engine struct {
	db     *sql.DB
	sealer *encryption.Sealer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(db *sql.DB, sealer *encryption.Sealer) *Engine {
	return &Engine{
		db:     db,
		sealer: sealer,
		locks:  make(map[string]*sync.Mutex),
	}
}

// CastVote validates eligibility, links the new entry to the current
// chain tail, and commits it atomically. The returned receipt carries
// the entry hash, election id, and timestamp - never the candidate
// choice. Chain conflicts are retried up to castAttempts times.
func (e *Engine) CastVote(ctx context.Context, voterID, electionID, candidateID string) (*models.VoteReceipt, error) {
	var receipt *models.VoteReceipt
	var err error
	for attempt := 1; attempt <= castAttempts; attempt++ {
		receipt, err = e.castOnce(ctx, voterID, electionID, candidateID)
		if !errors.Is(err, models.ErrChainConflict) {
			return receipt, err
		}
		slog.Warn("vote chain conflict, retrying",
			"election_id", electionID, "attempt", attempt)
		if attempt < castAttempts {
			time.Sleep(castBackoff(attempt))
		}
	}
	return nil, err
}

// castBackoff spaces conflict retries so contending writers do not
// immediately collide again. The per-election lock already serializes
// casts within this process; the backoff covers database-level
// contention (a second server instance, or an external writer holding
// the sqlite lock).
func castBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 10 * time.Millisecond
}

func (e *Engine) castOnce(ctx context.Context, voterID, electionID, candidateID string) (*models.VoteReceipt, error) {
	// 1-3. Election exists, is OPEN, and the current instant is inside
	// the voting window
	var status, startStr, endStr string
	err := e.db.QueryRowContext(ctx, `
		SELECT status, start_date, end_date FROM election WHERE id = $1
	`, electionID).Scan(&status, &startStr, &endStr)
	if err == sql.ErrNoRows {
		return nil, models.ErrElectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query election: %w", err)
	}

	if models.ElectionStatus(status) != models.StatusOpen {
		return nil, models.ErrElectionNotOpen
	}

	start, err := models.ParseTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := models.ParseTime(endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}

	now := time.Now().UTC()
	if now.Before(start) {
		return nil, models.ErrVotingNotStarted
	}
	if now.After(end) {
		return nil, models.ErrVotingClosed
	}

	// 4. Candidate exists and belongs to this election
	var candidateOK bool
	err = e.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM candidate WHERE id = $1 AND election_id = $2)
	`, candidateID, electionID).Scan(&candidateOK)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	if !candidateOK {
		return nil, fmt.Errorf("%w in this election", models.ErrCandidateNotFound)
	}

	// 5 + chain construction. Read-tail, duplicate check, and insert
	// must not interleave with another cast for the same election:
	// hold the per-election lock across the whole transaction.
	// Different elections never contend.
	lock := e.electionLock(electionID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classifyStorageErr("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var hasVoted bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = $1 AND election_id = $2)
	`, voterID, electionID).Scan(&hasVoted)
	if err != nil {
		return nil, classifyStorageErr("failed to check for prior vote", err)
	}
	if hasVoted {
		return nil, models.ErrDuplicateVote
	}

	// Chain tail: hash and timestamp of the most recent entry
	var prevHash sql.NullString
	var tailCreatedStr string
	err = tx.QueryRowContext(ctx, `
		SELECT vote_hash, created_at FROM vote
		WHERE election_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, electionID).Scan(&prevHash, &tailCreatedStr)
	if err != nil && err != sql.ErrNoRows {
		return nil, classifyStorageErr("failed to read chain tail", err)
	}

	castAt := now
	if tailCreatedStr != "" {
		tailCreated, err := models.ParseTime(tailCreatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tail timestamp: %w", err)
		}
		// Creation order must be total: force strictly increasing
		// timestamps within an election
		if !castAt.After(tailCreated) {
			castAt = tailCreated.Add(time.Nanosecond)
		}
	}

	// Timestamp is captured once and reused for both the digest input
	// and storage
	ts := models.FormatTime(castAt)
	voteHash := encryption.Digest(voterID, electionID, candidateID, ts)

	encryptedVote, err := e.sealer.Encrypt(candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt ballot: %w", err)
	}

	var previousHash *string
	if prevHash.Valid {
		previousHash = &prevHash.String
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, voter_id, election_id, candidate_id, encrypted_vote, vote_hash, previous_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.New().String(), voterID, electionID, candidateID, encryptedVote, voteHash, previousHash, ts)
	if err != nil {
		if isUniqueVoteViolation(err) {
			return nil, models.ErrDuplicateVote
		}
		return nil, classifyStorageErr("failed to insert vote", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyStorageErr("failed to commit vote", err)
	}

	slog.Info("vote cast", "election_id", electionID, "vote_hash", voteHash)

	return &models.VoteReceipt{
		VoteHash:   voteHash,
		ElectionID: electionID,
		Timestamp:  castAt,
	}, nil
}

func (e *Engine) electionLock(electionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[electionID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[electionID] = l
	}
	return l
}

// isUniqueVoteViolation matches the one-vote-per-voter constraint
// violation for both drivers
func isUniqueVoteViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "vote.voter_id") ||
		strings.Contains(msg, "vote_voter_id_election_id_key")
}

// classifyStorageErr wraps err, tagging retryable contention
// (serialization failures, lock timeouts) as a chain conflict so
// CastVote retries it. Everything else stays an infrastructure failure.
func classifyStorageErr(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected") {
		return fmt.Errorf("%w: %s: %v", models.ErrChainConflict, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
