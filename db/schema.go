// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// Timestamps are stored as TEXT in models.TimeLayout (fixed-width UTC
// nanoseconds) so the same schema and the same ORDER BY work on both
// sqlite and postgres, and so vote creation order is total.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voters (registered users)
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    nin TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'VOTER' CHECK (role IN ('VOTER', 'ADMIN')),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_email ON voter(email);

-- Refresh tokens (rotated on every refresh)
CREATE TABLE IF NOT EXISTS refresh_token (
    token TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    expires_at TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_refresh_token_voter_id ON refresh_token(voter_id);

-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'DRAFT' CHECK (status IN ('DRAFT', 'OPEN', 'CLOSED')),
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_election_status ON election(status);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_candidate_election_party ON candidate(election_id, LOWER(party));

-- Votes: the append-only ledger. Rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id),
    election_id TEXT NOT NULL REFERENCES election(id),
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    encrypted_vote TEXT NOT NULL,
    vote_hash TEXT NOT NULL,
    previous_hash TEXT,
    created_at TEXT NOT NULL,
    UNIQUE (voter_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_election_created ON vote(election_id, created_at);
CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);
`
