// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same schema works on sqlite (modernc.org/sqlite) and postgres
(lib/pq): all columns are TEXT, timestamps use models.TimeLayout.

# Tables

  - voter: registered users with role
  - refresh_token: server-side refresh tokens, rotated on use
  - election: lifecycle state machine (DRAFT/OPEN/CLOSED)
  - candidate: per-election candidates, unique party per election
  - vote: the append-only hash-chained ledger

# Relationships

	voter 1──* refresh_token
	election 1──* candidate
	election 1──* vote
	voter 1──* vote (at most one per election, enforced by UNIQUE)

# Integrity constraints

  - UNIQUE (voter_id, election_id) on vote: one ballot per voter per
    election, enforced at the storage layer as the final backstop.
  - UNIQUE (election_id, LOWER(party)) on candidate: case-insensitive
    party uniqueness within an election.
  - vote rows are append-only; nothing in the codebase issues UPDATE or
    DELETE against them.
*/
package db
