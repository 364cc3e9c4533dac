// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the NaijaVote API server.

NaijaVote is an election-management backend: it registers voters,
defines elections and candidates, accepts one ballot per voter per
election, and tallies results. Each committed ballot is linked to its
predecessor through a hash chain so any observer can later prove the
sequence of votes was not altered or reordered.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:naijavote.db go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): access-token signing secret
  - VOTE_ENCRYPTION_KEY (--vote-key): ballot sealing secret

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

The server uses a handler-based architecture with dependency injection:

  - registry: election and candidate lifecycle
  - ledger: vote casting and chain verification
  - tally: ranked results, sealed until close
  - encryption: ballot sealing and chain digests
  - auth: voter accounts, JWT and refresh tokens
  - handlers: HTTP adapters over the core
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, CORS, auth guards, rate limiting
  - models: domain types and the error taxonomy
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
