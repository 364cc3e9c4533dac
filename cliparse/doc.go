// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables, with a .env file loaded via godotenv when present.

# Precedence

CLI flags take precedence over environment variables:

	naijavote -p 5000 -d "file:naijavote.db" -t sqlite

# Settings

Required:

  - DATABASE_URL (-d): sqlite path or postgres connection string
  - JWT_SECRET (--jwt-secret): access-token signing secret
  - VOTE_ENCRYPTION_KEY (--vote-key): ballot sealing secret

Optional:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
*/
package cliparse
