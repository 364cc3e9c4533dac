// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the route table using Go 1.22+ method routing.

# Routes

Auth (rate limited where noted):

	POST /api/auth/register   (auth limiter)
	POST /api/auth/login      (auth limiter)
	POST /api/auth/refresh
	POST /api/auth/logout
	GET  /api/auth/me         (token required)

Elections (reads public, mutations admin only):

	GET    /api/elections
	GET    /api/elections/{id}
	POST   /api/elections
	PATCH  /api/elections/{id}/status
	POST   /api/elections/{id}/candidates
	DELETE /api/elections/candidates/{candidateId}

Votes:

	POST /api/votes                        (token + vote limiter)
	GET  /api/votes/{electionId}/results   (admin)
	GET  /api/votes/{electionId}/verify    (admin)

NewRouter also wires the core: the ballot sealer (with the configured
encryption key), the election registry, the ledger engine, and the
tabulator are constructed here and injected into the handlers.
*/
package router
