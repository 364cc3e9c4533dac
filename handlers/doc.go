// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP adapters over the core packages.

Handlers do three things only: parse and validate the request, call the
core (auth.Service, registry.Registry, ledger.Engine, tally.Tabulator),
and map the result or typed error to JSON. No business rules live here.

# Handlers

  - AuthHandler: register, login, refresh, logout, me
  - ElectionHandler: create, list, get, status transition,
    add/remove candidate
  - VoteHandler: cast vote, results, chain verification

# Error mapping

writeCoreError translates the models error taxonomy to status codes:
not-found errors to 404, validation to 400, state/uniqueness conflicts
to 409, retry-exhausted chain conflicts to 503, everything else to 500.
*/
package handlers
