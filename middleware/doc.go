// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: request/response logging with timing
  - CORS: cross-origin headers and preflight handling
  - Protect: Bearer access-token guard; attaches AuthUser to the
    request context and re-checks the user still exists
  - RequireAdmin: role gate, composed after Protect
  - RateLimiter: per-client-IP token bucket, three tiers
    (GlobalLimiter, AuthLimiter, VoteLimiter)

# JSON Helpers

  - JSONResponse: write JSON with status code
  - ErrorResponse: write standardized error JSON
  - ParseJSONBody: decode request body

# Client IP

GetClientIP extracts the real client IP, checking X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr. Rate limiting keys on it.
*/
package middleware
