// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements voter accounts and token issuance.

# Tokens

Access tokens are HS256 JWTs carrying the voter's id and role, valid
for 15 minutes. Refresh tokens are opaque 64-byte random values stored
server-side with a 7-day expiry and rotated on every refresh: the
presented token is revoked and a new pair is issued.

# Passwords

Passwords are hashed with bcrypt (cost 12). Login failures for unknown
email and wrong password are indistinguishable to the caller.

# Service

Service wraps the voter and refresh_token tables:

	svc := auth.NewService(db, cfg)
	user, err := svc.Register(ctx, email, nin, password)
	resp, err := svc.Login(ctx, email, password)
	access, refresh, err := svc.Refresh(ctx, oldRefresh)
	err = svc.Logout(ctx, refresh)

NIN (national identification number) must be exactly 11 digits; email
and NIN are both unique across voters.
*/
package auth
