// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package encryption provides the two cryptographic primitives the ledger
needs: symmetric sealing of ballot payloads and deterministic digests
for chain linkage.

# Sealing

Sealer encrypts a candidate choice with AES-256-CBC. The 32-byte key is
SHA-256 of the VOTE_ENCRYPTION_KEY secret; a fresh random 16-byte IV is
generated per call and prepended to the output:

	sealer := encryption.NewSealer(cfg.VoteEncryptionKey)
	sealed, err := sealer.Encrypt(candidateID) // "hex(iv):hex(ct)"

# Digests

Digest hashes its arguments with SHA-256 and returns lowercase hex:

	hash := encryption.Digest(voterID, electionID, candidateID, ts)

Including the timestamp means the same voter casting the same choice at
a different instant produces a different hash: the digest authenticates
a cast event, not just its content.
*/
package encryption
