// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"testing"
	"time"
)

func TestCastBackoff(t *testing.T) {
	var total time.Duration
	prev := time.Duration(0)
	for attempt := 1; attempt < castAttempts; attempt++ {
		d := castBackoff(attempt)
		if d <= prev {
			t.Errorf("Attempt %d: expected backoff to grow, got %v after %v", attempt, d, prev)
		}
		prev = d
		total += d
	}

	// Retries must pause long enough for a lock holder to finish, but
	// a full retry cycle still has to fit inside a request
	if total == 0 {
		t.Error("Expected a non-zero pause between conflict retries")
	}
	if total > time.Second {
		t.Errorf("Expected the whole retry cycle under a second, got %v", total)
	}
}
