// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"

	"github.com/danielhkuo/naijavote/models"
)

// VerifyChain replays an election's ledger in creation order and checks
// that each entry links to its predecessor. Read-only; may run at any
// election status, so auditing does not have to wait for close. An
// empty chain is trivially valid. Verification stops at the first
// broken link but the report still carries the total entry count.
func (e *Engine) VerifyChain(ctx context.Context, electionID string) (*models.ChainReport, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT vote_hash, previous_hash FROM vote
		WHERE election_id = $1
		ORDER BY created_at ASC
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	type link struct {
		hash string
		prev *string
	}
	var chain []link
	for rows.Next() {
		var l link
		if err := rows.Scan(&l.hash, &l.prev); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		chain = append(chain, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}

	if len(chain) == 0 {
		return &models.ChainReport{Valid: true, Message: "No votes cast yet", TotalVotes: 0}, nil
	}

	valid := chain[0].prev == nil
	if valid {
		for i := 1; i < len(chain); i++ {
			if chain[i].prev == nil || *chain[i].prev != chain[i-1].hash {
				valid = false
				break
			}
		}
	}

	report := &models.ChainReport{Valid: valid, TotalVotes: len(chain)}
	if valid {
		report.Message = "Vote chain is intact"
	} else {
		report.Message = "Vote chain integrity compromised"
	}
	return report, nil
}
