// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/danielhkuo/naijavote/models"
)

// Tabulator aggregates committed ledger entries into ranked results.
// Read-only; results are sealed until the election is CLOSED.
type Tabulator struct {
	db *sql.DB
}

func New(db *sql.DB) *Tabulator {
	return &Tabulator{db: db}
}

// GetResults returns candidates ranked by committed vote count,
// descending, with name as the deterministic secondary order. When the
// top two counts are equal the result is reported as a tie and Winner
// is nil; the tie is never silently resolved by sort order.
func (t *Tabulator) GetResults(ctx context.Context, electionID string) (*models.ElectionResults, error) {
	var title, status string
	err := t.db.QueryRowContext(ctx, `
		SELECT title, status FROM election WHERE id = $1
	`, electionID).Scan(&title, &status)
	if err == sql.ErrNoRows {
		return nil, models.ErrElectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query election: %w", err)
	}

	if models.ElectionStatus(status) != models.StatusClosed {
		return nil, models.ErrResultsNotAvailable
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.party, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id
		WHERE c.election_id = $1
		GROUP BY c.id, c.name, c.party
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []models.CandidateResult{}
	for rows.Next() {
		var r models.CandidateResult
		if err := rows.Scan(&r.ID, &r.Name, &r.Party, &r.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Votes != results[j].Votes {
			return results[i].Votes > results[j].Votes
		}
		return results[i].Name < results[j].Name
	})

	var total int
	err = t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote WHERE election_id = $1`, electionID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	out := &models.ElectionResults{
		Election: models.ElectionSummary{
			ID:         electionID,
			Title:      title,
			Status:     models.ElectionStatus(status),
			TotalVotes: total,
		},
		Results: results,
	}

	if len(results) > 0 {
		if len(results) > 1 && results[0].Votes == results[1].Votes {
			out.Tied = true
		} else {
			winner := results[0]
			out.Winner = &winner
		}
	}

	return out, nil
}
