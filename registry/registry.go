// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/naijavote/models"
)

// Registry owns election records, their lifecycle state machine, and
// candidate records. All mutations go through its methods; no other
// package writes election or candidate rows.
type Registry struct {
	db *sql.DB
}

func New(db *sql.DB) *Registry {
	return &Registry{db: db}
}

// Create inserts a new election in DRAFT. The schedule is validated
// once, here: end must be after start and start must not already be in
// the past at the creation instant.
func (r *Registry) Create(ctx context.Context, title, description string, start, end time.Time) (*models.Election, error) {
	now := time.Now().UTC()

	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", models.ErrInvalidSchedule)
	}
	if start.Before(now) {
		return nil, fmt.Errorf("%w: start date cannot be in the past", models.ErrInvalidSchedule)
	}

	e := &models.Election{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		StartDate:   start.UTC(),
		EndDate:     end.UTC(),
		Status:      models.StatusDraft,
		CreatedAt:   now,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO election (id, title, description, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Title, e.Description,
		models.FormatTime(e.StartDate), models.FormatTime(e.EndDate),
		string(e.Status), models.FormatTime(e.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert election: %w", err)
	}

	slog.Info("election created", "election_id", e.ID, "title", e.Title)
	return e, nil
}

// Transition moves an election along the forward-only edge set
// DRAFT->OPEN, OPEN->CLOSED. Everything else, including no-ops and
// backward moves, is rejected.
func (r *Registry) Transition(ctx context.Context, electionID string, target models.ElectionStatus) (*models.Election, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: must be one of DRAFT, OPEN, CLOSED", models.ErrInvalidStatus)
	}

	e, err := r.election(ctx, electionID)
	if err != nil {
		return nil, err
	}

	if !e.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", models.ErrIllegalTransition, e.Status, target)
	}

	// Conditional on the observed status so two racing transitions
	// cannot both apply
	res, err := r.db.ExecContext(ctx, `
		UPDATE election SET status = $1 WHERE id = $2 AND status = $3
	`, string(target), electionID, string(e.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to update election status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: election status changed concurrently", models.ErrIllegalTransition)
	}

	e.Status = target
	slog.Info("election status updated", "election_id", electionID, "status", target)
	return e, nil
}

// AddCandidate registers a candidate while the election is in DRAFT.
// Party names are unique per election, case-insensitively.
func (r *Registry) AddCandidate(ctx context.Context, electionID, name, party string) (*models.Candidate, error) {
	e, err := r.election(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if e.Status != models.StatusDraft {
		return nil, fmt.Errorf("%w: candidates can only be added in DRAFT status", models.ErrElectionNotDraft)
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM candidate
			WHERE election_id = $1 AND LOWER(party) = LOWER($2)
		)
	`, electionID, party).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check party uniqueness: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateParty
	}

	c := &models.Candidate{
		ID:         uuid.New().String(),
		ElectionID: electionID,
		Name:       name,
		Party:      party,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO candidate (id, election_id, name, party, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.ElectionID, c.Name, c.Party, models.FormatTime(c.CreatedAt))
	if err != nil {
		// The unique index backstops the check above under concurrency
		if strings.Contains(err.Error(), "idx_candidate_election_party") {
			return nil, models.ErrDuplicateParty
		}
		return nil, fmt.Errorf("failed to insert candidate: %w", err)
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", c.ID, "party", c.Party)
	return c, nil
}

// RemoveCandidate deletes a candidate while the owning election is
// still in DRAFT.
func (r *Registry) RemoveCandidate(ctx context.Context, candidateID string) error {
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT e.status
		FROM candidate c
		JOIN election e ON e.id = c.election_id
		WHERE c.id = $1
	`, candidateID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.ErrCandidateNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query candidate: %w", err)
	}

	if models.ElectionStatus(status) != models.StatusDraft {
		return fmt.Errorf("%w: candidates can only be removed in DRAFT status", models.ErrElectionNotDraft)
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM candidate WHERE id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	slog.Info("candidate removed", "candidate_id", candidateID)
	return nil
}

// Get returns one election with its candidates and vote counts.
func (r *Registry) Get(ctx context.Context, electionID string) (*models.ElectionDetail, error) {
	e, err := r.election(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return r.detail(ctx, e)
}

// List returns all elections, newest first, each with candidates and
// vote counts.
func (r *Registry) List(ctx context.Context) ([]models.ElectionDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, start_date, end_date, status, created_at
		FROM election
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	var elections []models.Election
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		elections = append(elections, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elections: %w", err)
	}

	details := []models.ElectionDetail{}
	for i := range elections {
		d, err := r.detail(ctx, &elections[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (r *Registry) detail(ctx context.Context, e *models.Election) (*models.ElectionDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.election_id, c.name, c.party, c.created_at, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id
		WHERE c.election_id = $1
		GROUP BY c.id, c.election_id, c.name, c.party, c.created_at
		ORDER BY c.created_at
	`, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.CandidateWithVotes{}
	for rows.Next() {
		var c models.CandidateWithVotes
		var createdAt string
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &createdAt, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if c.CreatedAt, err = models.ParseTime(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse candidate timestamp: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	var total int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote WHERE election_id = $1`, e.ID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	return &models.ElectionDetail{Election: *e, Candidates: candidates, TotalVotes: total}, nil
}

func (r *Registry) election(ctx context.Context, electionID string) (*models.Election, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, start_date, end_date, status, created_at
		FROM election
		WHERE id = $1
	`, electionID)
	e, err := scanElection(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrElectionNotFound
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (*models.Election, error) {
	var e models.Election
	var start, end, created, status string
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &start, &end, &status, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan election: %w", err)
	}

	var err error
	if e.StartDate, err = models.ParseTime(start); err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	if e.EndDate, err = models.ParseTime(end); err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}
	if e.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, fmt.Errorf("failed to parse created timestamp: %w", err)
	}
	e.Status = models.ElectionStatus(status)
	return &e, nil
}
