package models

import "time"

// Election status constants. Transitions are forward-only:
// DRAFT -> OPEN -> CLOSED.
type ElectionStatus string

const (
	StatusDraft  ElectionStatus = "DRAFT"
	StatusOpen   ElectionStatus = "OPEN"
	StatusClosed ElectionStatus = "CLOSED"
)

// Valid reports whether s is one of the three known statuses.
func (s ElectionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the edge s -> target is legal.
// No-ops and backward moves are not.
func (s ElectionStatus) CanTransitionTo(target ElectionStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusOpen
	case StatusOpen:
		return target == StatusClosed
	}
	return false
}

// User role constants
const (
	RoleVoter = "VOTER"
	RoleAdmin = "ADMIN"
)

// TimeLayout is the storage format for all timestamps. Fixed-width
// nanoseconds so lexicographic order of stored values matches
// chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp stored with TimeLayout. It also accepts
// plain RFC3339 for values that arrived through the API.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	NIN      string `json:"nin"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AddCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type CastVoteRequest struct {
	ElectionID  string `json:"electionId"`
	CandidateID string `json:"candidateId"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	NIN       string    `json:"nin"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Election struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Status      ElectionStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

type Candidate struct {
	ID         string    `json:"id"`
	ElectionID string    `json:"election_id"`
	Name       string    `json:"name"`
	Party      string    `json:"party"`
	CreatedAt  time.Time `json:"created_at"`
}

// CandidateWithVotes is the read model returned by registry lookups.
// Votes is the committed ledger count for this candidate.
type CandidateWithVotes struct {
	Candidate
	Votes int `json:"votes"`
}

// ElectionDetail is the read model for Get/List: the election plus its
// candidates and aggregate vote counts.
type ElectionDetail struct {
	Election
	Candidates []CandidateWithVotes `json:"candidates"`
	TotalVotes int                  `json:"total_votes"`
}

// Vote is a committed ledger entry. Immutable once written; never
// deleted. EncryptedVote is hex(iv):hex(ciphertext); PreviousHash is
// nil only for the first entry of an election's chain.
type Vote struct {
	ID            string    `json:"id"`
	VoterID       string    `json:"-"`
	ElectionID    string    `json:"election_id"`
	CandidateID   string    `json:"-"`
	EncryptedVote string    `json:"-"`
	VoteHash      string    `json:"vote_hash"`
	PreviousHash  *string   `json:"previous_hash,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Response types

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// VoteReceipt is the proof of inclusion returned to the voter. It
// deliberately carries no candidate choice.
type VoteReceipt struct {
	VoteHash   string    `json:"voteHash"`
	ElectionID string    `json:"electionId"`
	Timestamp  time.Time `json:"timestamp"`
}

type CastVoteResponse struct {
	Message string      `json:"message"`
	Receipt VoteReceipt `json:"receipt"`
}

// ChainReport is the result of replaying an election's ledger.
type ChainReport struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	TotalVotes int    `json:"totalVotes"`
}

type ElectionSummary struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Status     ElectionStatus `json:"status"`
	TotalVotes int            `json:"totalVotes"`
}

type CandidateResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
	Votes int    `json:"votes"`
}

// ElectionResults ranks candidates by committed vote count, descending.
// When the top two counts are equal Tied is true and Winner is nil:
// a tie is reported explicitly rather than resolved by sort order.
type ElectionResults struct {
	Election ElectionSummary   `json:"election"`
	Winner   *CandidateResult  `json:"winner,omitempty"`
	Tied     bool              `json:"tied"`
	Results  []CandidateResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
