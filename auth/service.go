// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/naijavote/cliparse"
	"github.com/danielhkuo/naijavote/models"
)

var ErrInvalidNIN = errors.New("NIN must be exactly 11 digits")

var ninPattern = regexp.MustCompile(`^\d{11}$`)

// Service implements registration, login, and refresh-token rotation.
type Service struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewService(db *sql.DB, cfg cliparse.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Register creates a voter account. Email and NIN must both be unused.
func (s *Service) Register(ctx context.Context, email, nin, password string) (*models.User, error) {
	if !ninPattern.MatchString(nin) {
		return nil, ErrInvalidNIN
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voter WHERE email = $1 OR nin = $2)
	`, email, nin).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing voter: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateUser
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		NIN:       nin,
		Role:      models.RoleVoter,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO voter (id, email, nin, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, user.NIN, hash, user.Role,
		models.FormatTime(now), models.FormatTime(now))
	if err != nil {
		// Unique constraints backstop the existence check
		if isUniqueVoterViolation(err) {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to insert voter: %w", err)
	}

	slog.Info("voter registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues an access token plus a
// server-side refresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var user models.User
	var hash, created, updated string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, nin, password_hash, role, created_at, updated_at
		FROM voter WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.NIN, &hash, &user.Role, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query voter: %w", err)
	}

	if !CheckPassword(hash, password) {
		return nil, models.ErrInvalidCredentials
	}

	if user.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, fmt.Errorf("failed to parse voter timestamp: %w", err)
	}
	if user.UpdatedAt, err = models.ParseTime(updated); err != nil {
		return nil, fmt.Errorf("failed to parse voter timestamp: %w", err)
	}

	accessToken, err := GenerateAccessToken(user.ID, user.Role, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("voter logged in", "user_id", user.ID)
	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and
// a new pair is issued. Expired tokens are deleted on sight.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	var userID, role, expiresStr string
	err = s.db.QueryRowContext(ctx, `
		SELECT rt.voter_id, v.role, rt.expires_at
		FROM refresh_token rt
		JOIN voter v ON v.id = rt.voter_id
		WHERE rt.token = $1
	`, refreshToken).Scan(&userID, &role, &expiresStr)
	if err == sql.ErrNoRows {
		return "", "", models.ErrInvalidRefreshToken
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to query refresh token: %w", err)
	}

	expiresAt, err := models.ParseTime(expiresStr)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token expiry: %w", err)
	}

	if expiresAt.Before(time.Now().UTC()) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM refresh_token WHERE token = $1`, refreshToken)
		return "", "", models.ErrRefreshTokenExpired
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM refresh_token WHERE token = $1`, refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	refresh, err = s.issueRefreshToken(ctx, userID)
	if err != nil {
		return "", "", err
	}

	access, err = GenerateAccessToken(userID, role, s.cfg.JWTSecret)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// Logout revokes a refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM refresh_token WHERE token = $1`, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrInvalidRefreshToken
	}
	return nil
}

// GetUserByID looks up a voter without exposing the password hash.
func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	var created, updated string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, nin, role, created_at, updated_at
		FROM voter WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.NIN, &user.Role, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query voter: %w", err)
	}

	if user.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, fmt.Errorf("failed to parse voter timestamp: %w", err)
	}
	if user.UpdatedAt, err = models.ParseTime(updated); err != nil {
		return nil, fmt.Errorf("failed to parse voter timestamp: %w", err)
	}
	return &user, nil
}

func (s *Service) issueRefreshToken(ctx context.Context, userID string) (string, error) {
	token, err := GenerateRefreshToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO refresh_token (token, voter_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, token, userID, models.FormatTime(now.Add(RefreshTokenTTL)), models.FormatTime(now))
	if err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

func isUniqueVoterViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "voter.email") ||
		strings.Contains(msg, "voter.nin") ||
		strings.Contains(msg, "voter_email_key") ||
		strings.Contains(msg, "voter_nin_key")
}
