package repository

import (
	"context"
	"errors"
	"fmt"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned by Revoke for unknown or revoked tokens.
var ErrSessionNotFound = errors.New("session not found or already revoked")

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllStaffSessions(ctx context.Context, staffID uuid.UUID) ([]string, error)
	CleanExpiredSessions(ctx context.Context) ([]string, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, staff_id, token, user_agent, ip_address,
		                      expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.StaffID,
		session.Token,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("staff_id", session.StaffID.String()),
		)
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	query := `
		SELECT id, staff_id, token, user_agent, ip_address, 
		       expires_at, revoked_at, created_at
		FROM sessions 
		WHERE token = $1 
		  AND revoked_at IS NULL 
		  AND expires_at > NOW()
	`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.StaffID,
		&session.Token,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session",
			zap.Error(err),
			zap.String("token_prefix", tokenPrefix(token)),
		)
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	query := `
		UPDATE sessions 
		SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke session",
			zap.Error(err),
			zap.String("token_prefix", tokenPrefix(token)),
		)
		return fmt.Errorf("revoke session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// RevokeAllStaffSessions revokes every live session of the staff member and
// returns their tokens.
func (r *sessionRepository) RevokeAllStaffSessions(ctx context.Context, staffID uuid.UUID) ([]string, error) {
	query := `
		UPDATE sessions 
		SET revoked_at = NOW()
		WHERE staff_id = $1 AND revoked_at IS NULL
		RETURNING token
	`

	tokens, err := r.collectTokens(ctx, query, staffID)
	if err != nil {
		r.log.Error("Failed to revoke all staff sessions",
			zap.Error(err),
			zap.String("staff_id", staffID.String()),
		)
		return nil, fmt.Errorf("revoke staff sessions: %w", err)
	}

	return tokens, nil
}

// CleanExpiredSessions deletes sessions past their expiry and returns the
// tokens of the ones that had not been revoked.
func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) ([]string, error) {
	query := `
		DELETE FROM sessions 
		WHERE expires_at < NOW()
		RETURNING token, revoked_at IS NULL
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return nil, fmt.Errorf("clean sessions: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var (
			token string
			live  bool
		)
		if err := rows.Scan(&token, &live); err != nil {
			return nil, fmt.Errorf("scan expired session: %w", err)
		}
		if live {
			tokens = append(tokens, token)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clean sessions: %w", err)
	}

	return tokens, nil
}

func (r *sessionRepository) collectTokens(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// tokenPrefix keeps bearer tokens out of logs.
func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
