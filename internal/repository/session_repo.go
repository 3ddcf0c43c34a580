package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"tapmine/internal/domain"

	"github.com/jackc/pgx/v5"
)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GenerateToken returns a 64-hex-char opaque bearer token.
func GenerateToken() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Create stores a new session token with an absolute expiry.
func (r *SessionRepository) Create(ctx context.Context, playerID int64, token string, expiresAt time.Time) (*domain.GameSession, error) {
	s := &domain.GameSession{PlayerID: playerID, Token: token, ExpiresAt: expiresAt}
	err := r.db.QueryRow(ctx,
		`INSERT INTO game_sessions (player_id, session_token, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		playerID, token, expiresAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ResolvePlayer maps an unexpired token to its player id. Returns
// (0, nil) for an unknown or expired token; expiry is enforced in SQL so
// the check uses the database clock, the same one that set expires_at.
func (r *SessionRepository) ResolvePlayer(ctx context.Context, token string) (int64, error) {
	var playerID int64
	err := r.db.QueryRow(ctx,
		`SELECT player_id FROM game_sessions
		 WHERE session_token = $1 AND expires_at > now()`,
		token,
	).Scan(&playerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return playerID, nil
}

// DeleteExpired drops stale sessions; called opportunistically on issuance.
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM game_sessions WHERE expires_at <= now()`)
	return err
}
