package store

import (
	"context"
	"time"
)

type TokenStore struct {
	db DB
}

func NewTokenStore(db DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Add(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invalid_tokens (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`, token, expiresAt)
	return err
}

func (s *TokenStore) Exists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM invalid_tokens WHERE token = $1)`, token)
	return exists, err
}

// DeleteExpired drops entries whose token can no longer be presented anyway.
func (s *TokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return execAffected(ctx, s.db, `DELETE FROM invalid_tokens WHERE expires_at <= $1`, now)
}
