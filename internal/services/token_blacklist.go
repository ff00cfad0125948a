package services

import (
	"context"
	"log"
	"time"
)

// TokenBlacklist remembers logged-out tokens until their own expiry.
type TokenBlacklist struct {
	store TokenStore
	now   func() time.Time
}

func NewTokenBlacklist(store TokenStore) *TokenBlacklist {
	return &TokenBlacklist{store: store, now: time.Now}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if !expiresAt.After(b.now()) {
		return nil
	}
	return b.store.Add(ctx, token, expiresAt)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return b.store.Exists(ctx, token)
}

func (b *TokenBlacklist) Sweep(ctx context.Context) (int64, error) {
	return b.store.DeleteExpired(ctx, b.now())
}

// Run sweeps on every tick until ctx ends.
func (b *TokenBlacklist) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := b.Sweep(ctx)
			if err != nil {
				log.Printf("token blacklist sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("token blacklist sweep removed %d entries", n)
			}
		}
	}
}
