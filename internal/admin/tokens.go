package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"server/internal/kv"
)

const (
	tokenKeyPrefix = "admin_token:"

	// TokenTTL bounds how long a successful login stays valid.
	TokenTTL = time.Hour
)

// Tokens issues and validates the opaque bearer tokens handed out by the
// login endpoint. Tokens live in the key-value store so they survive process
// restarts when Redis is the backend.
type Tokens struct {
	store kv.Store
}

func NewTokens(store kv.Store) *Tokens {
	return &Tokens{store: store}
}

// Issue creates a fresh token valid for TokenTTL.
func (t *Tokens) Issue(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := t.store.Set(ctx, tokenKeyPrefix+token, "1", TokenTTL); err != nil {
		return "", fmt.Errorf("admin: store token: %w", err)
	}
	return token, nil
}

// Check reports whether token is currently valid. A store failure is returned
// as an error so callers can answer with a server error instead of a
// misleading "unauthorized".
func (t *Tokens) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := t.store.Get(ctx, tokenKeyPrefix+token)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("admin: check token: %w", err)
	}
	return true, nil
}
