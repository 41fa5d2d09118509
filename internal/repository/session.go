package repository

import (
	"context"

	"trinethra/internal/models"
	"trinethra/internal/store"
)

// SessionRepository holds the at-most-one active account reference. The
// persisted record never contains the credential.
type SessionRepository interface {
	// Get returns the active session, or nil when none is persisted. The
	// session is not re-validated against the account registry.
	Get(ctx context.Context) (*models.User, error)
	Set(ctx context.Context, user models.User) error
	// Clear is idempotent.
	Clear(ctx context.Context) error
}

// sessionRepository implements SessionRepository
type sessionRepository struct {
	store store.Store
}

// NewSessionRepository creates a new session repository backed by the given store.
func NewSessionRepository(s store.Store) SessionRepository {
	return &sessionRepository{store: s}
}

func (r *sessionRepository) Get(ctx context.Context) (*models.User, error) {
	var user models.User
	found, err := r.store.Get(ctx, store.SessionKey, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *sessionRepository) Set(ctx context.Context, user models.User) error {
	return r.store.Set(ctx, store.SessionKey, user.WithoutSecret())
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, store.SessionKey)
}
