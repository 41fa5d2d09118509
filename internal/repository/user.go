// Package repository provides data access layer implementations over the
// key-value store.
package repository

import (
	"context"
	"strings"

	"trinethra/internal/models"
	"trinethra/internal/store"
)

// UserRepository defines the interface for account registry operations.
// The registry is append-only: accounts are never updated or deleted.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	// FindByUsername matches case-insensitively. Returns nil when no
	// account matches.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Append(ctx context.Context, user models.User) error
}

// userRepository implements UserRepository
type userRepository struct {
	store store.Store
}

// NewUserRepository creates a new user repository backed by the given store.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	found, err := r.store.Get(ctx, store.UsersKey, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.User{}, nil
	}
	return users, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Append(ctx context.Context, user models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.UsersKey, append(users, user))
}
