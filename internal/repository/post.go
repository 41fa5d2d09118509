package repository

import (
	"context"

	"trinethra/internal/models"
	"trinethra/internal/store"
)

// PostRepository owns the ordered post collection, most-recent-first. The
// whole collection is replaced on every save; there is no merge and the last
// writer wins.
type PostRepository interface {
	// Load returns the persisted collection, or the default seed set when
	// nothing is persisted. The seed is not written back until the first
	// mutation.
	Load(ctx context.Context) ([]models.Post, error)
	// Save replaces the entire persisted collection in a single key write.
	Save(ctx context.Context, posts []models.Post) error
}

// postRepository implements PostRepository
type postRepository struct {
	store store.Store
}

// NewPostRepository creates a new post repository backed by the given store.
func NewPostRepository(s store.Store) PostRepository {
	return &postRepository{store: s}
}

func (r *postRepository) Load(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	found, err := r.store.Get(ctx, store.PostsKey, &posts)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultPosts(), nil
	}
	return posts, nil
}

func (r *postRepository) Save(ctx context.Context, posts []models.Post) error {
	return r.store.Set(ctx, store.PostsKey, posts)
}

// DefaultPosts is the seed collection shown before any user content exists.
// Empty so the feed starts with real user content only.
func DefaultPosts() []models.Post {
	return []models.Post{}
}
