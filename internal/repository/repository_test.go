package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trinethra/internal/models"
	"trinethra/internal/store"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Empty Registry", func(t *testing.T) {
		repo := NewUserRepository(store.NewMemory())
		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Append And List", func(t *testing.T) {
		repo := NewUserRepository(store.NewMemory())
		require.NoError(t, repo.Append(ctx, models.User{ID: "1", Username: "alice", Password: "hash"}))
		require.NoError(t, repo.Append(ctx, models.User{ID: "2", Username: "bob"}))

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		// the registry keeps the credential field
		assert.Equal(t, "hash", users[0].Password)
	})

	t.Run("FindByUsername Is Case Insensitive", func(t *testing.T) {
		repo := NewUserRepository(store.NewMemory())
		require.NoError(t, repo.Append(ctx, models.User{ID: "1", Username: "alice"}))

		got, err := repo.FindByUsername(ctx, "ALICE")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "1", got.ID)

		missing, err := repo.FindByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestSessionRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Empty Session", func(t *testing.T) {
		repo := NewSessionRepository(store.NewMemory())
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Set Strips Credential", func(t *testing.T) {
		repo := NewSessionRepository(store.NewMemory())
		require.NoError(t, repo.Set(ctx, models.User{ID: "1", Username: "alice", Password: "hash"}))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Username)
		assert.Empty(t, got.Password)
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		repo := NewSessionRepository(store.NewMemory())
		require.NoError(t, repo.Set(ctx, models.User{ID: "1", Username: "alice"}))
		require.NoError(t, repo.Clear(ctx))
		require.NoError(t, repo.Clear(ctx))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPostRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Load Returns Seed When Empty", func(t *testing.T) {
		mem := store.NewMemory()
		repo := NewPostRepository(mem)

		posts, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultPosts(), posts)

		// the seed must not be written back by a read
		var raw []models.Post
		found, err := mem.Get(ctx, store.PostsKey, &raw)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Save Then Load Round Trip", func(t *testing.T) {
		repo := NewPostRepository(store.NewMemory())
		in := []models.Post{{ID: "p1", Caption: "Hello", Comments: []models.Comment{}}}
		require.NoError(t, repo.Save(ctx, in))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("Save Replaces Collection", func(t *testing.T) {
		repo := NewPostRepository(store.NewMemory())
		require.NoError(t, repo.Save(ctx, []models.Post{{ID: "p1"}, {ID: "p2"}}))
		require.NoError(t, repo.Save(ctx, []models.Post{{ID: "p3"}}))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p3", got[0].ID)
	})

	t.Run("Corrupt Collection Falls Back To Seed", func(t *testing.T) {
		mem := store.NewMemory()
		mem.SetRaw(store.PostsKey, []byte("[{broken"))
		repo := NewPostRepository(mem)

		posts, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, DefaultPosts(), posts)
	})
}
