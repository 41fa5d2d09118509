package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"trinethra/internal/models"
	"trinethra/internal/repository"
	"trinethra/internal/store"
)

func TestFactory(t *testing.T) {
	f := NewFactory(Options{SkipBcrypt: true})

	t.Run("User Has Derived Fields", func(t *testing.T) {
		user := f.User()
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.Username)
		assert.Contains(t, user.Avatar, user.Username)
		assert.Equal(t, DemoPassword, user.Password)
	})

	t.Run("User Overrides Apply", func(t *testing.T) {
		user := f.User(func(u *models.User) { u.Username = "fixed" })
		assert.Equal(t, "fixed", user.Username)
	})

	t.Run("Post Snapshots Author", func(t *testing.T) {
		author := f.User()
		post := f.Post(author)
		assert.Equal(t, author.ID, post.UserID)
		assert.Equal(t, author.Username, post.Username)
		assert.Equal(t, author.Avatar, post.UserAvatar)
		assert.NotEmpty(t, post.AIVibe)
		assert.NotNil(t, post.Comments)
	})

	t.Run("Bcrypt By Default", func(t *testing.T) {
		hashed := NewFactory(Options{}).User()
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed.Password), []byte(DemoPassword)))
	})
}

func TestSeeder(t *testing.T) {
	ctx := context.Background()

	t.Run("Seed Populates Store", func(t *testing.T) {
		mem := store.NewMemory()
		s := NewSeeder(mem, Options{SkipBcrypt: true})
		require.NoError(t, s.Seed(ctx, 3, 10))

		users, err := repository.NewUserRepository(mem).List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 3)

		posts, err := repository.NewPostRepository(mem).Load(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 10)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i-1].CreatedAt.Before(posts[i].CreatedAt),
				"posts must be ordered most-recent-first")
		}
	})

	t.Run("Clear Removes Everything", func(t *testing.T) {
		mem := store.NewMemory()
		s := NewSeeder(mem, Options{SkipBcrypt: true})
		require.NoError(t, s.Seed(ctx, 2, 4))
		require.NoError(t, s.Clear(ctx))

		users, err := repository.NewUserRepository(mem).List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)

		posts, err := repository.NewPostRepository(mem).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}
