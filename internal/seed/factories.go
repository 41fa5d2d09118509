// Package seed provides helpers to create demo data for local development.
// The production feed starts empty; everything here is opt-in via cmd/seed.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"

	"trinethra/internal/models"
	"trinethra/internal/repository"
	"trinethra/internal/store"
)

// Options controls demo data generation.
type Options struct {
	// SkipBcrypt stores the demo password as-is for faster seeding runs.
	SkipBcrypt bool
	// MaxDays bounds how far in the past generated posts are dated.
	MaxDays int
}

// DemoPassword is the password every seeded account gets.
const DemoPassword = "password123"

var vibes = []string{
	"Cosmic Calm", "Urban Grit", "Golden Hour", "Neon Dreams",
	"Quiet Morning", "Electric Night", "Soft Focus",
}

// Factory builds domain entities without persisting them.
type Factory struct {
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory.
func NewFactory(opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// User constructs a sample account. Optional override functions may modify
// the generated user before it is returned.
func (f *Factory) User(overrides ...func(*models.User)) models.User {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := models.User{
		ID:          f.timeID(),
		Username:    username,
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(8),
		Avatar:      fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", username),
	}

	if f.opts.SkipBcrypt {
		user.Password = DemoPassword
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(&user)
	}
	return user
}

// Post constructs a sample post owned by author, dated somewhere in the past.
func (f *Factory) Post(author models.User, overrides ...func(*models.Post)) models.Post {
	createdAt := time.Now().
		Add(-time.Duration(f.rnd.Intn(f.opts.MaxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rnd.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rnd.Intn(60)) * time.Minute)

	post := models.Post{
		ID:         strconv.FormatInt(createdAt.UnixMilli(), 10),
		UserID:     author.ID,
		Username:   author.Username,
		UserAvatar: author.Avatar,
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Caption:    gofakeit.Sentence(6),
		AIVibe:     vibes[f.rnd.Intn(len(vibes))],
		Likes:      f.rnd.Intn(40),
		Comments:   []models.Comment{},
		CreatedAt:  createdAt,
	}

	for _, override := range overrides {
		override(&post)
	}
	return post
}

func (f *Factory) timeID() string {
	// time-based like real IDs, with jitter so seeded entities don't collide
	return strconv.FormatInt(time.Now().UnixMilli()-int64(f.rnd.Intn(1_000_000_000)), 10)
}

// Seeder populates the store with demo accounts and posts.
type Seeder struct {
	store   store.Store
	users   repository.UserRepository
	posts   repository.PostRepository
	factory *Factory
}

// NewSeeder creates a Seeder over the given store.
func NewSeeder(s store.Store, opts Options) *Seeder {
	return &Seeder{
		store:   s,
		users:   repository.NewUserRepository(s),
		posts:   repository.NewPostRepository(s),
		factory: NewFactory(opts),
	}
}

// Clear removes all persisted keys, including the active session.
func (s *Seeder) Clear(ctx context.Context) error {
	for _, key := range []string{store.UsersKey, store.SessionKey, store.PostsKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Seed creates numUsers demo accounts and numPosts posts spread across them,
// then persists the collection most-recent-first.
func (s *Seeder) Seed(ctx context.Context, numUsers, numPosts int) error {
	users := make([]models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := s.factory.User()
		if err := s.users.Append(ctx, user); err != nil {
			return err
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	posts := make([]models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rnd.Intn(len(users))]
		posts = append(posts, s.factory.Post(author))
	}

	// Most-recent-first is the collection invariant.
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return s.posts.Save(ctx, posts)
}
