package service

import (
	"context"
	"sync/atomic"
	"time"

	"trinethra/internal/feed"
	"trinethra/internal/gateway"
	"trinethra/internal/models"
	"trinethra/internal/observability"
	"trinethra/internal/repository"
	"trinethra/internal/validation"
)

// FeedService applies mutations to the post collection and persists the
// result. All mutations run to completion before the next one starts; the
// assistant call inside Search is the only suspension point.
type FeedService struct {
	posts     repository.PostRepository
	sessions  repository.SessionRepository
	assistant gateway.Assistant
	log       *observability.GatewayLogger
	now       func() time.Time
	// searchSeq tickets searches so a slow assistant response for an old
	// query can be discarded instead of overwriting newer results.
	searchSeq atomic.Uint64
}

// CreatePostInput carries the fields of a post submission.
type CreatePostInput struct {
	ImageURL string
	Caption  string
	Vibe     string
	Location string
}

// NewFeedService creates a new FeedService.
func NewFeedService(posts repository.PostRepository, sessions repository.SessionRepository, assistant gateway.Assistant) *FeedService {
	return &FeedService{
		posts:     posts,
		sessions:  sessions,
		assistant: assistant,
		log:       observability.NewGatewayLogger(),
		now:       time.Now,
	}
}

// Feed returns the full post collection, most-recent-first.
func (s *FeedService) Feed(ctx context.Context) ([]models.Post, error) {
	return s.posts.Load(ctx)
}

// PostsBy returns the posts owned by userID, preserving feed order.
func (s *FeedService) PostsBy(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, err
	}
	return feed.PostsBy(posts, userID), nil
}

// ToggleLike flips the viewer's liked state on the post and persists the
// updated collection.
func (s *FeedService) ToggleLike(ctx context.Context, postID string) ([]models.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := feed.ToggleLike(posts, postID)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// AddComment appends a comment authored by the active session to the post
// and persists the updated collection.
func (s *FeedService) AddComment(ctx context.Context, postID, text string) ([]models.Post, error) {
	author, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewUnauthenticatedError("commenting")
	}
	if err := validation.ValidateComment(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := feed.AddComment(posts, postID, author, text, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// CreatePost prepends a new post authored by the active session and persists
// the updated collection.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) ([]models.Post, error) {
	author, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewUnauthenticatedError("posting")
	}
	if in.ImageURL == "" {
		return nil, models.NewValidationError("an image is required")
	}
	if err := validation.ValidateCaption(in.Caption); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := feed.CreatePost(posts, author, feed.NewPostInput{
		ImageURL: in.ImageURL,
		Caption:  in.Caption,
		Vibe:     in.Vibe,
		Location: in.Location,
	}, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.posts.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Search ranks the collection against query via the assistant and returns
// the matching subsequence in original order. When the assistant fails, it
// falls back to a local case-insensitive caption substring match. A result
// that arrives after a newer search was issued is discarded with
// SEARCH_SUPERSEDED. An empty query returns the full collection.
func (s *FeedService) Search(ctx context.Context, query string) ([]models.Post, error) {
	posts, err := s.posts.Load(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return posts, nil
	}

	summaries := make([]gateway.PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = gateway.PostSummary{ID: p.ID, Caption: p.Caption, Vibe: p.AIVibe}
	}

	ticket := s.searchSeq.Add(1)
	ids, rankErr := s.assistant.RankMatches(ctx, query, summaries)
	if s.searchSeq.Load() != ticket {
		return nil, models.NewSearchSupersededError()
	}
	if rankErr != nil {
		s.log.LogFallback(ctx, "rankMatches", rankErr)
		return feed.FilterByCaption(posts, query), nil
	}
	return feed.FilterByIDs(posts, ids), nil
}
