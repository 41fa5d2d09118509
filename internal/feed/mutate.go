// Package feed implements the pure mutation operations over the post
// collection. Every operation returns a new collection and leaves its input
// untouched; persisting the result is the caller's concern.
package feed

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trinethra/internal/models"
)

// NewPostInput carries the fields of a post being created. Likes, comments,
// and timestamps are assigned by CreatePost.
type NewPostInput struct {
	ImageURL string
	Caption  string
	Vibe     string
	Location string
}

// ToggleLike flips the viewer's liked state on the identified post and
// adjusts the like counter by exactly one. Applying it twice restores the
// original state. Post order is preserved.
func ToggleLike(posts []models.Post, postID string) ([]models.Post, error) {
	i := indexOf(posts, postID)
	if i < 0 {
		return nil, models.NewNotFoundError("post", postID)
	}
	out := clone(posts)
	if out[i].LikedByMe {
		out[i].Likes--
	} else {
		out[i].Likes++
	}
	out[i].LikedByMe = !out[i].LikedByMe
	return out, nil
}

// AddComment appends a comment by author to the identified post. Existing
// comments are never reordered or mutated.
func AddComment(posts []models.Post, postID string, author *models.User, text string, now time.Time) ([]models.Post, error) {
	if author == nil {
		return nil, models.NewUnauthenticatedError("commenting")
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("comment text is required")
	}
	i := indexOf(posts, postID)
	if i < 0 {
		return nil, models.NewNotFoundError("post", postID)
	}
	out := clone(posts)
	comments := make([]models.Comment, len(out[i].Comments), len(out[i].Comments)+1)
	copy(comments, out[i].Comments)
	out[i].Comments = append(comments, models.Comment{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Username:  author.Username,
		Text:      text,
		CreatedAt: now,
	})
	return out, nil
}

// CreatePost prepends a fresh post authored by author. New posts always lead:
// most-recent-first is the collection's ordering invariant.
func CreatePost(posts []models.Post, author *models.User, in NewPostInput, now time.Time) ([]models.Post, error) {
	if author == nil {
		return nil, models.NewUnauthenticatedError("posting")
	}
	post := models.Post{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		UserID:     author.ID,
		Username:   author.Username,
		UserAvatar: author.Avatar,
		ImageURL:   in.ImageURL,
		Caption:    in.Caption,
		AIVibe:     in.Vibe,
		Location:   in.Location,
		Likes:      0,
		LikedByMe:  false,
		Comments:   []models.Comment{},
		CreatedAt:  now,
	}
	out := make([]models.Post, 0, len(posts)+1)
	out = append(out, post)
	return append(out, posts...), nil
}

// FilterByIDs returns the subsequence of posts whose ID is in ids, preserving
// the original relative order.
func FilterByIDs(posts []models.Post, ids []string) []models.Post {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]models.Post, 0, len(ids))
	for _, p := range posts {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCaption returns the posts whose caption contains query,
// case-insensitively. This is the local fallback when semantic ranking is
// unavailable.
func FilterByCaption(posts []models.Post, query string) []models.Post {
	q := strings.ToLower(query)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Caption), q) {
			out = append(out, p)
		}
	}
	return out
}

// PostsBy returns the posts owned by userID, preserving order.
func PostsBy(posts []models.Post, userID string) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func indexOf(posts []models.Post, postID string) int {
	for i := range posts {
		if posts[i].ID == postID {
			return i
		}
	}
	return -1
}

func clone(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	return out
}
