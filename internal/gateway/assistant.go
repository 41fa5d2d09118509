// Package gateway integrates the external generative assistant used for
// caption generation, vibe classification, image synthesis, and semantic
// search ranking. The rest of the application only depends on the Assistant
// contract; a failing assistant always degrades to a local fallback and never
// touches persisted state.
package gateway

import "context"

// Defaults and fallbacks for assistant responses. "Default" covers a
// successful call that produced no usable text; "Fallback" covers an
// unreachable or failing assistant.
const (
	DefaultCaption  = "Just another amazing moment. ✨"
	FallbackCaption = "Beautiful view today! 📸"
	DefaultVibe     = "Neutral"
	FallbackVibe    = "Unknown Vibe"
)

// PostSummary is the slice of a post the assistant sees when ranking search
// matches.
type PostSummary struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	Vibe    string `json:"vibe,omitempty"`
}

// Assistant is the generative collaborator contract.
type Assistant interface {
	// CaptionFor generates a short caption for the given image (a data URI
	// or URL). A successful call with no text yields DefaultCaption.
	CaptionFor(ctx context.Context, image string) (string, error)
	// VibeFor describes the mood of the image in 2-3 words. A successful
	// call with no text yields DefaultVibe.
	VibeFor(ctx context.Context, image string) (string, error)
	// ImageFor synthesizes an image for the prompt and returns it as a
	// data URI. It returns "" with a nil error when the model produced no
	// image.
	ImageFor(ctx context.Context, prompt string) (string, error)
	// RankMatches returns the IDs of the posts that best match the query.
	RankMatches(ctx context.Context, query string, posts []PostSummary) ([]string, error)
}
