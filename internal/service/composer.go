package service

import (
	"context"
	"strings"

	"trinethra/internal/gateway"
	"trinethra/internal/models"
	"trinethra/internal/observability"
)

// ComposerState is a phase of the post-creation flow.
type ComposerState string

// Composer states. The flow is Upload -> Refine -> Submitted; Back returns
// from Refine to Upload and discards the selected image.
const (
	StateUpload    ComposerState = "upload"
	StateRefine    ComposerState = "refine"
	StateSubmitted ComposerState = "submitted"
)

// Composer drives the post-creation flow. Assistant failures during the flow
// degrade to fallback values; they never abort the flow or corrupt the feed.
type Composer struct {
	feed      *FeedService
	assistant gateway.Assistant
	log       *observability.GatewayLogger

	state    ComposerState
	imageURL string
	caption  string
	vibe     string
	location string
}

// NewComposer creates a Composer in the Upload state.
func NewComposer(feedSvc *FeedService, assistant gateway.Assistant) *Composer {
	return &Composer{
		feed:      feedSvc,
		assistant: assistant,
		log:       observability.NewGatewayLogger(),
		state:     StateUpload,
	}
}

// State returns the current phase.
func (c *Composer) State() ComposerState { return c.state }

// ImageURL returns the currently selected image, if any.
func (c *Composer) ImageURL() string { return c.imageURL }

// Caption returns the current caption draft.
func (c *Composer) Caption() string { return c.caption }

// Vibe returns the current vibe draft.
func (c *Composer) Vibe() string { return c.vibe }

// SelectImage attaches an image and moves Upload -> Refine.
func (c *Composer) SelectImage(imageURL string) error {
	if c.state != StateUpload {
		return models.NewValidationError("an image is already selected")
	}
	if strings.TrimSpace(imageURL) == "" {
		return models.NewValidationError("an image is required")
	}
	c.imageURL = imageURL
	c.state = StateRefine
	return nil
}

// GenerateImage asks the assistant to synthesize an image for prompt and, on
// success, moves Upload -> Refine. When the assistant fails or produces no
// image the composer stays in Upload.
func (c *Composer) GenerateImage(ctx context.Context, prompt string) error {
	if c.state != StateUpload {
		return models.NewValidationError("an image is already selected")
	}
	image, err := c.assistant.ImageFor(ctx, prompt)
	if err != nil {
		c.log.LogFallback(ctx, "imageFor", err)
		return models.NewGatewayUnavailableError(err)
	}
	if image == "" {
		return models.NewGatewayUnavailableError(nil)
	}
	c.imageURL = image
	c.state = StateRefine
	return nil
}

// SuggestCaption fills the caption draft from the assistant, falling back to
// a stock caption when the assistant is unavailable.
func (c *Composer) SuggestCaption(ctx context.Context) (string, error) {
	if c.state != StateRefine {
		return "", models.NewValidationError("select an image first")
	}
	caption, err := c.assistant.CaptionFor(ctx, c.imageURL)
	if err != nil {
		c.log.LogFallback(ctx, "captionFor", err)
		caption = gateway.FallbackCaption
	}
	c.caption = caption
	return caption, nil
}

// SuggestVibe fills the vibe draft from the assistant, falling back to a
// stock vibe when the assistant is unavailable.
func (c *Composer) SuggestVibe(ctx context.Context) (string, error) {
	if c.state != StateRefine {
		return "", models.NewValidationError("select an image first")
	}
	vibe, err := c.assistant.VibeFor(ctx, c.imageURL)
	if err != nil {
		c.log.LogFallback(ctx, "vibeFor", err)
		vibe = gateway.FallbackVibe
	}
	c.vibe = vibe
	return vibe, nil
}

// SetCaption overrides the caption draft. Both fields stay editable in
// Refine regardless of assistant suggestions.
func (c *Composer) SetCaption(caption string) { c.caption = caption }

// SetVibe overrides the vibe draft.
func (c *Composer) SetVibe(vibe string) { c.vibe = vibe }

// SetLocation sets the optional location text.
func (c *Composer) SetLocation(location string) { c.location = location }

// Back moves Refine -> Upload, discarding the selected image. Caption and
// vibe drafts survive so a re-upload does not lose typed text.
func (c *Composer) Back() error {
	if c.state != StateRefine {
		return models.NewValidationError("nothing to go back from")
	}
	c.imageURL = ""
	c.state = StateUpload
	return nil
}

// Submit creates the post and moves Refine -> Submitted. It requires both an
// image and a non-empty caption; the vibe is optional.
func (c *Composer) Submit(ctx context.Context) ([]models.Post, error) {
	if c.state != StateRefine {
		return nil, models.NewValidationError("nothing to submit")
	}
	if strings.TrimSpace(c.caption) == "" {
		return nil, models.NewValidationError("caption is required")
	}
	posts, err := c.feed.CreatePost(ctx, CreatePostInput{
		ImageURL: c.imageURL,
		Caption:  c.caption,
		Vibe:     c.vibe,
		Location: c.location,
	})
	if err != nil {
		return nil, err
	}
	c.state = StateSubmitted
	return posts, nil
}
