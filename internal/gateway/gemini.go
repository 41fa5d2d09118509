package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trinethra/internal/cache"
	"trinethra/internal/models"
	"trinethra/internal/observability"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient implements Assistant against the Gemini REST API.
type GeminiClient struct {
	apiKey     string
	textModel  string
	imageModel string
	baseURL    string
	httpClient *http.Client
	log        *observability.GatewayLogger
}

// GeminiOption customizes a GeminiClient.
type GeminiOption func(*GeminiClient)

// WithBaseURL overrides the API endpoint. Tests point this at a local server.
func WithBaseURL(u string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) GeminiOption {
	return func(c *GeminiClient) { c.httpClient = hc }
}

// NewGeminiClient creates an Assistant backed by the Gemini API.
func NewGeminiClient(apiKey, textModel, imageModel string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        observability.NewGatewayLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire types for the generateContent endpoint.

type genRequest struct {
	Contents         []genContent      `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type genResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) CaptionFor(ctx context.Context, image string) (string, error) {
	var caption string
	err := cache.Aside(ctx, cache.CaptionKey(image), &caption, cache.CaptionTTL, func() error {
		resp, err := c.generate(ctx, c.textModel, imagePromptRequest(image,
			"Generate a creative, short, and engaging Instagram-style caption for this image. Use relevant hashtags."))
		if err != nil {
			return err
		}
		caption = firstText(resp)
		if caption == "" {
			caption = DefaultCaption
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return caption, nil
}

func (c *GeminiClient) VibeFor(ctx context.Context, image string) (string, error) {
	var vibe string
	err := cache.Aside(ctx, cache.VibeKey(image), &vibe, cache.VibeTTL, func() error {
		resp, err := c.generate(ctx, c.textModel, imagePromptRequest(image,
			"Describe the 'Aura' or 'Vibe' of this image in exactly 2-3 words. For example: 'Cosmic Calm' or 'Urban Grit'."))
		if err != nil {
			return err
		}
		vibe = strings.TrimSpace(firstText(resp))
		if vibe == "" {
			vibe = DefaultVibe
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return vibe, nil
}

func (c *GeminiClient) ImageFor(ctx context.Context, prompt string) (string, error) {
	resp, err := c.generate(ctx, c.imageModel, &genRequest{
		Contents: []genContent{{Parts: []genPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}
	// No image in the response is a defined outcome, not an error.
	return "", nil
}

func (c *GeminiClient) RankMatches(ctx context.Context, query string, posts []PostSummary) ([]string, error) {
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var matches []string
	err := cache.Aside(ctx, cache.MatchesKey(query, postIDs), &matches, cache.MatchesTTL, func() error {
		summaries, err := json.Marshal(posts)
		if err != nil {
			return err
		}
		prompt := fmt.Sprintf(
			"Search Query: %q\nPosts: %s\nWhich post IDs best match this query? "+
				`Respond with JSON of the form {"matches": ["id", ...]}.`,
			query, summaries)

		resp, err := c.generate(ctx, c.textModel, &genRequest{
			Contents:         []genContent{{Parts: []genPart{{Text: prompt}}}},
			GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
		})
		if err != nil {
			return err
		}

		var result struct {
			Matches []string `json:"matches"`
		}
		if err := json.Unmarshal([]byte(firstText(resp)), &result); err != nil {
			return models.NewGatewayUnavailableError(fmt.Errorf("malformed ranking response: %w", err))
		}
		matches = result.Matches
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *GeminiClient) generate(ctx context.Context, model string, req *genRequest) (*genResponse, error) {
	c.log.LogCall(ctx, "generateContent", model)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, models.NewGatewayUnavailableError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, models.NewGatewayUnavailableError(
			fmt.Errorf("gemini returned %d: %s", httpResp.StatusCode, snippet))
	}

	var resp genResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, models.NewGatewayUnavailableError(fmt.Errorf("malformed response: %w", err))
	}
	return &resp, nil
}

// imagePromptRequest builds a request pairing an inline image with an
// instruction.
func imagePromptRequest(image, instruction string) *genRequest {
	return &genRequest{
		Contents: []genContent{{Parts: []genPart{
			{InlineData: &inlineData{MimeType: imageMimeType(image), Data: imagePayload(image)}},
			{Text: instruction},
		}}},
	}
}

// imagePayload strips the data-URI prefix, leaving the raw base64 payload.
// Non-data inputs pass through unchanged.
func imagePayload(image string) string {
	if strings.HasPrefix(image, "data:") {
		if idx := strings.Index(image, ","); idx >= 0 {
			return image[idx+1:]
		}
	}
	return image
}

func imageMimeType(image string) string {
	if strings.HasPrefix(image, "data:") {
		rest := strings.TrimPrefix(image, "data:")
		if idx := strings.IndexAny(rest, ";,"); idx > 0 {
			if mime := rest[:idx]; strings.Contains(mime, "/") {
				return mime
			}
		}
	}
	return "image/jpeg"
}

func firstText(resp *genResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}
