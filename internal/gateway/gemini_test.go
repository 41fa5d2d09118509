package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trinethra/internal/models"
)

// textResponse builds a generateContent body with a single text part.
func textResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient("test-key", "text-model", "image-model", WithBaseURL(srv.URL))
}

func TestCaptionFor(t *testing.T) {
	t.Run("Returns Generated Caption", func(t *testing.T) {
		var gotReq genRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/text-model:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.Write([]byte(textResponse("Chasing light. #sunset")))
		})

		caption, err := client.CaptionFor(context.Background(), "data:image/png;base64,AAAA")
		require.NoError(t, err)
		assert.Equal(t, "Chasing light. #sunset", caption)

		// the image travels as inline data with the data-URI prefix stripped
		require.Len(t, gotReq.Contents, 1)
		parts := gotReq.Contents[0].Parts
		require.Len(t, parts, 2)
		require.NotNil(t, parts[0].InlineData)
		assert.Equal(t, "image/png", parts[0].InlineData.MimeType)
		assert.Equal(t, "AAAA", parts[0].InlineData.Data)
		assert.Contains(t, parts[1].Text, "caption")
	})

	t.Run("Empty Response Yields Stock Caption", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})

		caption, err := client.CaptionFor(context.Background(), "img")
		require.NoError(t, err)
		assert.Equal(t, DefaultCaption, caption)
	})

	t.Run("HTTP Error Surfaces As Gateway Unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		_, err := client.CaptionFor(context.Background(), "img")
		assert.True(t, models.HasCode(err, models.CodeGatewayUnavailable))
	})
}

func TestVibeFor(t *testing.T) {
	t.Run("Trims Generated Vibe", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(textResponse("  Cosmic Calm\n")))
		})

		vibe, err := client.VibeFor(context.Background(), "img")
		require.NoError(t, err)
		assert.Equal(t, "Cosmic Calm", vibe)
	})

	t.Run("Empty Response Yields Stock Vibe", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})

		vibe, err := client.VibeFor(context.Background(), "img")
		require.NoError(t, err)
		assert.Equal(t, DefaultVibe, vibe)
	})
}

func TestImageFor(t *testing.T) {
	t.Run("Wraps Inline Data As Data URI", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/image-model:generateContent", r.URL.Path)
			body, _ := json.Marshal(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{
						{"text": "here you go"},
						{"inlineData": map[string]string{"mimeType": "image/png", "data": "QUJD"}},
					}}},
				},
			})
			w.Write(body)
		})

		image, err := client.ImageFor(context.Background(), "neon alley")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,QUJD", image)
	})

	t.Run("No Image Is Not An Error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(textResponse("sorry, text only")))
		})

		image, err := client.ImageFor(context.Background(), "neon alley")
		require.NoError(t, err)
		assert.Empty(t, image)
	})
}

func TestRankMatches(t *testing.T) {
	summaries := []PostSummary{
		{ID: "p1", Caption: "Sunset over the bay", Vibe: "Golden Hour"},
		{ID: "p2", Caption: "City lights"},
	}

	t.Run("Parses Match IDs", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req genRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.GenerationConfig)
			assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
			assert.Contains(t, req.Contents[0].Parts[0].Text, "Sunset over the bay")
			w.Write([]byte(textResponse(`{"matches":["p1"]}`)))
		})

		ids, err := client.RankMatches(context.Background(), "sunset", summaries)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, ids)
	})

	t.Run("Malformed JSON Surfaces As Gateway Unavailable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(textResponse("p1 and p2 look relevant")))
		})

		_, err := client.RankMatches(context.Background(), "sunset", summaries)
		assert.True(t, models.HasCode(err, models.CodeGatewayUnavailable))
	})
}

func TestImagePayloadHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		image    string
		payload  string
		mimeType string
	}{
		{"Data URI", "data:image/png;base64,AAAA", "AAAA", "image/png"},
		{"Webp Data URI", "data:image/webp;base64,BBBB", "BBBB", "image/webp"},
		{"Plain URL", "https://example.com/i.jpg", "https://example.com/i.jpg", "image/jpeg"},
		{"Malformed Data URI", "data:,", "", "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.payload, imagePayload(tt.image))
			assert.Equal(t, tt.mimeType, imageMimeType(tt.image))
		})
	}
}

func TestFirstText(t *testing.T) {
	t.Parallel()

	var resp genResponse
	require.NoError(t, json.NewDecoder(strings.NewReader(textResponse("hello"))).Decode(&resp))
	assert.Equal(t, "hello", firstText(&resp))
	assert.Empty(t, firstText(&genResponse{}))
}
