package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per response type. Caption and vibe are deterministic enough per image
// to keep for a day; search rankings go stale with the collection.
const (
	CaptionTTL = 24 * time.Hour
	VibeTTL    = 24 * time.Hour
	MatchesTTL = 5 * time.Minute
)

// CaptionKey returns the cache key for a caption generated for image.
func CaptionKey(image string) string {
	return fmt.Sprintf("caption:%s", shortHash(image))
}

// VibeKey returns the cache key for a vibe classified for image.
func VibeKey(image string) string {
	return fmt.Sprintf("vibe:%s", shortHash(image))
}

// MatchesKey returns the cache key for a ranking of postIDs against query.
func MatchesKey(query string, postIDs []string) string {
	return fmt.Sprintf("matches:%s", shortHash(query+"|"+strings.Join(postIDs, ",")))
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache failures never fail the fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
