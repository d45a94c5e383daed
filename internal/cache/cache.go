// Package cache fronts SCRIBE's per-(user, domain) compensation profile
// lookup with Redis, so a burst of requests from the same teacher in the
// same session doesn't re-run the dossier/guardrail reads on every call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"assessment-forge/internal/domain"

	"github.com/redis/go-redis/v9"
)

// CompensationCache is a thin read/write-through cache in front of
// SCRIBE.SelectAgents.
type CompensationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at redisURL and verifies it with a bounded ping.
func New(redisURL string, ttl time.Duration) (*CompensationCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CompensationCache{client: client, ttl: ttl}, nil
}

func key(userID, dom string) string {
	return fmt.Sprintf("compensation:%s:%s", userID, dom)
}

// Get returns a cached CompensationProfile, or (zero, false) on a miss
// or any Redis error — a cache failure degrades to a direct SCRIBE read,
// it never blocks the pipeline.
func (c *CompensationCache) Get(ctx context.Context, userID, dom string) (domain.CompensationProfile, bool) {
	raw, err := c.client.Get(ctx, key(userID, dom)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return domain.CompensationProfile{}, false
		}
		return domain.CompensationProfile{}, false
	}

	var profile domain.CompensationProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return domain.CompensationProfile{}, false
	}
	return profile, true
}

// Set stores a CompensationProfile for the TTL configured at New. Errors
// are swallowed; a failed cache write just means the next call falls
// back to SCRIBE directly.
func (c *CompensationCache) Set(ctx context.Context, userID, dom string, profile domain.CompensationProfile) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(userID, dom), raw, c.ttl)
}

// Invalidate drops a cached profile, used after Finalize updates the
// underlying dossier/guardrails so the next SelectAgents call re-reads.
func (c *CompensationCache) Invalidate(ctx context.Context, userID, dom string) {
	c.client.Del(ctx, key(userID, dom))
}

// Close releases the underlying Redis connection.
func (c *CompensationCache) Close() error {
	return c.client.Close()
}
