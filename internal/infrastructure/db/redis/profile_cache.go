package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estateview/realty-api/internal/core/domain"
)

const defaultProfileTTL = 5 * time.Minute

// ProfileCache stores public user profiles as JSON.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get returns the cached profile for id. A miss is (nil, false, nil).
func (p *ProfileCache) Get(ctx context.Context, id string) (*domain.User, bool, error) {
	raw, err := p.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &u, true, nil
}

// Set caches user for the configured TTL. The password hash never leaves
// the store because domain.User does not serialise it.
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return p.client.Set(ctx, profileKey(user.ID), raw, p.ttl).Err()
}

// Invalidate drops the cached profile for id.
func (p *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return p.client.Del(ctx, profileKey(id)).Err()
}

func profileKey(id string) string {
	return "profile:" + id
}
