package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisRepository stores one JSON document per user. Profiles carry no TTL:
// they are long-term facts, not session state.
type RedisRepository struct {
	client *redis.Client
	tracer trace.Tracer
}

// NewRedisRepository initializes a repository over a redis client.
func NewRedisRepository(client *redis.Client, tracer trace.Tracer) *RedisRepository {
	if client == nil {
		panic("profile: redis client required")
	}
	if tracer == nil {
		tracer = otel.Tracer("wellness.internal.profile.redis")
	}
	return &RedisRepository{client: client, tracer: tracer}
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// Get loads and decodes the profile for a user.
func (r *RedisRepository) Get(ctx context.Context, userID string) (*UserProfile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	ctx, span := r.tracer.Start(ctx, "profile.redis.get")
	defer span.End()

	data, err := r.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrProfileNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("%w: redis get: %v", ErrStoreUnavailable, err)
	}

	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("profile: decode document for %s: %w", userID, err)
	}
	return &p, nil
}

// Put persists the profile document.
func (r *RedisRepository) Put(ctx context.Context, p *UserProfile) error {
	if p == nil || p.UserID == "" {
		return ErrMissingUserID
	}
	ctx, span := r.tracer.Start(ctx, "profile.redis.put")
	defer span.End()

	data, err := json.Marshal(p)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("profile: encode document for %s: %w", p.UserID, err)
	}
	if err := r.client.Set(ctx, profileKey(p.UserID), data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: redis set: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the stored profile. Unknown users are not an error.
func (r *RedisRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	ctx, span := r.tracer.Start(ctx, "profile.redis.delete")
	defer span.End()

	if err := r.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: redis del: %v", ErrStoreUnavailable, err)
	}
	return nil
}
