package profile

import (
	"context"
	"time"
)

// TimeoutRepository enforces a caller-imposed deadline on every store
// operation, so a slow backend fails fast instead of silently holding a
// request with a stale profile.
type TimeoutRepository struct {
	inner   Repository
	timeout time.Duration
}

// WithTimeout wraps a repository; a non-positive timeout returns the
// repository unchanged.
func WithTimeout(inner Repository, timeout time.Duration) Repository {
	if timeout <= 0 {
		return inner
	}
	return &TimeoutRepository{inner: inner, timeout: timeout}
}

func (r *TimeoutRepository) Get(ctx context.Context, userID string) (*UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.Get(ctx, userID)
}

func (r *TimeoutRepository) Put(ctx context.Context, p *UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.Put(ctx, p)
}

func (r *TimeoutRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.Delete(ctx, userID)
}
