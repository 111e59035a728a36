package profile

import (
	"context"
	"sync"
)

// Repository is the persistence boundary for user profiles. Implementations
// must return ErrProfileNotFound for unknown users and wrap I/O failures in
// ErrStoreUnavailable so callers can distinguish retryable errors.
type Repository interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
	Put(ctx context.Context, p *UserProfile) error
	Delete(ctx context.Context, userID string) error
}

// InMemoryRepository keeps profiles in a process-local map. Used in tests
// and local development; state does not survive a restart.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*UserProfile
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{profiles: make(map[string]*UserProfile)}
}

// Get returns a copy of the stored profile.
func (r *InMemoryRepository) Get(ctx context.Context, userID string) (*UserProfile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Put stores a copy of the profile keyed by its user ID.
func (r *InMemoryRepository) Put(ctx context.Context, p *UserProfile) error {
	if p == nil || p.UserID == "" {
		return ErrMissingUserID
	}
	r.mu.Lock()
	r.profiles[p.UserID] = p.Clone()
	r.mu.Unlock()
	return nil
}

// Delete removes a profile. Deleting an unknown user is not an error.
func (r *InMemoryRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	r.mu.Lock()
	delete(r.profiles, userID)
	r.mu.Unlock()
	return nil
}
