package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisRepositoryRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client, nil)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "unknown"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Get(unknown) = %v, want ErrProfileNotFound", err)
	}

	p := New("user-1", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	p.Name = "Elena"
	p.HealthConditions = []string{"migrene"}
	if err := repo.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := repo.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Elena" || len(got.HealthConditions) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// Profiles are long-term facts and must not expire.
	if mr.TTL("profile:user-1") != 0 {
		t.Errorf("profile key has TTL %v", mr.TTL("profile:user-1"))
	}
}

func TestRedisRepositoryDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client, nil)
	ctx := context.Background()

	if err := repo.Put(ctx, New("user-1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "user-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("profile survived delete: %v", err)
	}
}

func TestRedisRepositoryUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepository(client, nil)
	ctx := context.Background()

	mr.Close()

	if _, err := repo.Get(ctx, "user-1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Get after outage = %v, want wrapped ErrStoreUnavailable", err)
	}
	if err := repo.Put(ctx, New("user-1", time.Now())); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Put after outage = %v, want wrapped ErrStoreUnavailable", err)
	}
}
