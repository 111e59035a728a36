package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type pgPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores one JSONB document per user in the profiles
// table.
type PostgresRepository struct {
	pool pgPool
}

// NewPostgresRepository initializes a repository backed by a pgx pool.
func NewPostgresRepository(pool pgPool) *PostgresRepository {
	if pool == nil {
		panic("profile: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Get loads and decodes the profile document for a user.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*UserProfile, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT document FROM profiles WHERE user_id = $1`, userID,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: select profile: %v", ErrStoreUnavailable, err)
	}

	var p UserProfile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("profile: decode document for %s: %w", userID, err)
	}
	return &p, nil
}

// Put upserts the profile document.
func (r *PostgresRepository) Put(ctx context.Context, p *UserProfile) error {
	if p == nil || p.UserID == "" {
		return ErrMissingUserID
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: encode document for %s: %w", p.UserID, err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`, p.UserID, doc)
	if err != nil {
		return fmt.Errorf("%w: upsert profile: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes the profile row. Unknown users are not an error.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: delete profile: %v", ErrStoreUnavailable, err)
	}
	return nil
}
