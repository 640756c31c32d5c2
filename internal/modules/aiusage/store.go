package aiusage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles plan_quota persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken atomically checks the quota for period and deducts one request.
// A row from an older period is reset to allowance before the deduction.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or uid absent).
func (s *Store) UseToken(ctx context.Context, uid, period string, allowance int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE plan_quota SET
			requests_remaining = CASE WHEN period != $1 THEN $2 - 1 ELSE requests_remaining - 1 END,
			period = $1,
			updated_at = NOW()
		WHERE uid = $3 AND (period < $1 OR requests_remaining > 0)
	`, period, allowance, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a plan_quota row for uid with the full allowance.
// An existing row is left alone (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid, period string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO plan_quota (uid, requests_remaining, period)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, allowance, period)
	return err
}

// Remaining returns the requests left for uid in period. A missing row or an
// older period counts as a full allowance.
func (s *Store) Remaining(ctx context.Context, uid, period string, allowance int) (int, error) {
	var remaining int
	err := s.db.QueryRow(ctx, `
		SELECT CASE WHEN period = $2 THEN requests_remaining ELSE $3 END
		FROM plan_quota WHERE uid = $1
	`, uid, period, allowance).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return allowance, nil
		}
		return 0, err
	}
	return remaining, nil
}
