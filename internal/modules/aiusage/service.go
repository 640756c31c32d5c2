package aiusage

import (
	"context"
	"errors"
	"time"
)

type quotaStore interface {
	UseToken(ctx context.Context, uid, period string, allowance int) error
	EnsureUser(ctx context.Context, uid, period string, allowance int) error
	Remaining(ctx context.Context, uid, period string, allowance int) (int, error)
}

// Service orchestrates planning quota logic.
type Service struct {
	store     quotaStore
	allowance int
	now       func() time.Time
}

// NewService creates a Service backed by the given Store. A non-positive
// allowance uses DefaultTokens.
func NewService(store *Store, allowance int) *Service {
	return newService(store, allowance)
}

func newService(store quotaStore, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Service{store: store, allowance: allowance, now: time.Now}
}

// UseToken deducts one planning request from the client's monthly allowance.
// If the row does not exist yet it is initialised and the request is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	period := s.period()
	err := s.store.UseToken(ctx, uid, period, s.allowance)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid, period, s.allowance); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid, period, s.allowance)
}

// Remaining reports how many planning requests uid has left this month.
func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid, s.period(), s.allowance)
}

func (s *Service) period() string {
	return s.now().Format(periodLayout)
}
