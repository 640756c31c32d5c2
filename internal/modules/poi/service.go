// README: Per-keyword place resolution. Keywords run one at a time to stay under backend QPS limits.
package poi

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tripscope/internal/maps"
	"tripscope/internal/types"
)

// Results closer than this are treated as the same place.
const duplicateRadiusKm = 0.05

// Config tunes pacing between backend calls.
type Config struct {
	// KeywordDelay is waited before each keyword once a result exists.
	KeywordDelay time.Duration
	// StrategyDelay separates the two searches of one keyword.
	StrategyDelay time.Duration
	// RateLimitBackoff is waited after a rate-limited keyword.
	RateLimitBackoff time.Duration
	// Sleep replaces the context-aware timer; nil uses the real one.
	Sleep func(ctx context.Context, d time.Duration)
}

// DefaultConfig returns the pacing used in production.
func DefaultConfig() Config {
	return Config{
		KeywordDelay:     200 * time.Millisecond,
		StrategyDelay:    150 * time.Millisecond,
		RateLimitBackoff: 500 * time.Millisecond,
	}
}

// Service resolves itinerary keywords to validated places.
type Service struct {
	searcher maps.Searcher
	cfg      Config
}

func NewService(searcher maps.Searcher, cfg Config) *Service {
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	return &Service{searcher: searcher, cfg: cfg}
}

// Resolve searches for keyword inside scope and returns the single best
// candidate that survives the final check. A winner that fails the check
// discards the keyword; there is no runner-up.
func (s *Service) Resolve(ctx context.Context, keyword, scope string) (types.PoiResult, bool, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return types.PoiResult{}, false, nil
	}

	cands, err := s.candidates(ctx, keyword, scope)
	if err != nil {
		return types.PoiResult{}, false, err
	}
	ranked := Score(cands, GeoFilter(scope), NameBonus(keyword), CategoryBonus())
	if len(ranked) == 0 {
		log.Printf("poi %q: no candidate in %q", keyword, scope)
		return types.PoiResult{}, false, nil
	}

	best := ranked[0]
	if !Verify(best, scope) {
		log.Printf("poi %q: winner %q (city %q) failed region check for %q", keyword, best.Name, best.CityName, scope)
		return types.PoiResult{}, false, nil
	}
	loc, ok := ParseLocation(best.Location)
	if !ok {
		log.Printf("poi %q: winner %q has unusable location %q", keyword, best.Name, best.Location)
		return types.PoiResult{}, false, nil
	}

	city := best.CityName
	if city == "" {
		city = scope
	}
	return types.PoiResult{
		Name:    CleanName(best.Name),
		City:    city,
		Address: best.Address,
		Lat:     loc.Lat,
		Lng:     loc.Lng,
	}, true, nil
}

func (s *Service) candidates(ctx context.Context, keyword, scope string) ([]Candidate, error) {
	if scope == "" {
		places, err := s.searcher.Search(ctx, keyword, "")
		if err != nil {
			return nil, err
		}
		return newCandidates(places, SearchPlain, basePlain), nil
	}

	query := keyword
	if !strings.HasPrefix(keyword, scope) {
		query = scope + keyword
	}
	prefixed, err := s.searcher.Search(ctx, query, scope)
	if err != nil {
		return nil, err
	}
	s.cfg.Sleep(ctx, s.cfg.StrategyDelay)

	plain, err := s.searcher.Search(ctx, keyword, scope)
	if err != nil {
		return nil, err
	}

	return mergeCandidates(
		newCandidates(prefixed, SearchCityPrefixed, baseCityPrefixed),
		newCandidates(plain, SearchPlain, basePlain),
	), nil
}

// ResolveAll resolves keywords in order, one at a time. A failing keyword is
// logged and skipped; rate-limit errors add a backoff before the next one.
// The returned list is de-duplicated and passed through FilterByScope.
func (s *Service) ResolveAll(ctx context.Context, keywords []string, scope string) []types.PoiResult {
	results := []types.PoiResult{}
	for _, kw := range keywords {
		if ctx.Err() != nil {
			log.Printf("poi search stopped: %v", ctx.Err())
			break
		}
		if len(results) > 0 {
			s.cfg.Sleep(ctx, s.cfg.KeywordDelay)
		}

		res, ok, err := s.Resolve(ctx, kw, scope)
		if err != nil {
			log.Printf("poi search %q failed: %v", kw, err)
			if errors.Is(err, maps.ErrRateLimited) {
				s.cfg.Sleep(ctx, s.cfg.RateLimitBackoff)
			}
			continue
		}
		if !ok || isDuplicate(results, res) {
			continue
		}
		results = append(results, res)
	}
	return FilterByScope(results, scope)
}

func isDuplicate(existing []types.PoiResult, r types.PoiResult) bool {
	for _, e := range existing {
		if e.Name == r.Name || e.Point().DistanceKm(r.Point()) < duplicateRadiusKm {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
