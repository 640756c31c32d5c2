package maps

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// PlacesService searches Google Places text search. Google returns no
// structured city field, so CityName stays empty and callers match on the
// formatted address.
type PlacesService struct {
	client  *maps.Client
	limiter *rate.Limiter
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra client options (for example maps.WithBaseURL in tests) are appended.
func NewPlacesService(apiKey string, qps float64, opts ...maps.ClientOption) (*PlacesService, error) {
	if qps <= 0 {
		qps = 3
	}
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, limiter: rate.NewLimiter(rate.Limit(qps), 1)}, nil
}

// Search runs a text search for query. Google has no hard city filter, so
// the city is folded into the query when it is not already there.
func (s *PlacesService) Search(ctx context.Context, query, city string) ([]Place, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fullQuery := query
	if city != "" && !strings.Contains(query, city) {
		fullQuery = city + " " + query
	}

	r := &maps.TextSearchRequest{
		Query:    fullQuery,
		Language: "zh-CN",
		Region:   "cn",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		if strings.Contains(err.Error(), "OVER_QUERY_LIMIT") {
			return nil, fmt.Errorf("places api error: %v: %w", err, ErrRateLimited)
		}
		return nil, fmt.Errorf("places api error: %w", err)
	}

	results := make([]Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		loc := result.Geometry.Location
		results = append(results, Place{
			Name:     result.Name,
			Address:  result.FormattedAddress,
			Type:     strings.Join(result.Types, ";"),
			Location: fmt.Sprintf("%f,%f", loc.Lng, loc.Lat),
		})
	}
	return results, nil
}
