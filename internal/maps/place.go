package maps

import (
	"context"
	"errors"
)

// ErrRateLimited is returned when a search backend rejects a call for
// exceeding its QPS or daily quota.
var ErrRateLimited = errors.New("search backend rate limited")

// Place is one candidate returned by a text search backend.
type Place struct {
	Name     string
	CityName string
	Province string
	District string
	Address  string
	Type     string
	// Location is "lng,lat" as the backends encode it.
	Location string
}

// Searcher is a keyword-in, ranked-candidates-out search backend.
// city constrains results when non-empty.
type Searcher interface {
	Search(ctx context.Context, query, city string) ([]Place, error)
}
