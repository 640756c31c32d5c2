// README: Search response cache backed by Redis.
package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tripscope/internal/maps"
)

const (
	searchKeyPrefix = "poi:search:%s:%s"
	// Place data changes slowly; an hour keeps repeated itineraries cheap.
	defaultSearchTTL = time.Hour
)

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSearchTTL
	}
	return &Store{redis: redis, ttl: ttl}
}

// GetSearch returns the cached places for (query, city) and whether they were cached.
func (s *Store) GetSearch(ctx context.Context, query, city string) ([]maps.Place, bool, error) {
	val, err := s.redis.Get(ctx, searchKey(query, city)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var places []maps.Place
	if err := json.Unmarshal(val, &places); err != nil {
		return nil, false, err
	}
	return places, true, nil
}

func (s *Store) PutSearch(ctx context.Context, query, city string, places []maps.Place) error {
	if places == nil {
		places = []maps.Place{}
	}
	b, err := json.Marshal(places)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, searchKey(query, city), b, s.ttl).Err()
}

func searchKey(query, city string) string {
	return fmt.Sprintf(searchKeyPrefix, city, query)
}

// CachedSearcher serves repeated searches from the Store. Cache failures are
// logged and fall through to the backend.
type CachedSearcher struct {
	next  maps.Searcher
	store *Store
}

func NewCachedSearcher(next maps.Searcher, store *Store) *CachedSearcher {
	return &CachedSearcher{next: next, store: store}
}

func (c *CachedSearcher) Search(ctx context.Context, query, city string) ([]maps.Place, error) {
	places, ok, err := c.store.GetSearch(ctx, query, city)
	if err != nil {
		log.Printf("poi cache get %q/%q: %v", city, query, err)
	}
	if ok {
		return places, nil
	}

	places, err = c.next.Search(ctx, query, city)
	if err != nil {
		return nil, err
	}
	if err := c.store.PutSearch(ctx, query, city, places); err != nil {
		log.Printf("poi cache put %q/%q: %v", city, query, err)
	}
	return places, nil
}
