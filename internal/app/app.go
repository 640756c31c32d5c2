// README: Wires config into providers, stores and the trip planner; shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log"

	"tripscope/internal/ai"
	"tripscope/internal/config"
	"tripscope/internal/infra"
	"tripscope/internal/maps"
	"tripscope/internal/modules/aiusage"
	"tripscope/internal/modules/poi"
	"tripscope/internal/modules/region"
	"tripscope/internal/modules/scope"
	"tripscope/internal/service"
)

type App struct {
	Planner  *service.TripPlanner
	Resolver *scope.Resolver
	Quota    *aiusage.Service

	closers []func()
}

// New builds the pipeline. Redis is optional: when it cannot be reached the
// search cache is skipped. A configured database must be reachable.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	llm, err := newLLM(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}
	if c, ok := llm.(interface{ Close() }); ok {
		a.closers = append(a.closers, c.Close)
	}

	var oracle region.Oracle
	if cfg.AI.RegionEnabled {
		oracle = llm
	}
	a.Resolver = scope.NewResolver(region.NewExtractor(oracle, cfg.AI.RegionTimeout))

	searcher, err := newSearcher(cfg.Search)
	if err != nil {
		a.Close()
		return nil, err
	}
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Printf("search cache disabled: %v", err)
		} else {
			a.closers = append(a.closers, func() { _ = client.Close() })
			searcher = poi.NewCachedSearcher(searcher, poi.NewStore(client, cfg.Search.CacheTTL))
		}
	}

	var quota service.QuotaGuard
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		a.Quota = aiusage.NewService(aiusage.NewStore(pool), cfg.Quota.Monthly)
		quota = a.Quota
	}

	places := poi.NewService(searcher, poi.Config{
		KeywordDelay:     cfg.Search.KeywordDelay,
		StrategyDelay:    cfg.Search.StrategyDelay,
		RateLimitBackoff: cfg.Search.RateLimitBackoff,
	})
	a.Planner = service.NewTripPlanner(llm, a.Resolver, places, quota, cfg.AI.PlanTimeout)
	return a, nil
}

// Close releases the clients New opened, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newLLM(ctx context.Context, cfg config.AIConfig) (ai.LLMProvider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBase, cfg.OpenAIModel)
	case config.ProviderGemini:
		return ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel)
	}
	return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
}

func newSearcher(cfg config.SearchConfig) (maps.Searcher, error) {
	switch cfg.Backend {
	case config.BackendGoogle:
		return maps.NewPlacesService(cfg.GoogleKey, cfg.QPS)
	case config.BackendAMap:
		return maps.NewAMapClient(cfg.AMapKey, cfg.QPS)
	}
	return nil, fmt.Errorf("unknown search backend %q", cfg.Backend)
}
