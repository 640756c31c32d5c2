// README: Region extraction entry points. An optional AI pass runs first; the heuristic chain is the fallback.
package region

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"

	"tripscope/internal/ai"
)

// Extract runs the heuristic chain and returns the first match.
func Extract(text string) (Match, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Match{}, false
	}
	for _, strategy := range heuristicChain {
		if m, ok := strategy(text); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Oracle is the language model view the extractor needs.
type Oracle interface {
	ExtractRegion(ctx context.Context, text string) (*ai.RegionResult, error)
}

// Extractor combines the AI pass with the heuristic chain.
// A nil Oracle disables the AI pass.
type Extractor struct {
	oracle  Oracle
	timeout time.Duration
	cache   *cache.Cache
}

// NewExtractor creates an Extractor. timeout bounds every oracle call.
func NewExtractor(oracle Oracle, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Extractor{
		oracle:  oracle,
		timeout: timeout,
		cache:   cache.New(30*time.Minute, 10*time.Minute),
	}
}

// Extract returns the oracle's answer when it is well formed, otherwise the
// heuristic result. Oracle failures are logged and never returned.
func (e *Extractor) Extract(ctx context.Context, text string) (Match, bool) {
	if m, ok := e.fromOracle(ctx, text); ok {
		return m, true
	}
	return Extract(text)
}

func (e *Extractor) fromOracle(ctx context.Context, text string) (Match, bool) {
	if e == nil || e.oracle == nil {
		return Match{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Match{}, false
	}
	if cached, found := e.cache.Get(text); found {
		m, ok := cached.(*Match)
		if !ok || m == nil {
			return Match{}, false
		}
		return *m, true
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.oracle.ExtractRegion(callCtx, text)
	if err != nil {
		log.Printf("region oracle failed, using heuristics: %v", err)
		return Match{}, false
	}
	m, ok := FromOracle(res)
	if !ok {
		e.cache.SetDefault(text, (*Match)(nil))
		return Match{}, false
	}
	e.cache.SetDefault(text, &m)
	return m, true
}

var oracleNullNames = map[string]bool{
	"": true, "未知": true, "无": true, "null": true, "none": true, "unknown": true, "n/a": true,
}

// FromOracle validates a model answer and converts it into a Match.
func FromOracle(res *ai.RegionResult) (Match, bool) {
	if res == nil {
		return Match{}, false
	}
	name := strings.TrimSpace(res.Name)
	if oracleNullNames[strings.ToLower(name)] || utf8.RuneCountInString(name) > 20 {
		return Match{}, false
	}
	if IsMunicipality(name) {
		return cityMatch(name, ShortProvinceName(name)), true
	}
	switch Level(strings.ToLower(strings.TrimSpace(res.Level))) {
	case LevelProvince:
		if !IsKnownDivision(name) {
			return Match{}, false
		}
		return provinceMatch(name, name), true
	case LevelCity:
		if IsKnownDivision(name) && !strings.HasSuffix(name, "市") {
			return provinceMatch(name, name), true
		}
		return cityMatch(name, trimIntentSuffix(name)), true
	default:
		return Match{}, false
	}
}
