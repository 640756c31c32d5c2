// README: Merges explicit, current and historical region signals into one scope.
package scope

import (
	"context"
	"strings"

	"tripscope/internal/modules/region"
	"tripscope/internal/types"
)

// Resolver picks the planning scope for a request.
type Resolver struct {
	extractor *region.Extractor
}

// NewResolver returns a Resolver. A nil extractor uses heuristics only.
func NewResolver(extractor *region.Extractor) *Resolver {
	return &Resolver{extractor: extractor}
}

// Resolve builds the candidate list and turns the best candidate into a
// resolution or a clarification.
func (r *Resolver) Resolve(ctx context.Context, explicit, text string, history []types.ChatMessage) Resolution {
	cands := r.Candidates(ctx, explicit, text, history)
	best, ok := Best(cands)
	if !ok {
		return Resolution{
			State:       StateGeneral,
			Candidates:  cands,
			Message:     generalMessage,
			Suggestions: generalSuggestions(),
		}
	}

	if best.IsProvince() && !region.IsSAR(best.Name) {
		return Resolution{
			State:       StateProvince,
			Scope:       best,
			DisplayName: best.Raw,
			Candidates:  cands,
			Message:     provinceClarification(best.Name),
			Suggestions: provinceSuggestions(best.Name),
		}
	}

	city := best.Name
	if best.IsProvince() {
		// Hong Kong and Macau have no prefecture cities below them.
		city = region.ShortProvinceName(best.Name)
	}
	return Resolution{
		State:       StateResolved,
		Scope:       best,
		SearchCity:  city,
		DisplayName: best.Raw,
		Candidates:  cands,
	}
}

// Candidates collects region matches in priority order: the explicit field,
// the current message, user history (newest first) and finally cities of
// earlier results. History is only consulted until a city-level entry exists.
func (r *Resolver) Candidates(ctx context.Context, explicit, text string, history []types.ChatMessage) []region.Match {
	var cands []region.Match

	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if m, ok := region.Extract(explicit); ok {
			cands = append(cands, m)
		} else {
			cands = append(cands, region.CityMatch(explicit, explicit))
		}
	}
	if m, ok := r.extract(ctx, text); ok {
		cands = append(cands, m)
	}
	if hasCity(cands) {
		return cands
	}

	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Type != types.RoleUser {
			continue
		}
		m, ok := region.Extract(msg.Content)
		if !ok {
			continue
		}
		cands = append(cands, m)
		if m.IsCity() {
			return cands
		}
	}

	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Type != types.RoleAssistant || msg.Data == nil {
			continue
		}
		for _, poi := range msg.Data.POIs {
			if city := strings.TrimSpace(poi.City); city != "" {
				return append(cands, region.CityMatch(city, city))
			}
		}
	}
	return cands
}

func (r *Resolver) extract(ctx context.Context, text string) (region.Match, bool) {
	if r == nil || r.extractor == nil {
		return region.Extract(text)
	}
	return r.extractor.Extract(ctx, text)
}

// Best returns the first city-level candidate, else the first candidate.
func Best(cands []region.Match) (region.Match, bool) {
	for _, c := range cands {
		if c.IsCity() {
			return c, true
		}
	}
	if len(cands) > 0 {
		return cands[0], true
	}
	return region.Match{}, false
}

func hasCity(cands []region.Match) bool {
	for _, c := range cands {
		if c.IsCity() {
			return true
		}
	}
	return false
}
