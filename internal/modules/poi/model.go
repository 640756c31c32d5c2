// README: Search candidates and their running score.
package poi

import "tripscope/internal/maps"

type SearchType string

const (
	// SearchCityPrefixed queries "scope+keyword".
	SearchCityPrefixed SearchType = "cityPrefixed"
	// SearchPlain queries the bare keyword, constrained to the scope when set.
	SearchPlain SearchType = "plain"
)

// Base scores per search type.
const (
	baseCityPrefixed = 100
	basePlain        = 50
)

// Bonuses added by the scoring stages.
const (
	bonusExactRegion    = 50
	bonusSuffixRegion   = 30
	bonusProvinceRegion = 20
	bonusName           = 40
	bonusCategory       = 20
)

// Candidate is one search hit with its accumulated score. Stages never
// modify a Candidate in place; they return a new slice.
type Candidate struct {
	maps.Place
	SearchType SearchType
	Score      int
}

func newCandidates(places []maps.Place, st SearchType, base int) []Candidate {
	out := make([]Candidate, 0, len(places))
	for _, p := range places {
		out = append(out, Candidate{Place: p, SearchType: st, Score: base})
	}
	return out
}

// with returns a copy of c with delta added to its score.
func (c Candidate) with(delta int) Candidate {
	c.Score += delta
	return c
}

// mergeCandidates concatenates groups, keeping one entry per name and
// location. The entry with the higher base score wins.
func mergeCandidates(groups ...[]Candidate) []Candidate {
	var out []Candidate
	seen := make(map[string]int)
	for _, group := range groups {
		for _, c := range group {
			key := c.Name + "|" + c.Location
			if i, ok := seen[key]; ok {
				if c.Score > out[i].Score {
					out[i] = c
				}
				continue
			}
			seen[key] = len(out)
			out = append(out, c)
		}
	}
	return out
}
