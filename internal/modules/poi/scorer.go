// README: Scoring stages for place candidates. Each stage folds a list into a new list.
package poi

import (
	"sort"
	"strings"

	"tripscope/internal/modules/region"
	"tripscope/internal/types"
)

// Stage transforms a candidate list. It may drop candidates and add to
// scores but never lowers one.
type Stage func([]Candidate) []Candidate

// Provinces where a province-level relaxed match is accepted.
var northeastProvinces = map[string]bool{"辽宁": true, "吉林": true, "黑龙江": true}

var touristCategories = []string{"风景名胜", "景区", "公园", "寺", "庙", "山", "湖", "河", "博物馆", "纪念馆", "广场", "古迹"}

// GeoFilter drops candidates outside scope and rewards the rest by match
// strength. An empty scope keeps everything unchanged.
func GeoFilter(scope string) Stage {
	return func(in []Candidate) []Candidate {
		if scope == "" {
			return append([]Candidate(nil), in...)
		}
		out := make([]Candidate, 0, len(in))
		for _, c := range in {
			if delta, ok := regionBonus(c, scope); ok {
				out = append(out, c.with(delta))
			}
		}
		return out
	}
}

func regionBonus(c Candidate, scope string) (int, bool) {
	if containsAny(scope, c.CityName, c.Address) {
		return bonusExactRegion, true
	}
	relaxed := scope + "市"
	if short := strings.TrimSuffix(scope, "市"); short != scope {
		relaxed = short
	}
	if relaxed != "" && containsAny(relaxed, c.CityName, c.Address) {
		return bonusSuffixRegion, true
	}
	short := region.ShortProvinceName(scope)
	if northeastProvinces[short] && containsAny(short, c.CityName, c.Address, c.Province) {
		return bonusProvinceRegion, true
	}
	return 0, false
}

// NameBonus rewards candidates whose name contains the keyword.
func NameBonus(keyword string) Stage {
	return func(in []Candidate) []Candidate {
		out := make([]Candidate, 0, len(in))
		for _, c := range in {
			if keyword != "" && strings.Contains(c.Name, keyword) {
				c = c.with(bonusName)
			}
			out = append(out, c)
		}
		return out
	}
}

// CategoryBonus rewards tourist-looking candidates by type or name.
func CategoryBonus() Stage {
	return func(in []Candidate) []Candidate {
		out := make([]Candidate, 0, len(in))
		for _, c := range in {
			for _, cat := range touristCategories {
				if strings.Contains(c.Type, cat) || strings.Contains(c.Name, cat) {
					c = c.with(bonusCategory)
					break
				}
			}
			out = append(out, c)
		}
		return out
	}
}

// Score runs the stages in order and returns the candidates best first.
// Ties keep search order.
func Score(cands []Candidate, stages ...Stage) []Candidate {
	for _, stage := range stages {
		cands = stage(cands)
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	return cands
}

// Verify is the final check on a winner: its city or address must name the
// scope, with or without 市, or the scope must contain its city.
func Verify(c Candidate, scope string) bool {
	if scope == "" {
		return true
	}
	base := strings.TrimSuffix(scope, "市")
	if containsAny(scope, c.CityName, c.Address) || (base != "" && containsAny(base, c.CityName, c.Address)) {
		return true
	}
	if city := region.StripCitySuffix(c.CityName); city != "" && strings.Contains(scope, city) {
		return true
	}
	return false
}

// FilterByScope is the whole-result gate run after all keywords.
func FilterByScope(results []types.PoiResult, scope string) []types.PoiResult {
	if scope == "" {
		return results
	}
	base := strings.TrimSuffix(scope, "市")
	out := make([]types.PoiResult, 0, len(results))
	for _, r := range results {
		if containsAny(scope, r.City, r.Address) || (base != "" && containsAny(base, r.City, r.Address)) {
			out = append(out, r)
		}
	}
	return out
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if h != "" && strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
