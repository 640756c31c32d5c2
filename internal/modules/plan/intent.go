package plan

import (
	"strings"
	"unicode/utf8"
)

var replanningKeywords = []string{
	"重新规划", "重新安排", "换个地方", "改变路线", "重新设计",
	"换条线路", "重新来", "再规划一个", "重新制定", "修改行程",
	"换个行程", "另外规划", "重新推荐", "另外推荐", "换个方案",
}

// IsReplanning reports whether the user's own message asks for a new itinerary.
func IsReplanning(prompt string) bool {
	for _, kw := range replanningKeywords {
		if strings.Contains(prompt, kw) {
			return true
		}
	}
	return false
}

var fallbackCities = []string{"北京", "上海", "广州", "深圳", "杭州", "南京", "苏州", "成都", "西安", "重庆"}

const (
	fallbackPrefixRunes = 10
	maxFallbackKeywords = 5
)

// FallbackKeywords is used when the itinerary call fails: well-known cities
// named in prompt, or the start of the prompt itself.
func FallbackKeywords(prompt string) []string {
	var out []string
	for _, city := range fallbackCities {
		if strings.Contains(prompt, city) {
			out = append(out, city)
		}
	}
	if len(out) == 0 {
		prefix := strings.TrimSpace(prompt)
		if utf8.RuneCountInString(prefix) > fallbackPrefixRunes {
			prefix = string([]rune(prefix)[:fallbackPrefixRunes])
		}
		if prefix != "" {
			out = append(out, prefix)
		}
	}
	if len(out) > maxFallbackKeywords {
		out = out[:maxFallbackKeywords]
	}
	return out
}
