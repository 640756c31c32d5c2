// README: Splits an itinerary response into title, description and place keywords.
package plan

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Response markers the itinerary prompt asks the model to use.
const (
	markerTitle    = "标题："
	markerBody     = "📍 推荐景点："
	markerKeywords = "关键景点："
	markerDetail   = "【详细规划】"
)

const (
	defaultTitle       = "旅游行程规划"
	defaultDetailTitle = "详细规划"
)

var (
	titlePattern       = regexp.MustCompile(`标题：(.+)`)
	keywordLinePattern = regexp.MustCompile(`关键景点：(.+)`)
	bodyPattern        = regexp.MustCompile(`📍 推荐景点：([\s\S]*?)(?:关键景点：|$)`)
	titleLinePattern   = regexp.MustCompile(`标题：[^\n]*\n?`)
	keywordLineStrip   = regexp.MustCompile(`关键景点：[^\n]*`)
	detailTitlePattern = regexp.MustCompile(`【详细规划】(.+?)：`)
	keywordSeparators  = regexp.MustCompile(`[,，、|｜\n]`)
)

// Landmark suffixes scanned, in order, when the response has no keyword line.
var landmarkSuffixes = []string{"公园", "寺", "山", "湖", "宫", "庙", "博物馆", "广场", "门", "街"}

var landmarkPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(landmarkSuffixes))
	for _, suffix := range landmarkSuffixes {
		out = append(out, regexp.MustCompile(`[^\s，。！？、：；,.!?:;（）()“”"]{2,8}`+regexp.QuoteMeta(suffix)))
	}
	return out
}()

// Parse classifies text as a follow-up answer or a new plan and extracts the draft.
func Parse(text string, conv Conversation) Draft {
	text = strings.TrimSpace(text)
	if isFollowUp(text, conv) {
		return parseFollowUp(text)
	}
	return parseNewPlan(text)
}

// A re-planning request is never a follow-up, whatever the model answered.
func isFollowUp(text string, conv Conversation) bool {
	if IsReplanning(conv.Prompt) {
		return false
	}
	if strings.Contains(text, markerDetail) {
		return true
	}
	if conv.IsFirstTurn() || !conv.HasPreviousPlan() {
		return false
	}
	return !strings.Contains(text, markerTitle) && !strings.Contains(text, markerKeywords)
}

func parseFollowUp(text string) Draft {
	title := defaultDetailTitle
	if m := detailTitlePattern.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		title = strings.TrimSpace(m[1])
	}
	return Draft{
		Title:       CleanMarkdown(title),
		Description: CleanMarkdown(text),
		Keywords:    []string{},
		FollowUp:    true,
	}
}

func parseNewPlan(text string) Draft {
	title := defaultTitle
	if m := titlePattern.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		title = strings.TrimSpace(m[1])
	}

	var body string
	if strings.Contains(text, markerBody) {
		if m := bodyPattern.FindStringSubmatch(text); m != nil {
			body = strings.TrimSpace(m[1])
		}
	} else {
		body = titleLinePattern.ReplaceAllString(text, "")
		body = strings.TrimSpace(keywordLineStrip.ReplaceAllString(body, ""))
	}
	if body == "" {
		body = text
	}

	var keywords []string
	if m := keywordLinePattern.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		keywords = SplitKeywords(m[1])
	} else {
		keywords = ExtractLandmarks(body)
	}

	return Draft{
		Title:       CleanMarkdown(title),
		Description: CleanMarkdown(body),
		Keywords:    keywords,
	}
}

// SplitKeywords splits a keyword line on commas, enumeration commas, pipes
// and newlines. Entries keep their order and are capped at MaxKeywords.
func SplitKeywords(line string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, part := range keywordSeparators.Split(line, -1) {
		kw := strings.Trim(strings.TrimSpace(part), "。.；;*`")
		kw = strings.TrimSpace(kw)
		n := utf8.RuneCountInString(kw)
		if n == 0 || n >= 50 || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

// ExtractLandmarks finds place-like names ending in a landmark suffix.
func ExtractLandmarks(body string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, re := range landmarkPatterns {
		for _, match := range re.FindAllString(body, -1) {
			n := utf8.RuneCountInString(match)
			if n < 2 || n > 8 || seen[match] {
				continue
			}
			seen[match] = true
			out = append(out, match)
			if len(out) == MaxKeywords {
				return out
			}
		}
	}
	return out
}
