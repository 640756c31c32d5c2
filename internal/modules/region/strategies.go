// README: Heuristic region strategies, tried in a fixed order by Extract.
package region

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strategy recognises a region in text or reports false.
type Strategy func(text string) (Match, bool)

// heuristicChain is ordered from the most explicit marker to the loosest guess.
var heuristicChain = []Strategy{
	matchMunicipality,
	matchProvinceSuffix,
	matchTravelPhrase,
	matchProvinceShortName,
	matchMacroRegion,
	matchCitySuffix,
	matchIntentToken,
	matchWholeToken,
}

var (
	municipalityNames = municipalityShortNames()
	provinceLongNames = provinceLongForms()
	provinceShorts    = provinceShortNames()
)

// Aliases for multi-province areas people plan trips around.
var macroRegions = map[string]Match{
	"长江三角洲": provinceMatch("长江三角洲", "江苏"),
	"珠江三角洲": provinceMatch("珠江三角洲", "广东"),
	"长三角":   provinceMatch("长三角", "江苏"),
	"珠三角":   provinceMatch("珠三角", "广东"),
	"粤港澳":   provinceMatch("粤港澳", "广东"),
	"大湾区":   provinceMatch("大湾区", "广东"),
	"京津冀":   cityMatch("京津冀", "北京"),
	"环渤海":   cityMatch("环渤海", "北京"),
	"华北":    cityMatch("华北", "北京"),
	"东北":    provinceMatch("东北", "辽宁"),
	"西北":    provinceMatch("西北", "陕西"),
	"西南":    provinceMatch("西南", "四川"),
	"华东":    provinceMatch("华东", "江苏"),
	"华南":    provinceMatch("华南", "广东"),
	"华中":    provinceMatch("华中", "湖北"),
}

var macroRegionNames = func() []string {
	out := make([]string, 0, len(macroRegions))
	for k := range macroRegions {
		out = append(out, k)
	}
	return out
}()

var (
	centeredOnPattern = regexp.MustCompile(`以(\p{Han}{2,4}?)为(?:中心|起点|核心)`)
	travelPhrasePattern = regexp.MustCompile(
		`(?:在|去|到|前往|飞往|游览)(\p{Han}{2,4}?)(?:旅游|旅行|游玩|观光|度假|自驾|自由行|出游|玩|逛|看看|走走|转转)`)
	intentSuffixPattern = regexp.MustCompile(
		`(?:[0-9一二三四五六七八九十两半]+(?:日游|天|日)|景点|美食|攻略|旅游|旅行|游玩|自由行|游记|必去|好玩|有什么|有哪些|特色|小吃|住宿|周边游|之旅|行程)`)
	wholeTokenPattern   = regexp.MustCompile(`^\p{Han}{2,4}$`)
	provinceSpanPattern = regexp.MustCompile(`(特别行政区|自治区|省)`)
)

// 省 followed by these is the verb "save", as in 省钱 or 省心.
var provinceVerbTails = []string{"钱", "心", "时", "力", "事", "下", "去", "了", "得", "油", "电", "着"}

// Stems ending in these are words like 外省, 节省 or 反省, not place names.
var nonPlaceStemEnds = map[rune]bool{
	'本': true, '外': true, '节': true, '反': true, '全': true, '各': true,
	'邻': true, '跨': true, '出': true, '分': true, '该': true, '此': true,
}

// Leading verbs dropped from a bare input such as 去成都 or 想去大理.
var locativePrefixes = []string{"我", "想", "要", "打算", "准备", "前往", "飞往", "去", "到", "在"}

// Trailing words that are never part of a place name.
var intentSuffixes = []string{"周边游", "自由行", "旅游", "旅行", "游玩", "景点", "美食", "攻略", "之旅", "行程", "一日游", "二日游", "三日游"}

// Leading filler stripped from a back-scanned token.
var fillerPrefixes = []string{"推荐", "介绍", "规划", "安排", "计划", "打算", "准备", "一下", "关于", "有关", "出发", "一趟", "一次"}

// Characters that end a backwards scan for a place token.
var scanStops = map[rune]bool{
	'我': true, '想': true, '要': true, '去': true, '到': true, '在': true,
	'往': true, '玩': true, '游': true, '的': true, '了': true, '与': true,
	'及': true, '从': true, '至': true, '看': true, '逛': true, '请': true,
	'帮': true, '给': true, '个': true, '些': true, '次': true, '们': true,
	'第': true, '这': true, '那': true, '每': true, '再': true,
}

// Deictic words that look like a place token but never are one.
var placeStopwords = map[string]bool{
	"这里": true, "那里": true, "哪里": true, "哪儿": true, "这边": true, "那边": true,
	"国内": true, "周边": true, "附近": true, "当地": true, "本地": true, "外地": true,
	"哪个": true, "什么": true, "一下": true, "城市": true,
	"周末": true, "假期": true, "暑假": true, "寒假": true, "五一": true, "十一": true,
	"国庆": true, "春节": true, "元旦": true, "端午": true, "中秋": true, "清明": true,
}

func matchMunicipality(text string) (Match, bool) {
	name, idx, ok := earliest(text, municipalityNames)
	if !ok {
		return Match{}, false
	}
	raw := name
	if strings.HasPrefix(text[idx+len(name):], "市") {
		raw = name + "市"
	}
	return cityMatch(raw, name), true
}

func matchProvinceSuffix(text string) (Match, bool) {
	if name, _, ok := earliest(text, provinceLongNames); ok {
		return provinceMatch(name, name), true
	}
	return matchUnknownProvince(text)
}

// matchUnknownProvince accepts any "X省" style span whose stem is not in the
// division table; the name is canonicalised like a known one.
func matchUnknownProvince(text string) (Match, bool) {
	for _, loc := range provinceSpanPattern.FindAllStringSubmatchIndex(text, -1) {
		suffix := text[loc[2]:loc[3]]
		rest := text[loc[1]:]
		if suffix == "省" && hasAnyPrefix(rest, provinceVerbTails) {
			continue
		}
		stem := tokenBefore(text, loc[0])
		n := utf8.RuneCountInString(stem)
		if n < 2 || n > 6 || placeStopwords[stem] || nonPlaceStemEnds[lastRune(stem)] {
			continue
		}
		return provinceMatch(stem+suffix, stem+suffix), true
	}
	return Match{}, false
}

func matchTravelPhrase(text string) (Match, bool) {
	for _, re := range []*regexp.Regexp{centeredOnPattern, travelPhrasePattern} {
		for _, sub := range re.FindAllStringSubmatch(text, -1) {
			if m, ok := refineToken(sub[1]); ok {
				return m, true
			}
		}
	}
	return Match{}, false
}

func matchProvinceShortName(text string) (Match, bool) {
	best, bestIdx := "", -1
	for _, short := range provinceShorts {
		idx := indexNotFollowedBy(text, short, "市")
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && len(short) > len(best)) {
			best, bestIdx = short, idx
		}
	}
	if bestIdx < 0 {
		return Match{}, false
	}
	return provinceMatch(best, best), true
}

func matchMacroRegion(text string) (Match, bool) {
	name, _, ok := earliest(text, macroRegionNames)
	if !ok {
		return Match{}, false
	}
	return macroRegions[name], true
}

func matchCitySuffix(text string) (Match, bool) {
	offset := 0
	for {
		idx := strings.Index(text[offset:], "市")
		if idx < 0 {
			return Match{}, false
		}
		end := offset + idx
		if tok := tokenBefore(text, end); tok != "" {
			if m, ok := refineToken(tok + "市"); ok && m.IsCity() {
				return m, true
			}
		}
		offset = end + len("市")
	}
}

func matchIntentToken(text string) (Match, bool) {
	for _, loc := range intentSuffixPattern.FindAllStringIndex(text, -1) {
		tok := tokenBefore(text, loc[0])
		if tok == "" {
			continue
		}
		if m, ok := refineToken(tok); ok {
			return m, true
		}
	}
	return Match{}, false
}

// matchWholeToken treats a bare two-to-four character input as a city name.
// Leading verbs are dropped first, so 去成都 yields 成都.
func matchWholeToken(text string) (Match, bool) {
	tok := strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	tok = trimLocativePrefix(tok)
	if !wholeTokenPattern.MatchString(tok) || placeStopwords[tok] {
		return Match{}, false
	}
	return cityMatch(tok, tok), true
}

// refineToken turns a candidate place token into a Match. Province names map
// to province level; a province prefix in front of a city is dropped.
func refineToken(tok string) (Match, bool) {
	// 苏州市区 and 苏州市内 name the city 苏州市.
	if i := strings.Index(tok, "市"); i > 0 && i+len("市") < len(tok) && utf8.RuneCountInString(tok[:i]) >= 2 {
		tok = tok[:i+len("市")]
	}
	raw := tok
	tok = trimIntentSuffix(StripCitySuffix(tok))
	n := utf8.RuneCountInString(tok)
	if n < 2 || n > 8 || placeStopwords[tok] {
		return Match{}, false
	}
	if IsMunicipality(tok) {
		return cityMatch(raw, tok), true
	}
	// 吉林市 is a prefecture city inside 吉林省.
	if strings.HasSuffix(raw, "市") && IsKnownDivision(tok) && !hasProvinceSuffix(tok) {
		return cityMatch(raw, tok), true
	}
	if IsKnownDivision(tok) {
		return provinceMatch(raw, tok), true
	}
	for _, short := range provinceShorts {
		for _, prefix := range []string{NormalizeProvince(short), short} {
			rest := strings.TrimPrefix(tok, prefix)
			if rest != tok && utf8.RuneCountInString(rest) >= 2 {
				return refineToken(rest)
			}
		}
	}
	if n > 4 {
		return Match{}, false
	}
	return cityMatch(raw, tok), true
}

func trimLocativePrefix(tok string) string {
	for changed := true; changed; {
		changed = false
		for _, prefix := range locativePrefixes {
			if rest := strings.TrimPrefix(tok, prefix); rest != tok && utf8.RuneCountInString(rest) >= 2 {
				tok, changed = rest, true
			}
		}
	}
	return tok
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func trimIntentSuffix(tok string) string {
	for _, suffix := range intentSuffixes {
		if s := strings.TrimSuffix(tok, suffix); s != tok && utf8.RuneCountInString(s) >= 2 {
			return s
		}
	}
	return tok
}

// tokenBefore scans backwards from byte offset end over Han characters until
// a stop character, then drops filler prefixes.
func tokenBefore(text string, end int) string {
	runes := []rune(text[:end])
	i := len(runes)
	for i > 0 && len(runes)-i < 8 {
		r := runes[i-1]
		if !unicode.Is(unicode.Han, r) || scanStops[r] {
			break
		}
		i--
	}
	tok := string(runes[i:])
	for changed := true; changed; {
		changed = false
		for _, prefix := range fillerPrefixes {
			if rest := strings.TrimPrefix(tok, prefix); rest != tok && rest != "" {
				tok, changed = rest, true
			}
		}
	}
	return tok
}

// earliest returns the name occurring first in text; ties go to the longer name.
func earliest(text string, names []string) (string, int, bool) {
	best, bestIdx := "", -1
	for _, name := range names {
		idx := strings.Index(text, name)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && len(name) > len(best)) {
			best, bestIdx = name, idx
		}
	}
	return best, bestIdx, bestIdx >= 0
}

// indexNotFollowedBy returns the first index of name in text that is not
// immediately followed by suffix, or -1.
func indexNotFollowedBy(text, name, suffix string) int {
	offset := 0
	for {
		idx := strings.Index(text[offset:], name)
		if idx < 0 {
			return -1
		}
		pos := offset + idx
		if !strings.HasPrefix(text[pos+len(name):], suffix) {
			return pos
		}
		offset = pos + len(name)
	}
}
