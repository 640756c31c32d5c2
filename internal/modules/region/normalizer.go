// README: Canonical names for China's first-level administrative divisions.
package region

import (
	"strings"
	"unicode/utf8"
)

type divisionKind int

const (
	kindProvince divisionKind = iota
	kindMunicipality
	kindAutonomous
	kindSAR
)

type division struct {
	short   string
	long    string
	kind    divisionKind
	capital string
}

var divisions = []division{
	{"北京", "北京市", kindMunicipality, "北京"},
	{"天津", "天津市", kindMunicipality, "天津"},
	{"上海", "上海市", kindMunicipality, "上海"},
	{"重庆", "重庆市", kindMunicipality, "重庆"},
	{"河北", "河北省", kindProvince, "石家庄"},
	{"山西", "山西省", kindProvince, "太原"},
	{"辽宁", "辽宁省", kindProvince, "沈阳"},
	{"吉林", "吉林省", kindProvince, "长春"},
	{"黑龙江", "黑龙江省", kindProvince, "哈尔滨"},
	{"江苏", "江苏省", kindProvince, "南京"},
	{"浙江", "浙江省", kindProvince, "杭州"},
	{"安徽", "安徽省", kindProvince, "合肥"},
	{"福建", "福建省", kindProvince, "福州"},
	{"江西", "江西省", kindProvince, "南昌"},
	{"山东", "山东省", kindProvince, "济南"},
	{"河南", "河南省", kindProvince, "郑州"},
	{"湖北", "湖北省", kindProvince, "武汉"},
	{"湖南", "湖南省", kindProvince, "长沙"},
	{"广东", "广东省", kindProvince, "广州"},
	{"海南", "海南省", kindProvince, "海口"},
	{"四川", "四川省", kindProvince, "成都"},
	{"贵州", "贵州省", kindProvince, "贵阳"},
	{"云南", "云南省", kindProvince, "昆明"},
	{"陕西", "陕西省", kindProvince, "西安"},
	{"甘肃", "甘肃省", kindProvince, "兰州"},
	{"青海", "青海省", kindProvince, "西宁"},
	{"台湾", "台湾省", kindProvince, "台北"},
	{"内蒙古", "内蒙古自治区", kindAutonomous, "呼和浩特"},
	{"广西", "广西壮族自治区", kindAutonomous, "南宁"},
	{"西藏", "西藏自治区", kindAutonomous, "拉萨"},
	{"宁夏", "宁夏回族自治区", kindAutonomous, "银川"},
	{"新疆", "新疆维吾尔自治区", kindAutonomous, "乌鲁木齐"},
	{"香港", "香港特别行政区", kindSAR, "香港"},
	{"澳门", "澳门特别行政区", kindSAR, "澳门"},
}

// Alternate spellings seen in user text and model output.
var extraSynonyms = map[string]string{
	"广西自治区":  "广西壮族自治区",
	"宁夏自治区":  "宁夏回族自治区",
	"新疆自治区":  "新疆维吾尔自治区",
	"内蒙古省":   "内蒙古自治区",
	"广西省":    "广西壮族自治区",
	"西藏省":    "西藏自治区",
	"新疆省":    "新疆维吾尔自治区",
	"宁夏省":    "宁夏回族自治区",
	"香港特区":   "香港特别行政区",
	"澳门特区":   "澳门特别行政区",
	"台湾地区":   "台湾省",
}

var provinceSuffixes = []string{"特别行政区", "自治区", "省"}

var (
	provinceSynonyms = buildSynonyms()
	divisionByLong   = buildDivisionIndex()
)

func buildSynonyms() map[string]string {
	m := make(map[string]string, len(divisions)*2+len(extraSynonyms))
	for _, d := range divisions {
		m[d.short] = d.long
		m[d.long] = d.long
	}
	for k, v := range extraSynonyms {
		m[k] = v
	}
	return m
}

func buildDivisionIndex() map[string]division {
	m := make(map[string]division, len(divisions))
	for _, d := range divisions {
		m[d.long] = d
	}
	return m
}

// NormalizeProvince maps any short or long form of a first-level division to
// its canonical long form. Unknown names are treated as ordinary provinces.
func NormalizeProvince(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if long, ok := provinceSynonyms[name]; ok {
		return long
	}
	if hasProvinceSuffix(name) {
		return name
	}
	return name + "省"
}

// IsKnownDivision reports whether name is any recognised form of a first-level division.
func IsKnownDivision(name string) bool {
	_, ok := provinceSynonyms[strings.TrimSpace(name)]
	return ok
}

// IsMunicipality reports whether name is 北京/天津/上海/重庆 in short or long form.
func IsMunicipality(name string) bool {
	d, ok := divisionByLong[provinceSynonyms[strings.TrimSpace(name)]]
	return ok && d.kind == kindMunicipality
}

// IsSAR reports whether name is 香港 or 澳门 in any recognised form.
func IsSAR(name string) bool {
	d, ok := divisionByLong[provinceSynonyms[strings.TrimSpace(name)]]
	return ok && d.kind == kindSAR
}

// ShortProvinceName returns 河南 for 河南省, 广西 for 广西壮族自治区, and name itself otherwise.
func ShortProvinceName(name string) string {
	if d, ok := divisionByLong[NormalizeProvince(name)]; ok {
		return d.short
	}
	for _, suffix := range provinceSuffixes {
		if s := strings.TrimSuffix(name, suffix); s != name && s != "" {
			return s
		}
	}
	return name
}

// Capital returns the seat of government for a province, or "" when unknown.
func Capital(province string) string {
	return divisionByLong[NormalizeProvince(province)].capital
}

// StripCitySuffix removes a trailing 市 while keeping at least two characters.
func StripCitySuffix(name string) string {
	name = strings.TrimSpace(name)
	if s := strings.TrimSuffix(name, "市"); s != name && utf8.RuneCountInString(s) >= 2 {
		return s
	}
	return name
}

func hasProvinceSuffix(name string) bool {
	for _, suffix := range provinceSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func provinceShortNames() []string {
	out := make([]string, 0, len(divisions))
	for _, d := range divisions {
		if d.kind == kindMunicipality {
			continue
		}
		out = append(out, d.short)
	}
	return out
}

func provinceLongForms() []string {
	var out []string
	for name := range provinceSynonyms {
		if hasProvinceSuffix(name) {
			out = append(out, name)
		}
	}
	return out
}

func municipalityShortNames() []string {
	var out []string
	for _, d := range divisions {
		if d.kind == kindMunicipality {
			out = append(out, d.short)
		}
	}
	return out
}
