// README: Region match value object produced by the extractor and consumed by scope resolution.
package region

type Level string

const (
	LevelCity     Level = "city"
	LevelProvince Level = "province"
)

// Match is an administrative region recognised in a span of text.
// Province names are always long form (河南省, 广西壮族自治区); city names
// never carry a trailing 市.
type Match struct {
	Raw   string `json:"raw"`
	Name  string `json:"name"`
	Level Level  `json:"level"`
}

func (m Match) IsCity() bool     { return m.Level == LevelCity }
func (m Match) IsProvince() bool { return m.Level == LevelProvince }

func cityMatch(raw, name string) Match {
	return Match{Raw: raw, Name: StripCitySuffix(name), Level: LevelCity}
}

func provinceMatch(raw, name string) Match {
	return Match{Raw: raw, Name: NormalizeProvince(name), Level: LevelProvince}
}

// CityMatch builds a city-level match; a trailing 市 is dropped from name.
func CityMatch(raw, name string) Match { return cityMatch(raw, name) }

// ProvinceMatch builds a province-level match with name in canonical long form.
func ProvinceMatch(raw, name string) Match { return provinceMatch(raw, name) }
