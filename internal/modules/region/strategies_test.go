package region

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  Match
		found bool
	}{
		{"municipality", "北京故宫一日游", Match{"北京", "北京", LevelCity}, true},
		{"municipality long form", "上海市外滩夜景", Match{"上海市", "上海", LevelCity}, true},
		{"municipality beats province", "从河北省去北京玩", Match{"北京", "北京", LevelCity}, true},
		{"province long form", "我想去浙江省看看", Match{"浙江省", "浙江省", LevelProvince}, true},
		{"autonomous region", "广西壮族自治区自驾", Match{"广西壮族自治区", "广西壮族自治区", LevelProvince}, true},
		{"SAR long form", "香港特别行政区购物", Match{"香港特别行政区", "香港特别行政区", LevelProvince}, true},
		{"centered on", "以杭州为中心玩三天", Match{"杭州", "杭州", LevelCity}, true},
		{"travel phrase", "想去苏州旅游", Match{"苏州", "苏州", LevelCity}, true},
		{"travel phrase with prefecture", "打算去吉林市玩", Match{"吉林市", "吉林", LevelCity}, true},
		{"province short name", "甘肃三日游", Match{"甘肃", "甘肃省", LevelProvince}, true},
		{"province short name in sentence", "五一想在云南待一周", Match{"云南", "云南省", LevelProvince}, true},
		{"macro region", "长三角周末去哪", Match{"长三角", "江苏省", LevelProvince}, true},
		{"macro region city", "京津冀自驾路线", Match{"京津冀", "北京", LevelCity}, true},
		{"city suffix", "推荐洛阳市的景点", Match{"洛阳市", "洛阳", LevelCity}, true},
		{"city suffix after province", "河南省洛阳市", Match{"河南省", "河南省", LevelProvince}, true},
		{"intent suffix", "杭州三日游", Match{"杭州", "杭州", LevelCity}, true},
		{"intent suffix food", "成都美食推荐", Match{"成都", "成都", LevelCity}, true},
		{"intent suffix attractions", "厦门有什么好玩的", Match{"厦门", "厦门", LevelCity}, true},
		{"bare token", "桂林", Match{"桂林", "桂林", LevelCity}, true},
		{"bare token with punctuation", " 大理！", Match{"大理", "大理", LevelCity}, true},
		{"bare token after verb", "去成都", Match{"成都", "成都", LevelCity}, true},
		{"bare token after wish and verb", "想去大理", Match{"大理", "大理", LevelCity}, true},
		{"bare deictic after verb", "去那里", Match{}, false},
		{"city district wording", "在苏州市区逛逛", Match{"苏州市", "苏州", LevelCity}, true},
		{"wrong autonomous region suffix", "广西省桂林自驾", Match{"广西省", "广西壮族自治区", LevelProvince}, true},
		{"unknown province", "江南省旅游", Match{"江南省", "江南省", LevelProvince}, true},
		{"save as a verb", "比较省心的路线", Match{}, false},
		{"no region", "帮我规划一个周末的安排吧", Match{}, false},
		{"empty", "   ", Match{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if ok != tt.found {
				t.Fatalf("Extract(%q) found = %v, want %v (got %+v)", tt.text, ok, tt.found, got)
			}
			if got != tt.want {
				t.Fatalf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractProvinceSuffixAlwaysProvince(t *testing.T) {
	for _, d := range divisions {
		if d.kind == kindMunicipality {
			continue
		}
		text := "这个假期打算在" + d.long + "到处走走"
		got, ok := Extract(text)
		if !ok || !got.IsProvince() || got.Name != d.long {
			t.Errorf("Extract(%q) = %+v, %v; want province %q", text, got, ok, d.long)
		}
	}

	for _, text := range []string{"江南省旅游", "我想去江南省看看", "这个假期打算在江南省到处走走"} {
		got, ok := Extract(text)
		if !ok || !got.IsProvince() || got.Name != "江南省" {
			t.Errorf("Extract(%q) = %+v, %v; want province 江南省", text, got, ok)
		}
	}
	for _, text := range []string{"外省游客推荐", "为了能节省预算"} {
		if got, ok := Extract(text); ok && got.IsProvince() {
			t.Errorf("Extract(%q) = %+v; want no province", text, got)
		}
	}
}

func TestExtractMunicipalityAlwaysCity(t *testing.T) {
	for _, name := range []string{"北京", "天津", "上海", "重庆"} {
		for _, text := range []string{name, name + "市", "浙江省和" + name + "五日游", "去" + name + "旅游"} {
			got, ok := Extract(text)
			if !ok || !got.IsCity() || got.Name != name {
				t.Errorf("Extract(%q) = %+v, %v; want city %q", text, got, ok, name)
			}
		}
	}
}

func TestRefineTokenDropsProvincePrefix(t *testing.T) {
	got, ok := refineToken("河南郑州")
	if !ok || got.Name != "郑州" || !got.IsCity() {
		t.Fatalf("refineToken = %+v, %v; want city 郑州", got, ok)
	}
	if _, ok := refineToken("附近"); ok {
		t.Fatal("deictic words must not become places")
	}
}

func TestRefineTokenCutsAfterCitySuffix(t *testing.T) {
	for _, tok := range []string{"苏州市区", "苏州市内"} {
		got, ok := refineToken(tok)
		if !ok || got.Name != "苏州" || got.Raw != "苏州市" {
			t.Errorf("refineToken(%q) = %+v, %v; want city 苏州", tok, got, ok)
		}
	}
}

func TestTokenBefore(t *testing.T) {
	text := "帮我推荐西安"
	if got := tokenBefore(text, len(text)); got != "西安" {
		t.Fatalf("tokenBefore = %q, want 西安", got)
	}
	text = "hello西安"
	if got := tokenBefore(text, len(text)); got != "西安" {
		t.Fatalf("tokenBefore = %q, want 西安", got)
	}
}
