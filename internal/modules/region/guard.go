// README: Domestic-scope guard. Requests naming foreign destinations are answered with a fixed notice.
package region

import "strings"

var internationalMarkers = []string{
	// countries
	"日本", "韩国", "泰国", "新加坡", "马来西亚", "印尼", "越南", "菲律宾", "缅甸", "柬埔寨", "老挝",
	"美国", "加拿大", "英国", "法国", "德国", "意大利", "西班牙", "荷兰", "瑞士", "奥地利", "俄罗斯",
	"澳大利亚", "新西兰", "印度", "巴基斯坦", "孟加拉", "斯里兰卡", "尼泊尔", "不丹", "马尔代夫",
	"土耳其", "伊朗", "伊拉克", "沙特", "阿联酋", "埃及", "摩洛哥", "南非", "肯尼亚", "坦桑尼亚",
	"巴西", "阿根廷", "智利", "秘鲁", "墨西哥", "古巴", "牙买加",

	// cities
	"东京", "大阪", "京都", "横滨", "名古屋", "神户", "福冈", "札幌", "仙台", "广岛",
	"首尔", "釜山", "济州岛", "大邱", "仁川",
	"曼谷", "清迈", "普吉岛", "芭提雅", "华欣",
	"吉隆坡", "槟城", "兰卡威",
	"纽约", "洛杉矶", "拉斯维加斯", "旧金山", "芝加哥", "华盛顿", "波士顿", "迈阿密", "西雅图", "奥兰多",
	"伦敦", "巴黎", "罗马", "威尼斯", "佛罗伦萨", "巴塞罗那", "马德里", "阿姆斯特丹", "布鲁塞尔", "米兰",
	"柏林", "慕尼黑", "维也纳", "苏黎世", "莫斯科", "圣彼得堡", "布拉格", "布达佩斯",
	"悉尼", "墨尔本", "奥克兰", "布里斯班", "珀斯", "阿德莱德",
	"孟买", "新德里", "加尔各答", "班加罗尔", "金奈",
	"伊斯坦布尔", "安卡拉", "迪拜", "阿布扎比", "多哈", "科威特",
	"开罗", "亚历山大", "卡萨布兰卡", "马拉喀什",
	"里约热内卢", "圣保罗", "布宜诺斯艾利斯", "利马", "圣地亚哥",

	// foreign regions and states
	"北海道", "本州", "四国", "九州", "冲绳",
	"加州", "纽约州", "佛州", "夏威夷",
	"巴厘岛", "爪哇岛", "苏门答腊",
	"西西里", "撒丁岛", "托斯卡纳",
	"巴伐利亚", "普罗旺斯", "安达卢西亚",
	"昆士兰", "新南威尔士", "维多利亚州",

	// continents and travel-abroad wording
	"欧洲", "北美", "南美", "非洲", "大洋洲", "中东", "东南亚", "南亚", "北欧", "西欧", "东欧",
	"出国", "国外", "海外", "境外", "签证", "护照", "免签", "落地签",
	"游轮", "邮轮", "国际航班", "跨国",
}

// Domestic phrases that happen to contain a foreign marker.
var domesticOverlaps = map[string][]string{
	"京都": {"北京都", "南京都"},
	"南美": {"海南美", "湖南美", "云南美", "河南美", "济南美"},
	"北美": {"东北美", "西北美", "华北美", "河北美", "湖北美"},
	"南亚": {"海南亚", "云南亚", "湖南亚", "河南亚"},
	"中东": {"中东部", "广东中东", "山东中东"},
}

// InternationalMarker returns the first foreign destination marker found in
// text, or "" when the text looks domestic.
func InternationalMarker(text string) string {
	lower := strings.ToLower(text)
	for _, marker := range internationalMarkers {
		if containsMarker(lower, marker) {
			return marker
		}
	}
	return ""
}

// IsInternational reports whether text mentions a destination outside mainland
// China, Hong Kong, Macau and Taiwan.
func IsInternational(text string) bool {
	return InternationalMarker(text) != ""
}

func containsMarker(text, marker string) bool {
	overlaps := domesticOverlaps[marker]
	if len(overlaps) == 0 {
		return strings.Contains(text, marker)
	}
	for _, o := range overlaps {
		text = strings.ReplaceAll(text, o, "")
	}
	return strings.Contains(text, marker)
}
