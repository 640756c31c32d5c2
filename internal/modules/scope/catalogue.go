package scope

import (
	"fmt"

	"tripscope/internal/modules/region"
)

type pick struct {
	city   string
	reason string
}

// Flagship destinations offered when no region is known, best first.
var flagshipCities = []pick{
	{"北京", "故宫、长城与胡同，历史文化首选"},
	{"上海", "外滩夜景与海派风情，城市漫步"},
	{"杭州", "西湖山水与龙井茶园，适合慢游"},
	{"成都", "大熊猫与川味美食，休闲之都"},
	{"西安", "兵马俑与古城墙，十三朝古都"},
	{"厦门", "鼓浪屿与环岛路，海滨文艺"},
	{"桂林", "漓江山水与阳朔田园"},
}

// Recommended cities per province. Provinces without an entry fall back to
// their capital.
var provinceCities = map[string][]pick{
	"河北省":      {{"石家庄", "正定古城与赵州桥"}, {"承德", "避暑山庄与外八庙"}, {"秦皇岛", "山海关与北戴河"}},
	"山西省":      {{"太原", "晋祠与山西博物院"}, {"大同", "云冈石窟与悬空寺"}, {"晋中", "平遥古城与乔家大院"}},
	"辽宁省":      {{"沈阳", "沈阳故宫与张氏帅府"}, {"大连", "滨海路与星海广场"}, {"丹东", "鸭绿江断桥与虎山长城"}},
	"吉林省":      {{"长春", "伪满皇宫与净月潭"}, {"吉林市", "雾凇与松花湖"}, {"白山", "长白山天池"}},
	"黑龙江省":     {{"哈尔滨", "冰雪大世界与中央大街"}, {"牡丹江", "镜泊湖与雪乡"}, {"伊春", "小兴安岭森林"}},
	"江苏省":      {{"南京", "中山陵与秦淮河"}, {"苏州", "拙政园与平江路"}, {"扬州", "瘦西湖与早茶"}, {"无锡", "鼋头渚与灵山"}},
	"浙江省":      {{"杭州", "西湖与灵隐寺"}, {"宁波", "天一阁与东钱湖"}, {"绍兴", "鲁迅故里与东湖"}, {"舟山", "普陀山与海岛风光"}},
	"安徽省":      {{"黄山", "黄山风景区与宏村"}, {"合肥", "三河古镇与包公园"}},
	"福建省":      {{"厦门", "鼓浪屿与曾厝垵"}, {"福州", "三坊七巷与鼓山"}, {"泉州", "开元寺与西街"}},
	"江西省":      {{"南昌", "滕王阁与八一广场"}, {"景德镇", "陶瓷文化"}, {"上饶", "婺源油菜花与三清山"}},
	"山东省":      {{"青岛", "栈桥与八大关"}, {"济南", "趵突泉与大明湖"}, {"泰安", "泰山日出"}, {"烟台", "蓬莱阁与海滨"}},
	"河南省":      {{"郑州", "河南博物院与少林寺"}, {"洛阳", "龙门石窟与白马寺"}, {"开封", "清明上河园与开封府"}},
	"湖北省":      {{"武汉", "黄鹤楼与东湖"}, {"宜昌", "三峡大坝与清江画廊"}, {"恩施", "恩施大峡谷"}},
	"湖南省":      {{"长沙", "岳麓山与橘子洲"}, {"张家界", "武陵源与天门山"}, {"岳阳", "岳阳楼与洞庭湖"}},
	"广东省":      {{"广州", "广州塔与早茶文化"}, {"深圳", "世界之窗与大梅沙"}, {"珠海", "情侣路与长隆海洋王国"}, {"潮州", "牌坊街与潮汕美食"}},
	"海南省":      {{"三亚", "亚龙湾与蜈支洲岛"}, {"海口", "骑楼老街与火山口公园"}},
	"四川省":      {{"成都", "宽窄巷子与大熊猫基地"}, {"乐山", "乐山大佛与峨眉山"}, {"宜宾", "蜀南竹海与李庄古镇"}},
	"贵州省":      {{"贵阳", "甲秀楼与青岩古镇"}, {"安顺", "黄果树瀑布"}, {"遵义", "遵义会议会址与赤水"}},
	"云南省":      {{"昆明", "滇池与石林"}, {"大理", "洱海与大理古城"}, {"丽江", "丽江古城与玉龙雪山"}, {"西双版纳", "热带雨林与傣族风情"}},
	"陕西省":      {{"西安", "兵马俑与大雁塔"}, {"延安", "宝塔山与革命旧址"}, {"汉中", "油菜花海与褒斜栈道"}},
	"甘肃省":      {{"兰州", "黄河风情线与牛肉面"}, {"敦煌", "莫高窟与鸣沙山"}, {"嘉峪关", "嘉峪关城楼"}, {"张掖", "七彩丹霞"}},
	"台湾省":      {{"台北", "台北101与故宫博物院"}, {"高雄", "驳二艺术特区与旗津"}, {"花莲", "太鲁阁峡谷"}},
	"内蒙古自治区":   {{"呼和浩特", "大召寺与草原"}, {"呼伦贝尔", "呼伦贝尔大草原"}, {"鄂尔多斯", "响沙湾与成吉思汗陵"}},
	"广西壮族自治区":  {{"桂林", "漓江与阳朔"}, {"南宁", "青秀山与中山路美食"}, {"北海", "银滩与涠洲岛"}},
	"西藏自治区":    {{"拉萨", "布达拉宫与大昭寺"}, {"林芝", "雅鲁藏布大峡谷"}, {"日喀则", "扎什伦布寺与珠峰"}},
	"新疆维吾尔自治区": {{"乌鲁木齐", "天山天池与大巴扎"}, {"喀什", "喀什古城"}, {"吐鲁番", "火焰山与葡萄沟"}},
}

const (
	generalMessage  = "请告诉我您想去哪个城市旅游，以便为您规划精准的行程。热门目的地推荐："
	provinceMessage = "%s范围较大，建议先选择一个城市，以便为您规划精准的行程："
	promptSuffix    = "三日游"
)

func generalSuggestions() []Suggestion {
	return toSuggestions(flagshipCities)
}

// provinceSuggestions lists cities for a canonical province name.
func provinceSuggestions(province string) []Suggestion {
	if picks, ok := provinceCities[province]; ok {
		return toSuggestions(picks)
	}
	if capital := region.Capital(province); capital != "" {
		return toSuggestions([]pick{{capital, region.ShortProvinceName(province) + "省会"}})
	}
	return generalSuggestions()
}

func provinceClarification(province string) string {
	return fmt.Sprintf(provinceMessage, province)
}

func toSuggestions(picks []pick) []Suggestion {
	out := make([]Suggestion, 0, len(picks))
	for _, p := range picks {
		out = append(out, Suggestion{Label: p.city, Reason: p.reason, Prompt: p.city + promptSuffix})
	}
	return out
}
