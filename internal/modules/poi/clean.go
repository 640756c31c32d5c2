package poi

import (
	"regexp"
	"strconv"
	"strings"

	"tripscope/internal/types"
)

// Venue status notes that AMap appends to names, e.g. 故宫(暂停开放).
var statusAnnotation = regexp.MustCompile(`[（(](?:暂停开放|已关闭|停业|装修中|永久关闭|临时关闭|营业中|24小时营业|节假日休息|暂停营业|停止营业)[)）]`)

var spaces = regexp.MustCompile(`\s+`)

// CleanName strips venue status annotations and collapses whitespace.
func CleanName(name string) string {
	name = statusAnnotation.ReplaceAllString(name, "")
	return strings.TrimSpace(spaces.ReplaceAllString(name, " "))
}

// ParseLocation parses a "lng,lat" pair.
func ParseLocation(s string) (types.Point, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return types.Point{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.Point{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.Point{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}
