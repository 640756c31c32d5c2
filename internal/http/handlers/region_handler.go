// README: Region inspection handler (GET /api/region) for debugging scope decisions.
package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"tripscope/internal/modules/region"
	"tripscope/internal/modules/scope"
)

type RegionHandler struct {
	resolver *scope.Resolver
}

func NewRegionHandler(resolver *scope.Resolver) *RegionHandler {
	return &RegionHandler{resolver: resolver}
}

type regionResp struct {
	Text          string           `json:"text"`
	International bool             `json:"international"`
	Marker        string           `json:"marker,omitempty"`
	Heuristic     *region.Match    `json:"heuristic,omitempty"`
	Resolution    scope.Resolution `json:"resolution"`
}

// Inspect handles GET /api/region?text=&city=.
func (h *RegionHandler) Inspect(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	city := strings.TrimSpace(c.Query("city"))
	if text == "" {
		writeError(c, http.StatusBadRequest, badRequestPrefix+"text 不能为空")
		return
	}
	if utf8.RuneCountInString(text) > maxPromptRunes || utf8.RuneCountInString(city) > maxCityRunes {
		writeError(c, http.StatusBadRequest, badRequestPrefix+"参数过长")
		return
	}

	resp := regionResp{Text: text, Marker: region.InternationalMarker(text)}
	resp.International = resp.Marker != ""
	if m, ok := region.Extract(text); ok {
		resp.Heuristic = &m
	}
	resp.Resolution = h.resolver.Resolve(c.Request.Context(), city, text, nil)
	writeJSON(c, http.StatusOK, resp)
}
