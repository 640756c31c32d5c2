// README: Travel planning handler (POST /api/ai), quota-guarded when a uid is sent.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"tripscope/internal/modules/aiusage"
	"tripscope/internal/service"
	"tripscope/internal/types"
)

const (
	maxPromptRunes = 1000
	maxCityRunes   = 50
	maxHistory     = 50

	planRequestTimeout = 2 * time.Minute
	quotaExhausted     = "本月规划次数已用完，请下月再试"
)

// Planner is the pipeline behind the handler.
type Planner interface {
	Plan(ctx context.Context, req service.Request) (service.Response, error)
}

type AIHandler struct {
	planner Planner
}

func NewAIHandler(planner Planner) *AIHandler {
	return &AIHandler{planner: planner}
}

type planReq struct {
	Prompt  string              `json:"prompt"`
	City    string              `json:"city"`
	UID     string              `json:"uid"`
	History []types.ChatMessage `json:"chatHistory"`
}

func (r *planReq) validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.City = strings.TrimSpace(r.City)
	r.UID = strings.TrimSpace(r.UID)

	switch {
	case r.Prompt == "":
		return errors.New("prompt 不能为空")
	case utf8.RuneCountInString(r.Prompt) > maxPromptRunes:
		return fmt.Errorf("prompt 不能超过%d个字符", maxPromptRunes)
	case utf8.RuneCountInString(r.City) > maxCityRunes:
		return fmt.Errorf("city 不能超过%d个字符", maxCityRunes)
	case len(r.History) > maxHistory:
		return fmt.Errorf("chatHistory 不能超过%d条", maxHistory)
	case r.UID != "" && !isValidID(r.UID):
		return errors.New("uid 格式无效")
	}
	for i, m := range r.History {
		if m.Type != types.RoleUser && m.Type != types.RoleAssistant {
			return fmt.Errorf("chatHistory[%d].type 无效", i)
		}
	}
	return nil
}

// Plan handles POST /api/ai.
func (h *AIHandler) Plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, badRequestPrefix+"invalid json")
		return
	}
	if err := req.validate(); err != nil {
		writeError(c, http.StatusBadRequest, badRequestPrefix+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), planRequestTimeout)
	defer cancel()

	resp, err := h.planner.Plan(ctx, service.Request{
		Prompt:  req.Prompt,
		City:    req.City,
		UID:     req.UID,
		History: req.History,
	})
	if err != nil {
		switch {
		case errors.Is(err, aiusage.ErrInsufficientTokens):
			writeJSON(c, http.StatusTooManyRequests, gin.H{"error": quotaExhausted, "pois": []types.PoiResult{}})
		default:
			log.Printf("plan request failed: %v", err)
			writeJSON(c, http.StatusInternalServerError, service.UnavailableResponse())
		}
		return
	}

	writeJSON(c, http.StatusOK, resp)
}
