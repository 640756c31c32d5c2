// README: TripPlanner runs guard, scope, itinerary and place search for one chat turn.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tripscope/internal/ai"
	"tripscope/internal/modules/plan"
	"tripscope/internal/modules/poi"
	"tripscope/internal/modules/region"
	"tripscope/internal/modules/scope"
	"tripscope/internal/types"
)

// DefaultPlanTimeout bounds the itinerary generation call.
const DefaultPlanTimeout = 30 * time.Second

const (
	outOfScopeError       = "抱歉，我们的旅游规划服务目前仅支持中国大陆地区。"
	outOfScopeTitle       = "服务范围提醒"
	outOfScopeDescription = "我们专注于为您提供国内旅游的精准规划服务，包括景点推荐、路线规划、美食指南等。如需国内旅游规划，请重新输入您的需求。"
	fallbackPlanTitle     = "AI旅游规划"
	unavailableError      = "服务暂时不可用"
	unavailableTitle      = "旅游规划"
	unavailableDesc       = "抱歉，服务暂时不可用，请稍后重试。"
	generalTitle          = "请选择目的地"
	provinceTitle         = "请选择%s的城市"
)

// Itinerary is the part of the language model the planner needs.
type Itinerary interface {
	PlanItinerary(ctx context.Context, req ai.PlanRequest) (string, error)
}

// PlaceResolver turns keywords into validated places.
type PlaceResolver interface {
	ResolveAll(ctx context.Context, keywords []string, scope string) []types.PoiResult
}

// QuotaGuard charges one planning request to a client.
type QuotaGuard interface {
	UseToken(ctx context.Context, uid string) error
}

// Request is one planning request from the chat front end.
type Request struct {
	Prompt  string
	City    string
	UID     string
	History []types.ChatMessage
}

// Response is what the front end renders. POIs is always a list, empty when
// no new search was warranted.
type Response struct {
	Title            string             `json:"title,omitempty"`
	Description      string             `json:"description,omitempty"`
	POIs             []types.PoiResult  `json:"pois"`
	Error            string             `json:"error,omitempty"`
	Scope            string             `json:"scope,omitempty"`
	RequiresLocation bool               `json:"requiresLocation,omitempty"`
	Suggestions      []scope.Suggestion `json:"suggestions,omitempty"`
}

// TripPlanner orchestrates scope resolution, itinerary generation and place search.
type TripPlanner struct {
	itinerary   Itinerary
	resolver    *scope.Resolver
	places      PlaceResolver
	quota       QuotaGuard
	planTimeout time.Duration
}

// NewTripPlanner creates a TripPlanner. quota may be nil to disable charging.
func NewTripPlanner(itinerary Itinerary, resolver *scope.Resolver, places PlaceResolver, quota QuotaGuard, planTimeout time.Duration) *TripPlanner {
	if planTimeout <= 0 {
		planTimeout = DefaultPlanTimeout
	}
	return &TripPlanner{
		itinerary:   itinerary,
		resolver:    resolver,
		places:      places,
		quota:       quota,
		planTimeout: planTimeout,
	}
}

// Plan runs the full pipeline. Model failures degrade the answer and are
// reported in Response.Error; the returned error is reserved for quota
// rejections and similar request-level failures.
func (p *TripPlanner) Plan(ctx context.Context, req Request) (Response, error) {
	prompt := strings.TrimSpace(req.Prompt)

	// 1. Domestic guard
	if marker := region.InternationalMarker(prompt); marker != "" {
		log.Printf("out-of-scope request (marker %q)", marker)
		return Response{
			Error:       outOfScopeError,
			Title:       outOfScopeTitle,
			Description: outOfScopeDescription,
			POIs:        []types.PoiResult{},
		}, nil
	}

	// 2. Scope
	res := p.resolver.Resolve(ctx, req.City, prompt, req.History)
	if res.NeedsClarification() {
		return clarification(res), nil
	}
	log.Printf("scope resolved: %s (search %q, %d candidates)", res.DisplayName, res.SearchCity, len(res.Candidates))

	// 3. Quota
	if p.quota != nil && req.UID != "" {
		if err := p.quota.UseToken(ctx, req.UID); err != nil {
			return Response{}, fmt.Errorf("quota: %w", err)
		}
	}

	// 4. Itinerary
	draft, aiErr := p.draft(ctx, prompt, res.SearchCity, req.History)

	resp := Response{
		Title:       draft.Title,
		Description: draft.Description,
		POIs:        []types.PoiResult{},
		Error:       aiErr,
		Scope:       res.DisplayName,
	}
	if len(draft.Keywords) == 0 {
		return resp, nil
	}

	// 5. Places
	resp.POIs = p.places.ResolveAll(ctx, draft.Keywords, res.SearchCity)
	log.Printf("plan %q: %d/%d keywords placed", draft.Title, len(resp.POIs), len(draft.Keywords))
	return resp, nil
}

// draft calls the model and parses its answer. On failure it falls back to
// basic keywords and returns the user-facing error line.
func (p *TripPlanner) draft(ctx context.Context, prompt, city string, history []types.ChatMessage) (plan.Draft, string) {
	if p.itinerary == nil {
		return fallbackDraft(prompt), ai.UserMessage(ai.KindGeneric)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.planTimeout)
	defer cancel()

	text, err := p.itinerary.PlanItinerary(callCtx, ai.PlanRequest{Prompt: prompt, Scope: city, History: history})
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty itinerary response")
	}
	if err != nil {
		kind := ai.Classify(err)
		log.Printf("itinerary generation failed (%s): %v", kind, err)
		return fallbackDraft(prompt), ai.UserMessage(kind)
	}

	return plan.Parse(text, plan.Conversation{Prompt: prompt, History: history}), ""
}

func fallbackDraft(prompt string) plan.Draft {
	return plan.Draft{Title: fallbackPlanTitle, Keywords: plan.FallbackKeywords(prompt)}
}

func clarification(res scope.Resolution) Response {
	title := generalTitle
	if res.State == scope.StateProvince {
		title = fmt.Sprintf(provinceTitle, res.Scope.Name)
	}
	return Response{
		Title:            title,
		Description:      res.Message,
		POIs:             []types.PoiResult{},
		Scope:            res.DisplayName,
		RequiresLocation: true,
		Suggestions:      res.Suggestions,
	}
}

// UnavailableResponse is the body sent when a request fails outright.
func UnavailableResponse() Response {
	return Response{
		Error:       unavailableError,
		Title:       unavailableTitle,
		Description: unavailableDesc,
		POIs:        []types.PoiResult{},
	}
}

var _ PlaceResolver = (*poi.Service)(nil)
