// README: Handler tests for request validation and error mapping.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tripscope/internal/http/handlers"
	"tripscope/internal/modules/aiusage"
	"tripscope/internal/modules/scope"
	"tripscope/internal/service"
	"tripscope/internal/types"
)

// stubPlanner records the last request and returns a canned answer.
type stubPlanner struct {
	resp  service.Response
	err   error
	calls []service.Request
}

func (s *stubPlanner) Plan(_ context.Context, req service.Request) (service.Response, error) {
	s.calls = append(s.calls, req)
	return s.resp, s.err
}

func buildTestRouter(p handlers.Planner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAIHandler(p)
	r.POST("/api/ai", h.Plan)
	rh := handlers.NewRegionHandler(scope.NewResolver(nil))
	r.GET("/api/region", rh.Inspect)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestPlan_Validation(t *testing.T) {
	history := make([]types.ChatMessage, 51)
	for i := range history {
		history[i] = types.ChatMessage{Type: types.RoleUser, Content: "北京"}
	}

	tests := []struct {
		name string
		body interface{}
	}{
		{"invalid json", "{"},
		{"missing prompt", map[string]any{"city": "北京"}},
		{"blank prompt", map[string]any{"prompt": "   "}},
		{"prompt too long", map[string]any{"prompt": strings.Repeat("游", 1001)}},
		{"city too long", map[string]any{"prompt": "三日游", "city": strings.Repeat("城", 51)}},
		{"history too long", map[string]any{"prompt": "三日游", "chatHistory": history}},
		{"bad uid", map[string]any{"prompt": "三日游", "uid": "a b"}},
		{"bad history role", map[string]any{"prompt": "三日游", "chatHistory": []map[string]string{{"type": "system", "content": "x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubPlanner{}
			w := doRequest(buildTestRouter(p), http.MethodPost, "/api/ai", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if msg, _ := decode(t, w)["error"].(string); !strings.HasPrefix(msg, "请求参数错误: ") {
				t.Fatalf("error = %q", msg)
			}
			if len(p.calls) != 0 {
				t.Fatal("planner must not run for invalid input")
			}
		})
	}
}

func TestPlan_PromptAtLimit(t *testing.T) {
	p := &stubPlanner{resp: service.Response{Title: "北京三日游", POIs: []types.PoiResult{}}}
	prompt := "北京" + strings.Repeat("游", 998)
	w := doRequest(buildTestRouter(p), http.MethodPost, "/api/ai", map[string]any{"prompt": prompt})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for a 1000-rune prompt, got %d", w.Code)
	}
}

func TestPlan_Success(t *testing.T) {
	p := &stubPlanner{resp: service.Response{
		Title: "北京一日游",
		POIs:  []types.PoiResult{{Name: "故宫博物院", City: "北京市", Lat: 39.9, Lng: 116.4}},
	}}
	w := doRequest(buildTestRouter(p), http.MethodPost, "/api/ai", map[string]any{
		"prompt":      " 北京一日游 ",
		"city":        "北京",
		"uid":         "user-1",
		"chatHistory": []map[string]string{{"type": "user", "content": "你好"}, {"type": "ai", "content": "你好！"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(p.calls) != 1 {
		t.Fatalf("planner calls = %d", len(p.calls))
	}
	got := p.calls[0]
	if got.Prompt != "北京一日游" || got.City != "北京" || got.UID != "user-1" || len(got.History) != 2 {
		t.Fatalf("request = %+v", got)
	}
	body := decode(t, w)
	pois, ok := body["pois"].([]any)
	if !ok || len(pois) != 1 {
		t.Fatalf("pois = %v", body["pois"])
	}
}

func TestPlan_EmptyPOIsSerialisedAsList(t *testing.T) {
	p := &stubPlanner{resp: service.Response{Title: "第三天", POIs: []types.PoiResult{}}}
	w := doRequest(buildTestRouter(p), http.MethodPost, "/api/ai", map[string]any{"prompt": "第三天怎么玩"})
	if !strings.Contains(w.Body.String(), `"pois":[]`) {
		t.Fatalf("body = %s, want pois:[]", w.Body.String())
	}
}

func TestPlan_QuotaExhausted(t *testing.T) {
	p := &stubPlanner{err: fmt.Errorf("quota: %w", aiusage.ErrInsufficientTokens)}
	w := doRequest(buildTestRouter(p), http.MethodPost, "/api/ai", map[string]any{"prompt": "北京一日游", "uid": "u1"})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestPlan_InternalError(t *testing.T) {
	p := &stubPlanner{err: errors.New("db down: password=secret")}
	w := doRequest(buildTestRouter(p), http.MethodPost, "/api/ai", map[string]any{"prompt": "北京一日游", "uid": "u1"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Fatal("internal error text leaked")
	}
	body := decode(t, w)
	if body["error"] != "服务暂时不可用" || body["title"] != "旅游规划" {
		t.Fatalf("body = %v", body)
	}
}

func TestRegion_Inspect(t *testing.T) {
	r := buildTestRouter(&stubPlanner{})

	w := doRequest(r, http.MethodGet, "/api/region?text="+urlEncode("甘肃三日游"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	res, _ := body["resolution"].(map[string]any)
	if res["state"] != "province" {
		t.Fatalf("resolution = %v", res)
	}

	w = doRequest(r, http.MethodGet, "/api/region?text="+urlEncode("东京三日游"), nil)
	if body := decode(t, w); body["international"] != true || body["marker"] != "东京" {
		t.Fatalf("body = %v", body)
	}

	w = doRequest(r, http.MethodGet, "/api/region", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without text, got %d", w.Code)
	}
}
