package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tripscope/internal/types"
)

func TestOpenAIPlanItinerarySendsHistory(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"标题：北京一日游"}}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL+"/", "test-model")
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	reply, err := p.PlanItinerary(context.Background(), PlanRequest{
		Prompt: "第二天怎么玩",
		Scope:  "北京",
		History: []types.ChatMessage{
			{Type: types.RoleUser, Content: "北京两日游"},
			{Type: types.RoleAssistant, Content: "标题：北京两日游"},
		},
	})
	if err != nil {
		t.Fatalf("PlanItinerary: %v", err)
	}
	if reply != "标题：北京一日游" {
		t.Fatalf("reply = %q", reply)
	}

	if got.Model != "test-model" {
		t.Fatalf("model = %q", got.Model)
	}
	roles := make([]string, 0, len(got.Messages))
	for _, m := range got.Messages {
		roles = append(roles, m.Role)
	}
	if strings.Join(roles, ",") != "system,user,assistant,user" {
		t.Fatalf("roles = %v", roles)
	}
	if !strings.Contains(got.Messages[0].Content, "严格限定在 北京 地区内") {
		t.Fatal("system prompt should pin the scope")
	}
	if got.Messages[3].Content != "第二天怎么玩" {
		t.Fatalf("last message = %q", got.Messages[3].Content)
	}
}

func TestOpenAIExtractRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected JSON response format")
		}
		w.Write([]byte("{\"choices\":[{\"message\":{\"content\":\"```json\\n{\\\"name\\\":\\\"杭州\\\",\\\"level\\\":\\\"city\\\"}\\n```\"}}]}"))
	}))
	defer srv.Close()

	p, _ := NewOpenAIProvider("k", srv.URL, "")
	res, err := p.ExtractRegion(context.Background(), "杭州三日游")
	if err != nil {
		t.Fatalf("ExtractRegion: %v", err)
	}
	if res.Name != "杭州" || res.Level != "city" {
		t.Fatalf("result = %+v", res)
	}
}

func TestOpenAIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer srv.Close()

	p, _ := NewOpenAIProvider("k", srv.URL, "")
	_, err := p.PlanItinerary(context.Background(), PlanRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if k := Classify(err); k != KindRateLimit {
		t.Fatalf("Classify = %q, want rate_limit", k)
	}
}

func TestOpenAITimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	p, _ := NewOpenAIProvider("k", srv.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.PlanItinerary(ctx, PlanRequest{Prompt: "x"})
	if k := Classify(err); k != KindTimeout {
		t.Fatalf("Classify(%v) = %q, want timeout", err, k)
	}
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(" ", "", ""); err == nil {
		t.Fatal("expected missing key error")
	}
}
