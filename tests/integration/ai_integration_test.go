package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type planResponse struct {
	Title            string `json:"title"`
	Error            string `json:"error"`
	RequiresLocation bool   `json:"requiresLocation"`
	Suggestions      []struct {
		Label  string `json:"label"`
		Prompt string `json:"prompt"`
	} `json:"suggestions"`
	POIs []struct {
		Name string `json:"name"`
		City string `json:"city"`
	} `json:"pois"`
}

func TestPlanEndpointScopeAndGuard(t *testing.T) {
	baseURL := apiBaseURL(t)
	client := &http.Client{Timeout: 90 * time.Second}
	waitForAPIReady(t, client, baseURL)

	status, body := callPlan(t, client, baseURL, map[string]any{"prompt": "甘肃三日游"})
	if status != http.StatusOK {
		t.Fatalf("province: expected 200, got %d, body=%s", status, body)
	}
	var province planResponse
	mustUnmarshal(t, body, &province)
	if !province.RequiresLocation || len(province.Suggestions) == 0 || len(province.POIs) != 0 {
		t.Fatalf("province: expected city suggestions, got %s", body)
	}
	t.Logf("[TEST LOG] province suggestions: %+v", province.Suggestions)

	status, body = callPlan(t, client, baseURL, map[string]any{"prompt": "东京三日游"})
	if status != http.StatusOK {
		t.Fatalf("international: expected 200, got %d, body=%s", status, body)
	}
	var foreign planResponse
	mustUnmarshal(t, body, &foreign)
	if foreign.Title != "服务范围提醒" || len(foreign.POIs) != 0 {
		t.Fatalf("international: expected out-of-scope reminder, got %s", body)
	}

	status, _ = callPlan(t, client, baseURL, map[string]any{"prompt": strings.Repeat("游", 1001)})
	if status != http.StatusBadRequest {
		t.Fatalf("long prompt: expected 400, got %d", status)
	}
}

func TestPlanEndpointQuotaGuard(t *testing.T) {
	baseURL := apiBaseURL(t)
	dsn := strings.TrimSpace(os.Getenv("TRIP_TEST_DSN"))
	if dsn == "" {
		t.Skip("TRIP_TEST_DSN not set; skipping quota integration test")
	}

	client := &http.Client{Timeout: 90 * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect %s: %v", redactedDSN(dsn), err)
	}
	t.Cleanup(func() { db.Close() })

	uid := fmt.Sprintf("u%d", time.Now().UnixNano())
	period := time.Now().Format("2006-01")

	if _, err := db.Exec(ctx, `
		INSERT INTO plan_quota (uid, requests_remaining, period)
		VALUES ($1, 1, $2)
		ON CONFLICT (uid) DO UPDATE SET
			requests_remaining = EXCLUDED.requests_remaining,
			period = EXCLUDED.period
	`, uid, period); err != nil {
		t.Fatalf("seed plan_quota: %v", err)
	}
	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		_, _ = db.Exec(cleanupCtx, "DELETE FROM plan_quota WHERE uid = $1", uid)
	})

	waitForAPIReady(t, client, baseURL)

	status1, body1 := callPlan(t, client, baseURL, map[string]any{"prompt": "北京故宫一日游", "uid": uid})
	if status1 != http.StatusOK {
		t.Fatalf("first call: expected %d, got %d, body=%s", http.StatusOK, status1, body1)
	}
	var plan planResponse
	mustUnmarshal(t, body1, &plan)
	for _, p := range plan.POIs {
		if !strings.Contains(p.City, "北京") {
			t.Fatalf("poi %q in %q is outside 北京", p.Name, p.City)
		}
	}
	t.Logf("[TEST LOG] plan %q with %d pois", plan.Title, len(plan.POIs))

	status2, body2 := callPlan(t, client, baseURL, map[string]any{"prompt": "北京故宫一日游", "uid": uid})
	if status2 != http.StatusTooManyRequests {
		t.Fatalf("second call: expected %d, got %d, body=%s", http.StatusTooManyRequests, status2, body2)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT requests_remaining FROM plan_quota WHERE uid = $1", uid).Scan(&remaining); err != nil {
		t.Fatalf("query remaining: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected requests_remaining=0 after 2 calls, got %d", remaining)
	}
}

func apiBaseURL(t *testing.T) string {
	t.Helper()
	loadDotEnv()
	base := strings.TrimSpace(os.Getenv("TRIP_API_BASE_URL"))
	if base == "" {
		t.Skip("TRIP_API_BASE_URL not set; skipping integration tests")
	}
	return strings.TrimRight(base, "/")
}

func callPlan(t *testing.T, client *http.Client, baseURL string, body map[string]any) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/ai", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("call /api/ai: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, raw
}

func mustUnmarshal(t *testing.T, raw []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal response: %v, raw=%s", err, raw)
	}
}

func redactedDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at == -1 || scheme == -1 || at <= scheme+3 {
		return dsn
	}
	return dsn[:scheme+3] + "***:***" + dsn[at:]
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/health did not return 200 in time", baseURL)
}

// loadDotEnv loads the nearest .env above the working directory. Variables
// already set win.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
