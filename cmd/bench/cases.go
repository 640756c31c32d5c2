// README: Bench cases: environment checks, the end-to-end planning scenarios and a region lookup load test.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

// planBody is the subset of the /api/ai response the checks look at.
type planBody struct {
	Title            string `json:"title"`
	Error            string `json:"error"`
	RequiresLocation bool   `json:"requiresLocation"`
	Suggestions      []struct {
		Label string `json:"label"`
	} `json:"suggestions"`
	POIs []struct {
		Name string  `json:"name"`
		City string  `json:"city"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	} `json:"pois"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "quota DB reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "search cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply migration SQL",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from the migration file exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "API: health",
			Focus: "server reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				resp, err := r.httpc.Get(base + "/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},

		// Validation
		planCase("Validation: empty prompt -> 400", base, map[string]any{"prompt": ""}, http.StatusBadRequest, nil),
		planCase("Validation: prompt over 1000 chars -> 400", base, map[string]any{"prompt": strings.Repeat("游", 1001)}, http.StatusBadRequest, nil),

		// Scenarios
		planCase("Scope: province asks for a city", base, map[string]any{"prompt": "甘肃三日游"}, http.StatusOK,
			func(b planBody) string {
				if !b.RequiresLocation || len(b.Suggestions) == 0 || len(b.POIs) != 0 {
					return "expected city suggestions and no pois"
				}
				return ""
			}),
		planCase("Scope: no destination asks for one", base, map[string]any{"prompt": "帮我安排一个周末行程吧"}, http.StatusOK,
			func(b planBody) string {
				if !b.RequiresLocation || len(b.Suggestions) == 0 {
					return "expected general suggestions"
				}
				return ""
			}),
		planCase("Guard: international destination", base, map[string]any{"prompt": "东京三日游"}, http.StatusOK,
			func(b planBody) string {
				if b.Title != "服务范围提醒" || len(b.POIs) != 0 {
					return "expected out-of-scope reminder"
				}
				return ""
			}),
		planCase("Plan: city itinerary with places", base, map[string]any{"prompt": "北京故宫一日游"}, http.StatusOK,
			func(b planBody) string {
				if len(b.POIs) == 0 {
					return "no pois (error=" + b.Error + ")"
				}
				for _, p := range b.POIs {
					if !strings.Contains(p.City, "北京") {
						return "poi outside scope: " + p.Name + " in " + p.City
					}
				}
				return ""
			}),
		planCase("Plan: follow-up keeps the map", base, map[string]any{
			"prompt": "第三天怎么玩",
			"chatHistory": []map[string]any{
				{"type": "user", "content": "北京三日游"},
				{"type": "ai", "content": "北京三日游", "data": map[string]any{
					"title": "北京三日游",
					"pois":  []map[string]any{{"name": "故宫博物院", "city": "北京市", "lat": 39.917839, "lng": 116.397029}},
				}},
			},
		}, http.StatusOK,
			func(b planBody) string {
				if b.RequiresLocation {
					return "scope should come from history"
				}
				return ""
			}),

		// Performance
		{
			Name:  "Perf: region lookup throughput",
			Focus: "heuristic extraction under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/region?text="+url.QueryEscape("去杭州玩三天"))
			},
		},
	}
}

// planCase posts body to /api/ai and checks the status and, when check is
// set, the decoded body. check returns "" on success.
func planCase(name, base string, body any, want int, check func(planBody) string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			b, _ := json.Marshal(body)
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/ai", strings.NewReader(string(b)))
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			raw, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			if resp.StatusCode != want {
				return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			if check == nil {
				return Result{Status: "PASS", Latency: latency}
			}
			var pb planBody
			if err := json.Unmarshal(raw, &pb); err != nil {
				return Result{Status: "FAIL", Latency: latency, Note: err.Error()}
			}
			if msg := check(pb); msg != "" {
				return Result{Status: "FAIL", Latency: latency, Note: msg}
			}
			return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("pois=%d", len(pb.POIs))}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	cleaned := strings.Join(filtered, "\n")
	parts := strings.Split(cleaned, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
