// README: Smoke cases: reference fares through the HTTP API plus optional DB/Redis and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	dbErr error
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

// connect opens the optional backends. A DSN that cannot be parsed is kept as
// dbErr so the DB cases fail instead of skipping.
func (r *Runner) connect(ctx context.Context) {
	if r.cfg.DSN != "" {
		r.db, r.dbErr = pgxpool.New(ctx, r.cfg.DSN)
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}
}

// dbUnavailable reports the result for a DB case that cannot run.
func (r *Runner) dbUnavailable() (Result, bool) {
	if r.dbErr != nil {
		return Result{Status: statusFail, Note: "db open: " + r.dbErr.Error()}, true
	}
	if r.db == nil {
		return Result{Status: statusSkip, Note: "db not configured"}, true
	}
	return Result{}, false
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	r.connect(ctx)

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
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

// The fare cases assume the API runs with the reference default schedule
// (0.80/min, 1.20/km, 1.20x floor).
func (r *Runner) cases() []TestCase {
	routeA := map[string]any{"time_minutes": 45.0, "distance_km": 60.0, "toll_fee": 8.13, "surge_multiplier": 1.70, "is_peak_hour": true}
	routeB := map[string]any{"time_minutes": 57.0, "distance_km": 65.0, "toll_fee": 0.0, "surge_multiplier": 0.75, "is_peak_hour": true}

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if res, unavailable := r.dbUnavailable(); unavailable {
					return res
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if res, unavailable := r.dbUnavailable(); unavailable {
					return res
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					if err := r.db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, t).Scan(&exists); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.do(ctx, http.MethodGet, "/health", nil)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: statusPass, Latency: time.Since(start)}
			},
		},

		quoteCase("Quote: toll route, floor off", withFloor(routeA, false), 197.42, false),
		quoteCase("Quote: toll-free route, floor off", withFloor(routeB, false), 92.70, false),
		quoteCase("Quote: toll-free route, floor on", withFloor(routeB, true), 148.32, true),
		quoteCase("Quote: surge equal to floor is not raised", map[string]any{
			"time_minutes": 57.0, "distance_km": 65.0, "toll_fee": 0.0, "surge_multiplier": 1.20, "is_peak_hour": true, "enforce_floor": true,
		}, 148.32, false),
		quoteCase("Quote: off-peak keeps low surge", map[string]any{
			"time_minutes": 57.0, "distance_km": 65.0, "toll_fee": 0.0, "surge_multiplier": 0.50, "is_peak_hour": false, "enforce_floor": true,
		}, 61.80, false),
		statusCase("Quote: negative distance -> 400", "/api/fares/quote", map[string]any{
			"time_minutes": 10.0, "distance_km": -1.0, "surge_multiplier": 1.0,
		}, http.StatusBadRequest),

		compareCase("Compare: loophole without floor", routeA, routeB, false, "loophole_detected"),
		compareCase("Compare: mitigation with floor", routeA, routeB, true, "mitigation_successful"),

		{
			Name: "Perf: quote throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, "/api/fares/quote", withFloor(routeB, true))
			},
		},
	}
}

func withFloor(trip map[string]any, enforce bool) map[string]any {
	out := make(map[string]any, len(trip)+1)
	for k, v := range trip {
		out[k] = v
	}
	out["enforce_floor"] = enforce
	return out
}

func quoteCase(name string, body map[string]any, wantFare float64, wantFloor bool) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, raw, err := r.do(ctx, http.MethodPost, "/api/fares/quote", body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			latency := time.Since(start)
			if status != http.StatusOK {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			var resp struct {
				Fare struct {
					FinalFare    float64 `json:"final_fare"`
					FloorApplied bool    `json:"floor_applied"`
				} `json:"fare"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return Result{Status: statusFail, Latency: latency, Note: err.Error()}
			}
			if resp.Fare.FinalFare != wantFare || resp.Fare.FloorApplied != wantFloor {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf(
					"got fare=%.2f floor=%t, want fare=%.2f floor=%t",
					resp.Fare.FinalFare, resp.Fare.FloorApplied, wantFare, wantFloor)}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("fare=%.2f", resp.Fare.FinalFare)}
		},
	}
}

func compareCase(name string, a, b map[string]any, enforce bool, wantOutcome string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, raw, err := r.do(ctx, http.MethodPost, "/api/fares/compare", map[string]any{
				"route_a": a, "route_b": b, "enforce_floor": enforce,
			})
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			latency := time.Since(start)
			if status != http.StatusOK {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			var resp struct {
				Comparison struct {
					Difference float64 `json:"difference"`
					Outcome    string  `json:"outcome"`
				} `json:"comparison"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return Result{Status: statusFail, Latency: latency, Note: err.Error()}
			}
			if resp.Comparison.Outcome != wantOutcome {
				return Result{Status: statusFail, Latency: latency, Note: "outcome=" + resp.Comparison.Outcome}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("difference=%.2f", resp.Comparison.Difference)}
		},
	}
}

func statusCase(name, path string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.do(ctx, http.MethodPost, path, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if status != want {
				return Result{Status: statusFail, Latency: time.Since(start), Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: statusPass, Latency: time.Since(start)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, err
}

func perfLoad(ctx context.Context, r *Runner, path string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, err := r.do(ctx, http.MethodPost, path, payload)
				if err != nil || status != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
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
		tables = append(tables, strings.ToLower(m[1]))
	}
	return tables, nil
}
