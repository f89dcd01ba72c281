// README: Benchmark test cases: evaluation scenarios, settings round trip, perf.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
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
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
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
		res.Name = tc.Name
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
	return []TestCase{
		{Name: "health", Run: runHealth},
		{Name: "evaluate_long_haul_bad", Run: runEvaluateLongHaul},
		{Name: "evaluate_short_run_good", Run: runEvaluateShortRun},
		{Name: "evaluate_query_params", Run: runEvaluateQuery},
		{Name: "maxima_branch", Run: runMaximaBranch},
		{Name: "settings_round_trip", Run: runSettingsRoundTrip},
		{Name: "db_driver_settings", Run: runDBCheck},
		{Name: "redis_ping", Run: runRedisCheck},
		{Name: "evaluate_perf", Run: runEvaluatePerf},
	}
}

func runHealth(ctx context.Context, r *Runner) Result {
	start := time.Now()
	status, _, err := r.get(ctx, "/health")
	if err != nil || status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func runEvaluateLongHaul(ctx context.Context, r *Runner) Result {
	return r.expectVerdict(ctx, map[string]any{"pay": 21, "miles": 35}, "bad")
}

func runEvaluateShortRun(ctx context.Context, r *Runner) Result {
	return r.expectVerdict(ctx, map[string]any{"pay": 8.5, "miles": 3}, "good")
}

func runEvaluateQuery(ctx context.Context, r *Runner) Result {
	start := time.Now()
	status, body, err := r.get(ctx, "/api/offers/evaluate?pay=8.5&miles=3")
	if err != nil || status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	var out struct {
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Verdict != "good" {
		return Result{Status: "FAIL", Note: fmt.Sprintf("verdict=%q err=%v", out.Verdict, err)}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func runMaximaBranch(ctx context.Context, r *Runner) Result {
	start := time.Now()
	status, body, err := r.postJSON(ctx, "/api/offers/evaluate", map[string]any{"pay": 15})
	if err != nil || status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	var out struct {
		HasRoute bool `json:"has_route"`
		Maxima   struct {
			MaxMinutes float64 `json:"max_minutes"`
		} `json:"maxima"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.HasRoute || out.Maxima.MaxMinutes <= 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("has_route=%v max_minutes=%v err=%v", out.HasRoute, out.Maxima.MaxMinutes, err)}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func runSettingsRoundTrip(ctx context.Context, r *Runner) Result {
	driverID := fmt.Sprintf("bench%d", time.Now().UnixNano())
	path := "/api/drivers/" + driverID + "/settings"
	start := time.Now()

	payload := map[string]any{
		"per_pickup": 5, "per_drop": 2, "per_item": 1.5,
		"avg_speed": 35, "expected_pay": 26, "min_hourly_pay": 0,
		"max_orders_per_hour": 3, "return_1_drop": 100, "return_2_drop": 75,
		"extra_wait_time": 5,
	}
	status, _, err := r.putJSON(ctx, path, payload)
	if err != nil || status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("put status=%d err=%v", status, err)}
	}

	status, body, err := r.get(ctx, path)
	if err != nil || status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("get status=%d err=%v", status, err)}
	}
	var out struct {
		ExpectedPay float64 `json:"expected_pay"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.ExpectedPay != 26 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("expected_pay=%v err=%v", out.ExpectedPay, err)}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func runDBCheck(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: "SKIP", Note: "no DSN"}
	}
	start := time.Now()
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM driver_settings").Scan(&n); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("rows=%d", n)}
}

func runRedisCheck(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: "SKIP", Note: "no redis addr"}
	}
	start := time.Now()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func runEvaluatePerf(ctx context.Context, r *Runner) Result {
	deadline := time.Now().Add(r.cfg.Duration)
	var total, failed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) && ctx.Err() == nil {
				status, _, err := r.postJSON(ctx, "/api/offers/evaluate", map[string]any{"pay": 12, "miles": 6, "items": 10})
				total.Add(1)
				if err != nil || status != http.StatusOK {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if total.Load() == 0 || failed.Load() > 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("total=%d failed=%d", total.Load(), failed.Load())}
	}
	rps := float64(total.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("%.0f req/s over %s x%d", rps, r.cfg.Duration, r.cfg.Concurrency)}
}

func (r *Runner) expectVerdict(ctx context.Context, payload map[string]any, want string) Result {
	start := time.Now()
	status, body, err := r.postJSON(ctx, "/api/offers/evaluate", payload)
	if err != nil || status != http.StatusOK {
		return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d err=%v", status, err)}
	}
	var out struct {
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Verdict != want {
		return Result{Status: "FAIL", Note: fmt.Sprintf("verdict=%q want=%q err=%v", out.Verdict, want, err)}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func (r *Runner) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	return r.do(req)
}

func (r *Runner) postJSON(ctx context.Context, path string, payload any) (int, []byte, error) {
	return r.sendJSON(ctx, http.MethodPost, path, payload)
}

func (r *Runner) putJSON(ctx context.Context, path string, payload any) (int, []byte, error) {
	return r.sendJSON(ctx, http.MethodPut, path, payload)
}

func (r *Runner) sendJSON(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req)
}

func (r *Runner) do(req *http.Request) (int, []byte, error) {
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return resp.StatusCode, body, err
}
