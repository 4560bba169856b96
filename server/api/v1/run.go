// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/corefmt"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/report"
	"github.com/zintix-labs/coverlab/server/httperr"
	"github.com/zintix-labs/coverlab/server/netsvr"
	"github.com/zintix-labs/coverlab/server/svrcfg"
	"github.com/zintix-labs/coverlab/stats"
	"github.com/zintix-labs/coverlab/wheel"
)

const (
	runTimeout   = 5 * time.Second
	batchTimeout = 50 * time.Second
)

// RunResponse 單次執行的回應。
//
// Seed / State 只有在輪盤來源時才有值；State 可帶回下一次請求以接續開號。
type RunResponse struct {
	RunID  string              `json:"run_id"`
	Seed   *int64              `json:"seed,omitempty"`
	RNG    string              `json:"rng"`
	State  string              `json:"state,omitempty"`
	Report *coverlab.RunReport `json:"report"`
	Text   string              `json:"text,omitempty"`
}

// BatchResponse 批次模擬的回應
type BatchResponse struct {
	RunID    string             `json:"run_id"`
	Seed     int64              `json:"seed"`
	RNG      string             `json:"rng"`
	UsedTime int64              `json:"used_ms"`
	Stats    *stats.BatchReport `json:"stats"`
}

// Handler v1 handlers，持有資源上限與 logger。
type Handler struct {
	cfg *svrcfg.SvrCfg
}

func NewHandler(cfg *svrcfg.SvrCfg) (*Handler, error) {
	if cfg == nil || cfg.Log == nil {
		return nil, errs.NewFatal("server config is required")
	}
	return &Handler{cfg: cfg}, nil
}

// Run 執行一次模擬（GET query 或 POST JSON）。
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeRunRequest(r)
	if err != nil {
		h.fail(w, "v1.run", err)
		return
	}
	rs, seq, err := req.setting()
	if err != nil {
		h.fail(w, "v1.run", err)
		return
	}
	if err := h.limit(rs.Series, seq.Len()); err != nil {
		h.fail(w, "v1.run", err)
		return
	}
	src, whl, err := req.source(rs.Factory())
	if err != nil {
		h.fail(w, "v1.run", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()
	rep, err := runCtx(ctx, rs.ToConfig(), seq, src)
	if err != nil {
		h.fail(w, "v1.run", err)
		return
	}

	resp := &RunResponse{RunID: uuid.NewString(), RNG: rs.RNG, Report: rep}
	if whl != nil {
		if req.State == "" {
			seed := whl.Seed()
			resp.Seed = &seed
		}
		if b, err := whl.Snapshot(); err == nil {
			resp.State = corefmt.EncodeState(b)
		}
	}
	if req.Lang != "" {
		var buf bytes.Buffer
		if err := report.Text(&buf, rep, report.MessagesForName(req.Lang)); err != nil {
			h.fail(w, "v1.run", err)
			return
		}
		resp.Text = buf.String()
	}
	h.cfg.Log.Debug("v1.run", slog.String("run_id", resp.RunID), slog.Int("series", rep.SeriesCount), slog.Int("total", rep.TotalProfitLoss))
	writeJSON(w, resp)
}

// limit 檢查單次 run 的工作量：系列數與位置數都有上限。
func (h *Handler) limit(series, positions int) error {
	if series > h.cfg.MaxSeries {
		return errs.Invalid("series", "series must be <= %d, got %d", h.cfg.MaxSeries, series)
	}
	if positions > h.cfg.MaxPositions {
		return errs.Invalid("bets", "bets must have <= %d positions, got %d", h.cfg.MaxPositions, positions)
	}
	return nil
}

// runCtx 在背景執行 coverlab.Run，逾時即放棄等待。
func runCtx(ctx context.Context, cfg coverlab.Config, seq bet.Sequence, src wheel.SpinSource) (*coverlab.RunReport, error) {
	type result struct {
		rep *coverlab.RunReport
		err error
	}
	done := make(chan result, 1)
	go func() {
		rep, err := coverlab.Run(cfg, seq, src)
		done <- result{rep, err}
	}()
	select {
	case res := <-done:
		return res.rep, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Batch 以多個獨立輪盤重複執行，回傳統計摘要（POST JSON）。
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeRunRequest(r)
	if err != nil {
		h.fail(w, "v1.batch", err)
		return
	}
	rs, seq, err := req.setting()
	if err != nil {
		h.fail(w, "v1.batch", err)
		return
	}
	if len(req.Spins) > 0 || req.State != "" {
		h.fail(w, "v1.batch", errs.Invalid("spins", "batch derives its own wheels; spins and state are not accepted"))
		return
	}
	runs := max(rs.Runs, 1)
	if runs > h.cfg.MaxRuns {
		h.fail(w, "v1.batch", errs.Invalid("runs", "runs must be <= %d, got %d", h.cfg.MaxRuns, runs))
		return
	}
	if err := h.limit(rs.Series, seq.Len()); err != nil {
		h.fail(w, "v1.batch", err)
		return
	}
	workers := min(max(rs.Workers, 1), h.cfg.MaxWorkers)
	seed, err := req.seed()
	if err != nil {
		h.fail(w, "v1.batch", err)
		return
	}
	b, err := coverlab.NewBatchWithSeed(rs.ToConfig(), seq, rs.Factory(), seed)
	if err != nil {
		h.fail(w, "v1.batch", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), batchTimeout)
	defer cancel()
	st, used, err := b.Sim(ctx, runs, workers, false)
	if err != nil {
		h.fail(w, "v1.batch", err)
		return
	}
	resp := &BatchResponse{RunID: uuid.NewString(), Seed: seed, RNG: rs.RNG, UsedTime: used.Milliseconds(), Stats: st}
	h.cfg.Log.Info("v1.batch", slog.String("run_id", resp.RunID), slog.Int("runs", runs), slog.Int("workers", workers), slog.Duration("used", used))
	writeJSON(w, resp)
}

// PocketResponse 號碼屬性
type PocketResponse struct {
	wheel.Pocket
	Text string `json:"text,omitempty"`
}

// Pocket GET /v1/pocket/{n}?lang=it
func (h *Handler) Pocket(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(netsvr.URLParam(r, "n"))
	if err != nil || n < 0 || n >= wheel.Pockets {
		h.fail(w, "v1.pocket", errs.Invalid("n", "pocket must be an integer in 0..36"))
		return
	}
	resp := PocketResponse{Pocket: wheel.Describe(n)}
	if lang := r.URL.Query().Get("lang"); lang != "" {
		resp.Text = report.MessagesForName(lang).Pocket(n)
	}
	writeJSON(w, resp)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	httperr.Log(h.cfg.Log, msg, err)
	httperr.Errs(w, err)
}

// writeJSON 先編碼到 buffer，避免寫到一半才失敗留下殘缺回應。
func writeJSON(w http.ResponseWriter, v any) {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		httperr.Errs(w, errs.Wrap(err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}
