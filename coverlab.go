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

// Package coverlab 是覆蓋下注（Cover the Table）模擬引擎的入口。
//
// 一次執行（Run）= 對同一份下注序列重播 SeriesCount 個系列：
//   - 每個系列從共用的 SpinSource 取新號碼，號碼不會跨系列重用。
//   - 每個位置每個系列恰好寫入一個符號（'.' 命中、'X' 輸、'=' 忽略）。
//   - 系列損益依序收集成 ColumnProfits，總和恆等於 TotalProfitLoss。
//
// 引擎是同步、單線程的純計算：沒有 I/O、沒有 log、也不處理語系字串。
// 呈現交給 report 包，CLI 與 HTTP 只是呼叫端。
//
// 典型用法：
//
//	seq := bet.ParseText(text)
//	rep, err := coverlab.Run(coverlab.Config{SeriesCount: 10, RetryBudget: 1, BetUnit: 1}, seq, wheel.New(seed))
package coverlab

import (
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/series"
	"github.com/zintix-labs/coverlab/trace"
	"github.com/zintix-labs/coverlab/wheel"
)

// Config 一次執行的設定，執行期間不變。
type Config struct {
	SeriesCount  int `json:"series" yaml:"series"`               // 系列數 >= 1
	RetryBudget  int `json:"retry" yaml:"retry"`                 // 首次失敗後還能容忍的失敗數 >= 0
	BetUnit      int `json:"bet_unit" yaml:"bet_unit"`           // 每號押注額 >= 1
	AttemptLimit int `json:"attempt_limit" yaml:"attempt_limit"` // 0 = 不計算有限次數損益
}

// Valid 在模擬開始前拒絕不合法設定，不做任何預設值替換。
func (c Config) Valid() error {
	if c.SeriesCount < 1 {
		return errs.Invalid("series", "series count must be >= 1, got %d", c.SeriesCount)
	}
	if c.RetryBudget < 0 {
		return errs.Invalid("retry", "retry budget must be >= 0, got %d", c.RetryBudget)
	}
	if c.BetUnit < 1 {
		return errs.Invalid("bet_unit", "bet unit must be >= 1, got %d", c.BetUnit)
	}
	if c.AttemptLimit < 0 {
		return errs.Invalid("attempt_limit", "attempt limit must be >= 0, got %d", c.AttemptLimit)
	}
	return nil
}

// Run 執行一次完整模擬並回傳已 Done 的報表。
//
// src 由呼叫端注入；若要重現結果，請給同一個 seed 的來源。
// 只有 SeriesCount == 1 時才保留開出號碼（ExtractedNumbers）。
func Run(cfg Config, seq bet.Sequence, src wheel.SpinSource) (*RunReport, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errs.Invalid("source", "spin source is required")
	}
	sim, err := series.New(seq, cfg.RetryBudget, cfg.BetUnit)
	if err != nil {
		return nil, err
	}

	audit := cfg.SeriesCount == 1
	rep := &RunReport{
		Bets:          seq,
		SeriesCount:   cfg.SeriesCount,
		RetryBudget:   cfg.RetryBudget,
		BetUnit:       cfg.BetUnit,
		AttemptLimit:  cfg.AttemptLimit,
		ColumnProfits: make([]int, 0, cfg.SeriesCount),
		arena:         trace.NewArena(seq.Len(), cfg.SeriesCount),
	}

	for s := 0; s < cfg.SeriesCount; s++ {
		r := sim.Play(src, s, rep.arena, audit)
		rep.fold(r)
		if audit {
			rep.ExtractedNumbers = r.Spins
		}
	}
	rep.Done()
	return rep, nil
}

// fold 把單一系列結果併入累計值。
func (r *RunReport) fold(res series.Result) {
	r.ColumnProfits = append(r.ColumnProfits, res.ProfitLoss)
	r.TotalProfitLoss += res.ProfitLoss
	r.TotalMatches += res.Matches
	if res.ExhaustedAt >= 0 {
		r.Exhausted++
	}
	// 只有位置嚴格較小，或位置相同且系列嚴格較小時才取代。
	if res.FirstFailure != nil && (r.FirstFailure == nil || res.FirstFailure.Less(*r.FirstFailure)) {
		c := *res.FirstFailure
		r.FirstFailure = &c
	}
}
