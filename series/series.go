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

// Package series 實作單一系列（series）的重播狀態機。
//
// 一個系列從位置 0 走到最後一個位置，每個位置消耗一次開號：
//
//	Active      正常評估
//	Recovering  上一個評估位置未命中，但失敗次數仍 <= retryBudget
//	Exhausted   失敗次數 > retryBudget，其後位置一律判輸（忽略位置仍為 '='）
//
// 命中 +betUnit，未命中 -35*betUnit；被強制判輸的位置不計金額。
package series

import (
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/trace"
	"github.com/zintix-labs/coverlab/wheel"
)

const (
	// WinUnits 命中時的獲利倍數
	WinUnits = 1
	// LossUnits 未命中時的扣除倍數
	LossUnits = 35
)

// Coord 失敗座標（位置為主鍵、系列為次鍵）
type Coord struct {
	Position int `json:"position" yaml:"position"`
	Series   int `json:"series" yaml:"series"`
}

// Less 依 (position, series) 字典序比較。
func (c Coord) Less(o Coord) bool {
	if c.Position != o.Position {
		return c.Position < o.Position
	}
	return c.Series < o.Series
}

type state uint8

const (
	active state = iota
	recovering
	exhausted
)

// Result 單一系列的結果
type Result struct {
	ProfitLoss   int
	Matches      int
	Failures     int
	FirstFailure *Coord // 本系列第一個未命中的位置
	ExhaustedAt  int    // 耗盡預算的位置，未耗盡為 -1
	Spins        []int  // 只有 audit 時保留
}

// Simulator 持有一次執行中固定不變的參數。
type Simulator struct {
	seq         bet.Sequence
	retryBudget int
	betUnit     int
}

// New 檢查參數後建立 Simulator；違規一律回傳 errs.Warn。
func New(seq bet.Sequence, retryBudget int, betUnit int) (*Simulator, error) {
	// 號碼範圍在解析邊界處理，引擎只要求序列非空
	if seq.Len() == 0 {
		return nil, errs.Invalid("bets", "bet sequence is empty")
	}
	if retryBudget < 0 {
		return nil, errs.Invalid("retry", "retry budget must be >= 0, got %d", retryBudget)
	}
	if betUnit < 1 {
		return nil, errs.Invalid("bet_unit", "bet unit must be >= 1, got %d", betUnit)
	}
	return &Simulator{seq: seq, retryBudget: retryBudget, betUnit: betUnit}, nil
}

func (s *Simulator) Positions() int { return len(s.seq) }

// Play 重播一個系列，把每個位置的符號寫入 arena 的對應槽。
//
// 每個位置都會先開號（即使已耗盡），因此每個系列固定消耗 Positions() 次開號，
// 共用同一個來源的多個系列彼此對齊。
func (s *Simulator) Play(src wheel.SpinSource, series int, arena *trace.Arena, audit bool) Result {
	r := Result{ExhaustedAt: -1}
	if audit {
		r.Spins = make([]int, 0, len(s.seq))
	}
	st := active
	for pos, b := range s.seq {
		n := src.Spin()
		if audit {
			r.Spins = append(r.Spins, n)
		}

		switch st {
		case exhausted:
			arena.Append(pos, forced(b))
			continue
		case recovering:
			if b.IsIgnored() {
				arena.Append(pos, trace.Ignored)
				continue
			}
			st = active
		}

		if b.IsIgnored() {
			arena.Append(pos, trace.Ignored)
			continue
		}

		if b.Matches(n) {
			arena.Append(pos, trace.Match)
			r.Matches++
			r.ProfitLoss += WinUnits * s.betUnit
			continue
		}

		arena.Append(pos, trace.Loss)
		r.ProfitLoss -= LossUnits * s.betUnit
		r.Failures++
		if r.FirstFailure == nil {
			r.FirstFailure = &Coord{Position: pos, Series: series}
		}
		if r.Failures > s.retryBudget {
			st = exhausted
			r.ExhaustedAt = pos
		} else {
			st = recovering
		}
	}
	return r
}

func forced(b bet.Bet) trace.Symbol {
	if b.IsIgnored() {
		return trace.Ignored
	}
	return trace.Loss
}
