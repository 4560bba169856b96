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

// Package stats 彙整多次獨立執行（run）的結果，估計覆蓋下注策略的長期表現。
package stats

import (
	"fmt"
	"time"

	"github.com/zintix-labs/coverlab/corefmt"
)

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// RunOutcome 單次執行中批次統計需要的欄位。
type RunOutcome struct {
	TotalProfitLoss int
	MatchRate       float64
	FirstFailurePos int // 無失敗為 -1
	Exhausted       int
	ColumnProfits   []int
}

// BatchReport 批次統計報告
type BatchReport struct {
	Summary      *SummaryReport      `json:"Summary" yaml:"Summary"`
	Dist         *DistReport         `json:"Dist" yaml:"Dist"`
	FirstFailure *FirstFailureReport `json:"FirstFailure" yaml:"FirstFailure"`
}

type SummaryReport struct {
	Runs          int     `json:"Runs" yaml:"Runs"`
	SeriesPerRun  int     `json:"SeriesPerRun" yaml:"SeriesPerRun"`
	Positions     int     `json:"Positions" yaml:"Positions"`
	BetUnit       int     `json:"BetUnit" yaml:"BetUnit"`
	RetryBudget   int     `json:"RetryBudget" yaml:"RetryBudget"`
	Seed          int64   `json:"Seed" yaml:"Seed"`
	MeanPL        float64 `json:"MeanPL" yaml:"MeanPL"`
	StdPL         float64 `json:"StdPL" yaml:"StdPL"`
	MeanCI        CI      `json:"MeanCI" yaml:"MeanCI"`
	P10           float64 `json:"P10" yaml:"P10"`
	Median        float64 `json:"Median" yaml:"Median"`
	P90           float64 `json:"P90" yaml:"P90"`
	WorstPL       int     `json:"WorstPL" yaml:"WorstPL"`
	BestPL        int     `json:"BestPL" yaml:"BestPL"`
	LosingRuns    int     `json:"LosingRuns" yaml:"LosingRuns"`
	LosingRate    float64 `json:"LosingRate" yaml:"LosingRate"`
	LosingRateCI  CI      `json:"LosingRateCI" yaml:"LosingRateCI"`
	MeanMatchRate float64 `json:"MeanMatchRate" yaml:"MeanMatchRate"`
	Exhausted     int     `json:"ExhaustedSeries" yaml:"ExhaustedSeries"`
}

// DistReport 每系列損益（以押注單位計）的分桶統計
type DistReport struct {
	Bucket  []string  `json:"Bucket" yaml:"Bucket"`
	Collect []int     `json:"Collect" yaml:"Collect"`
	Ratio   []float64 `json:"Ratio" yaml:"Ratio"`
}

// FirstFailureReport 每次執行第一個失敗位置的分布
type FirstFailureReport struct {
	NoFailureRuns int   `json:"NoFailureRuns" yaml:"NoFailureRuns"`
	ByPosition    []int `json:"ByPosition" yaml:"ByPosition"`
	EarliestPos   int   `json:"EarliestPos" yaml:"EarliestPos"` // 1-indexed, 0 = 無失敗
}

func (s *BatchReport) StdOut(ut time.Duration) {
	fmt.Print(corefmt.Duration(ut, s.Summary.Runs*s.Summary.SeriesPerRun))
	keys, msg := s.fmtBasic()
	fmt.Println(corefmt.Table("Cover the Table - batch", keys, msg))
}

func (s *BatchReport) fmtBasic() ([]string, map[string]string) {
	p := corefmt.Printer()
	basic := map[string]string{
		"Runs":            p.Sprintf("%d", s.Summary.Runs),
		"Series / Run":    p.Sprintf("%d", s.Summary.SeriesPerRun),
		"Positions":       p.Sprintf("%d", s.Summary.Positions),
		"Bet Unit":        p.Sprintf("%d", s.Summary.BetUnit),
		"Retry":           p.Sprintf("%d", s.Summary.RetryBudget),
		"Seed":            fmt.Sprintf("%d", s.Summary.Seed),
		"Mean P/L":        p.Sprintf("%.2f", s.Summary.MeanPL),
		"Mean 95% CI":     p.Sprintf("[%.2f, %.2f]", s.Summary.MeanCI.Lo, s.Summary.MeanCI.Hi),
		"STD":             p.Sprintf("%.2f", s.Summary.StdPL),
		"P10 / P50 / P90": p.Sprintf("%.0f / %.0f / %.0f", s.Summary.P10, s.Summary.Median, s.Summary.P90),
		"Worst / Best":    p.Sprintf("%d / %d", s.Summary.WorstPL, s.Summary.BestPL),
		"Losing Runs":     p.Sprintf("%.2f %% [%.2f%%,%.2f%%]", 100*s.Summary.LosingRate, 100*s.Summary.LosingRateCI.Lo, 100*s.Summary.LosingRateCI.Hi),
		"Match Rate":      p.Sprintf("%.3f", s.Summary.MeanMatchRate),
		"Exhausted":       p.Sprintf("%d", s.Summary.Exhausted),
		"No Failure Runs": p.Sprintf("%d", s.FirstFailure.NoFailureRuns),
	}
	keys := []string{"Runs", "Series / Run", "Positions", "Bet Unit", "Retry", "Seed", "Mean P/L", "Mean 95% CI", "STD",
		"P10 / P50 / P90", "Worst / Best", "Losing Runs", "Match Rate", "Exhausted", "No Failure Runs"}
	return keys, basic
}
