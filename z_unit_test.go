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

package coverlab_test

import (
	"reflect"
	"testing"

	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/series"
	"github.com/zintix-labs/coverlab/trace"
	"github.com/zintix-labs/coverlab/wheel"
)

func scripted(t *testing.T, spins ...int) *wheel.Scripted {
	t.Helper()
	s, err := wheel.NewScripted(spins...)
	if err != nil {
		t.Fatalf("scripted: %v", err)
	}
	return s
}

func mustRun(t *testing.T, cfg coverlab.Config, seq bet.Sequence, src wheel.SpinSource) *coverlab.RunReport {
	t.Helper()
	rep, err := coverlab.Run(cfg, seq, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return rep
}

func one(retry int) coverlab.Config {
	return coverlab.Config{SeriesCount: 1, RetryBudget: retry, BetUnit: 1}
}

func TestScenarioA(t *testing.T) {
	rep := mustRun(t, one(0), bet.Sequence{bet.New(1, 2)}, scripted(t, 1))
	if rep.Trace(0) != "." || rep.TotalProfitLoss != 1 || rep.FirstFailure != nil {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(rep.ExtractedNumbers) != 1 || rep.ExtractedNumbers[0] != 1 {
		t.Fatalf("single series must keep extracted numbers: %v", rep.ExtractedNumbers)
	}
}

func TestScenarioB(t *testing.T) {
	rep := mustRun(t, one(0), bet.Sequence{bet.New(1, 2)}, scripted(t, 5))
	if rep.Trace(0) != "X" || rep.TotalProfitLoss != -35 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if rep.FirstFailure == nil || *rep.FirstFailure != (series.Coord{}) {
		t.Fatalf("expected first failure (0,0), got %+v", rep.FirstFailure)
	}
}

func TestScenarioC(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2), bet.New(3, 4)}
	rep := mustRun(t, one(1), seq, scripted(t, 5, 3))
	if rep.Trace(0) != "X" || rep.Trace(1) != "." || rep.TotalProfitLoss != -34 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestScenarioD(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2), bet.New(3, 4), bet.New(5, 6)}
	rep := mustRun(t, one(0), seq, scripted(t, 5, 3, 5))
	for pos := 0; pos < 3; pos++ {
		if rep.Trace(pos) != "X" {
			t.Fatalf("position %d: expected forced X, got %q", pos, rep.Trace(pos))
		}
	}
	if rep.TotalMatches != 0 {
		t.Fatalf("no match may be recorded after exhaustion")
	}
	if rep.Exhausted != 1 {
		t.Fatalf("expected one exhausted series, got %d", rep.Exhausted)
	}
}

func TestFirstFailureAcrossSeries(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2), bet.New(3, 4)}
	cfg := coverlab.Config{SeriesCount: 3, RetryBudget: 1, BetUnit: 1}
	rep := mustRun(t, cfg, seq, scripted(t, 1, 9, 9, 3, 9, 9))
	want := series.Coord{Position: 0, Series: 1}
	if rep.FirstFailure == nil || *rep.FirstFailure != want {
		t.Fatalf("expected %+v, got %+v", want, rep.FirstFailure)
	}
	if rep.ExtractedNumbers != nil {
		t.Fatalf("extracted numbers are only kept for a single series")
	}
}

func TestInvariantsOnRandomRun(t *testing.T) {
	seq := bet.ParseText("1 2\n3 4\nignora\n5 6\n7 8\n0 36\n")
	cfg := coverlab.Config{SeriesCount: 200, RetryBudget: 0, BetUnit: 3}
	rep := mustRun(t, cfg, seq, wheel.New(77))

	sum := 0
	for _, p := range rep.ColumnProfits {
		sum += p
	}
	if sum != rep.TotalProfitLoss {
		t.Fatalf("column profits %d != total %d", sum, rep.TotalProfitLoss)
	}
	if len(rep.ColumnProfits) != cfg.SeriesCount {
		t.Fatalf("expected %d column profits", cfg.SeriesCount)
	}
	for pos := range seq {
		if got := len(rep.Trace(pos)); got != cfg.SeriesCount {
			t.Fatalf("position %d has %d symbols", pos, got)
		}
		if seq[pos].IsIgnored() {
			for s := 0; s < cfg.SeriesCount; s++ {
				if rep.Symbol(pos, s) != trace.Ignored {
					t.Fatalf("ignored position must stay '='")
				}
			}
		}
	}

	// retry 0：第一個 X 之後同系列不會再出現命中
	var first *series.Coord
	for s := 0; s < cfg.SeriesCount; s++ {
		lost := false
		for pos := range seq {
			sym := rep.Symbol(pos, s)
			if lost && sym == trace.Match {
				t.Fatalf("series %d matched at %d after a loss", s, pos)
			}
			if sym == trace.Loss {
				c := series.Coord{Position: pos, Series: s}
				if !lost && (first == nil || c.Less(*first)) {
					first = &c
				}
				lost = true
			}
		}
	}
	if (first == nil) != (rep.FirstFailure == nil) || (first != nil && *first != *rep.FirstFailure) {
		t.Fatalf("first failure %+v, brute force %+v", rep.FirstFailure, first)
	}

	if rep.AverageMatchRate != float64(rep.TotalMatches)/float64(cfg.SeriesCount) {
		t.Fatalf("average match rate mismatch")
	}
}

func TestDeterminism(t *testing.T) {
	seq := bet.ParseText("1 2\n3 4\n5 6\n")
	cfg := coverlab.Config{SeriesCount: 50, RetryBudget: 2, BetUnit: 1, AttemptLimit: 10}
	r1 := mustRun(t, cfg, seq, wheel.New(9))
	r2 := mustRun(t, cfg, seq, wheel.New(9))
	if !reflect.DeepEqual(r1.Positions, r2.Positions) || !reflect.DeepEqual(r1.ColumnProfits, r2.ColumnProfits) {
		t.Fatalf("same seed produced different traces")
	}
	if *r1.Bounded != *r2.Bounded {
		t.Fatalf("bounded profit differs")
	}
}

func TestBoundedProfitLoss(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2), bet.Ignore, bet.New(3, 4)}
	cfg := coverlab.Config{SeriesCount: 2, RetryBudget: 1, BetUnit: 1}
	rep := mustRun(t, cfg, seq, scripted(t, 1, 0, 3, 5, 0, 9))
	if rep.Trace(0) != ".X" || rep.Trace(1) != "==" || rep.Trace(2) != ".X" {
		t.Fatalf("unexpected traces %v", rep.Positions)
	}
	if rep.TotalProfitLoss != -68 {
		t.Fatalf("unexpected total %d", rep.TotalProfitLoss)
	}
	if rep.Bounded != nil {
		t.Fatalf("attempt limit 0 must leave the field absent")
	}
	cases := map[int]int{1: 1, 2: -34, 3: -33, 4: -68, 100: -68}
	for limit, want := range cases {
		got, ok := rep.BoundedProfitLoss(limit)
		if !ok || got != want {
			t.Fatalf("limit %d: got %d want %d", limit, got, want)
		}
		again, _ := rep.BoundedProfitLoss(limit)
		if again != got {
			t.Fatalf("limit %d: not idempotent", limit)
		}
	}
	if _, ok := rep.BoundedProfitLoss(0); ok {
		t.Fatalf("limit 0 must be skipped")
	}
}

func TestBoundedFloorRule(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2), bet.New(3, 4)}
	cfg := coverlab.Config{SeriesCount: 1, RetryBudget: 0, BetUnit: 2, AttemptLimit: 2}
	rep := mustRun(t, cfg, seq, scripted(t, 5, 3))
	// 第二個 X 是強制判輸，重走軌跡會得到 -140，但總損益只有 -70
	if rep.Bounded == nil || *rep.Bounded != -70 {
		t.Fatalf("expected floor to total -70, got %v", rep.Bounded)
	}
}

func TestRunRejectsConfig(t *testing.T) {
	seq := bet.Sequence{bet.New(1, 2)}
	bad := []coverlab.Config{
		{SeriesCount: 0, BetUnit: 1},
		{SeriesCount: 1, RetryBudget: -1, BetUnit: 1},
		{SeriesCount: 1, BetUnit: 0},
		{SeriesCount: 1, BetUnit: 1, AttemptLimit: -1},
	}
	for i, cfg := range bad {
		if _, err := coverlab.Run(cfg, seq, wheel.New(1)); !errs.IsInvalid(err) {
			t.Fatalf("case %d: expected invalid config, got %v", i, err)
		}
	}
	if _, err := coverlab.Run(one(0), bet.Sequence{}, wheel.New(1)); !errs.IsInvalid(err) {
		t.Fatalf("empty sequence must be rejected, got %v", err)
	}
	if _, err := coverlab.Run(one(0), seq, nil); !errs.IsInvalid(err) {
		t.Fatalf("nil source must be rejected, got %v", err)
	}
}

func TestRunPlaysOutOfRangePair(t *testing.T) {
	src, err := wheel.NewScripted(36)
	if err != nil {
		t.Fatalf("scripted: %v", err)
	}
	rep, err := coverlab.Run(one(0), bet.Sequence{bet.New(40, 41)}, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Trace(0) != "X" || rep.TotalProfitLoss != -35 {
		t.Fatalf("unexpected report: trace=%q total=%d", rep.Trace(0), rep.TotalProfitLoss)
	}
}

func TestMatchRateZeroSeries(t *testing.T) {
	var rep coverlab.RunReport
	if rep.MatchRate() != 0 {
		t.Fatalf("zero series must give 0")
	}
}
