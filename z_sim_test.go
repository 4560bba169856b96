package coverlab_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/zintix-labs/coverlab"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/sdk/core"
	"github.com/zintix-labs/coverlab/wheel"
)

func batchSeq() bet.Sequence {
	return bet.Sequence{bet.New(1, 2), bet.Ignore, bet.New(17, 20), bet.New(0, 36), bet.New(5, 8)}
}

func TestBatchDeterministicAcrossWorkers(t *testing.T) {
	cfg := coverlab.Config{SeriesCount: 20, RetryBudget: 1, BetUnit: 2}
	b, err := coverlab.NewBatchWithSeed(cfg, batchSeq(), core.Default(), 20251018)
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	one, _, err := b.Sim(context.Background(), 300, 1, false)
	if err != nil {
		t.Fatalf("sim 1 worker: %v", err)
	}
	many, _, err := b.Sim(context.Background(), 300, 7, false)
	if err != nil {
		t.Fatalf("sim 7 workers: %v", err)
	}
	if !reflect.DeepEqual(one, many) {
		t.Fatalf("reports differ across worker counts:\n%+v\n%+v", one.Summary, many.Summary)
	}
	if one.Summary.Runs != 300 || one.Summary.SeriesPerRun != 20 {
		t.Fatalf("unexpected summary header: %+v", one.Summary)
	}
	total := 0
	for _, c := range one.Dist.Collect {
		total += c
	}
	if total != 300*20 {
		t.Fatalf("every series should land in one bucket, got %d", total)
	}
}

func TestBatchRunMatchesSingleRun(t *testing.T) {
	cfg := coverlab.Config{SeriesCount: 3, RetryBudget: 0, BetUnit: 1}
	b, err := coverlab.NewBatchWithSeed(cfg, batchSeq(), core.Default(), 7)
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	rep, _, err := b.Sim(context.Background(), 1, 4, false)
	if err != nil {
		t.Fatalf("sim: %v", err)
	}
	seed := b.Seeds(1)[0]
	single, err := coverlab.Run(cfg, batchSeq(), wheel.NewWith(core.Default(), seed))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.Summary.WorstPL != single.TotalProfitLoss || rep.Summary.BestPL != single.TotalProfitLoss {
		t.Fatalf("batch run %d/%d differs from single run %d", rep.Summary.WorstPL, rep.Summary.BestPL, single.TotalProfitLoss)
	}
}

func TestBatchSeedsAreDistinct(t *testing.T) {
	b, err := coverlab.NewBatchWithSeed(coverlab.Config{SeriesCount: 1, BetUnit: 1}, batchSeq(), nil, 0)
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	seen := map[int64]bool{}
	for _, s := range b.Seeds(1000) {
		if s < 0 {
			t.Fatalf("seed must be non-negative, got %d", s)
		}
		if seen[s] {
			t.Fatalf("duplicate seed %d", s)
		}
		seen[s] = true
	}
}

func TestBatchRejectsParams(t *testing.T) {
	if _, err := coverlab.NewBatchWithSeed(coverlab.Config{SeriesCount: 0, BetUnit: 1}, batchSeq(), nil, 1); !errs.IsInvalid(err) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	b, err := coverlab.NewBatchWithSeed(coverlab.Config{SeriesCount: 1, BetUnit: 1}, batchSeq(), nil, 1)
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	if _, _, err := b.Sim(context.Background(), 0, 1, false); !errs.IsInvalid(err) {
		t.Fatalf("expected invalid runs, got %v", err)
	}
	if _, _, err := b.Sim(context.Background(), 1, 0, false); !errs.IsInvalid(err) {
		t.Fatalf("expected invalid workers, got %v", err)
	}
}

func TestBatchCanceled(t *testing.T) {
	b, err := coverlab.NewBatchWithSeed(coverlab.Config{SeriesCount: 1, BetUnit: 1}, batchSeq(), nil, 1)
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := b.Sim(ctx, 100, 2, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
