package stats

import (
	"github.com/zintix-labs/coverlab/errs"
)

// Collector 批次紀錄員
//
// 每個 worker 持有自己的 Collector，最後以 Merge 合併；Record 不做同步。
type Collector struct {
	positions    int
	seriesPerRun int
	betUnit      int
	retryBudget  int
	seed         int64

	totals     []float64 // 依 run index 存放，合併後仍保持 run 順序
	matchRates []float64
	filled     []bool
	firstFail  []int
	noFailure  int
	exhausted  int
	dist       []int
}

// NewCollector 建立 runs 個槽的紀錄員。
func NewCollector(runs, positions, seriesPerRun, betUnit, retryBudget int, seed int64) (*Collector, error) {
	if runs < 1 || positions < 1 || seriesPerRun < 1 || betUnit < 1 {
		return nil, errs.Fatalf("invalid collector shape: runs=%d positions=%d series=%d unit=%d", runs, positions, seriesPerRun, betUnit)
	}
	return &Collector{
		positions:    positions,
		seriesPerRun: seriesPerRun,
		betUnit:      betUnit,
		retryBudget:  retryBudget,
		seed:         seed,
		totals:       make([]float64, runs),
		matchRates:   make([]float64, runs),
		filled:       make([]bool, runs),
		firstFail:    make([]int, positions),
		dist:         make([]int, len(plBucketStr)),
	}, nil
}

// Record 紀錄第 idx 次執行的結果。
func (c *Collector) Record(idx int, o RunOutcome) {
	c.totals[idx] = float64(o.TotalProfitLoss)
	c.matchRates[idx] = o.MatchRate
	c.filled[idx] = true
	if o.FirstFailurePos >= 0 && o.FirstFailurePos < c.positions {
		c.firstFail[o.FirstFailurePos]++
	} else {
		c.noFailure++
	}
	c.exhausted += o.Exhausted
	for _, p := range o.ColumnProfits {
		c.dist[bucketIndex(p/c.betUnit)]++
	}
}

// Merge 合併同形狀的紀錄員；每個 run index 只能被其中一個紀錄過。
func Merge(cs []*Collector) (*Collector, error) {
	if len(cs) == 0 {
		return nil, errs.NewFatal("nothing to merge")
	}
	base := cs[0]
	out := &Collector{
		positions:    base.positions,
		seriesPerRun: base.seriesPerRun,
		betUnit:      base.betUnit,
		retryBudget:  base.retryBudget,
		seed:         base.seed,
		totals:       make([]float64, len(base.totals)),
		matchRates:   make([]float64, len(base.totals)),
		filled:       make([]bool, len(base.totals)),
		firstFail:    make([]int, base.positions),
		dist:         make([]int, len(base.dist)),
	}
	for _, c := range cs {
		if len(c.totals) != len(out.totals) || c.positions != out.positions {
			return nil, errs.NewFatal("collector shape mismatch")
		}
		for i, ok := range c.filled {
			if !ok {
				continue
			}
			if out.filled[i] {
				return nil, errs.Fatalf("run %d recorded twice", i)
			}
			out.totals[i] = c.totals[i]
			out.matchRates[i] = c.matchRates[i]
			out.filled[i] = true
		}
		for i, v := range c.firstFail {
			out.firstFail[i] += v
		}
		for i, v := range c.dist {
			out.dist[i] += v
		}
		out.noFailure += c.noFailure
		out.exhausted += c.exhausted
	}
	return out, nil
}

// Done 產出報表；尚未紀錄的 run 不列入統計。
func (c *Collector) Done() *BatchReport {
	totals := make([]float64, 0, len(c.totals))
	rates := make([]float64, 0, len(c.totals))
	for i, ok := range c.filled {
		if ok {
			totals = append(totals, c.totals[i])
			rates = append(rates, c.matchRates[i])
		}
	}
	rep := &BatchReport{
		Summary: &SummaryReport{
			Runs:         len(totals),
			SeriesPerRun: c.seriesPerRun,
			Positions:    c.positions,
			BetUnit:      c.betUnit,
			RetryBudget:  c.retryBudget,
			Seed:         c.seed,
			Exhausted:    c.exhausted,
		},
		Dist: &DistReport{
			Bucket:  BucketLabels(),
			Collect: append([]int(nil), c.dist...),
			Ratio:   make([]float64, len(c.dist)),
		},
		FirstFailure: &FirstFailureReport{
			NoFailureRuns: c.noFailure,
			ByPosition:    append([]int(nil), c.firstFail...),
		},
	}
	summarize(rep, totals, rates)
	return rep
}
