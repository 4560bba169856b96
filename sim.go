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

package coverlab

import (
	"context"
	"crypto/rand"
	"io"
	"math"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/sdk/core"
	"github.com/zintix-labs/coverlab/series"
	"github.com/zintix-labs/coverlab/stats"
	"github.com/zintix-labs/coverlab/wheel"
)

// Batch 以同一份設定與下注序列重複執行多次 Run，估計長期表現。
//
// 每次 Run 各自擁有一個輪盤，種子由 initSeed 依序衍生：
// 第 i 次 Run 永遠拿到第 i 個種子，結果與 worker 數量無關。
type Batch struct {
	cfg      Config
	seq      bet.Sequence
	cf       core.Factory
	initSeed int64
}

// NewBatch 以隨機種子建立批次模擬器
func NewBatch(cfg Config, seq bet.Sequence, cf core.Factory) (*Batch, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return nil, errs.Wrap(err, "draw batch seed")
	}
	return NewBatchWithSeed(cfg, seq, cf, seed.Int64())
}

// NewBatchWithSeed 以指定種子建立批次模擬器；cf 為 nil 時使用預設 PRNG。
func NewBatchWithSeed(cfg Config, seq bet.Sequence, cf core.Factory, seed int64) (*Batch, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	if _, err := series.New(seq, cfg.RetryBudget, cfg.BetUnit); err != nil {
		return nil, err
	}
	if cf == nil {
		cf = core.Default()
	}
	return &Batch{cfg: cfg, seq: seq, cf: cf, initSeed: seed}, nil
}

// Seed 回傳初始種子
func (b *Batch) Seed() int64 { return b.initSeed }

// Seeds 回傳前 runs 次 Run 使用的種子，可用 wheel.NewWith 單獨重現任一次。
func (b *Batch) Seeds(runs int) []int64 {
	sm := newSeedMaker(b.initSeed)
	out := make([]int64, runs)
	for i := range out {
		out[i] = sm.next()
	}
	return out
}

// Sim 以 workers 個 goroutine 平行執行 runs 次 Run，回傳統計結果與用時。
//
// ctx 取消時尚未開始的 Run 會被略過，並回傳 ctx 的錯誤。
func (b *Batch) Sim(ctx context.Context, runs int, workers int, showpb bool) (*stats.BatchReport, time.Duration, error) {
	if runs < 1 {
		return nil, 0, errs.Invalid("runs", "runs must be >= 1, got %d", runs)
	}
	if workers < 1 {
		return nil, 0, errs.Invalid("workers", "workers must be >= 1, got %d", workers)
	}
	workers = min(workers, runs)
	seeds := b.Seeds(runs)

	cs := make([]*stats.Collector, workers)
	for i := range cs {
		c, err := stats.NewCollector(runs, b.seq.Len(), b.cfg.SeriesCount, b.cfg.BetUnit, b.cfg.RetryBudget, b.initSeed)
		if err != nil {
			return nil, 0, err
		}
		cs[i] = c
	}

	// 作一個緩衝 channel 讓 worker 依序領取 run index
	jobs := make(chan int, min(runs, 2048))
	errc := make(chan error, workers)

	bar := pb.StartNew(runs)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(c *stats.Collector) {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				rep, err := Run(b.cfg, b.seq, wheel.NewWith(b.cf, seeds[idx]))
				if err != nil {
					select {
					case errc <- err:
					default:
					}
					continue
				}
				c.Record(idx, outcome(rep))
				bar.Increment()
			}
		}(cs[w])
	}

feed:
	for i := 0; i < runs; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	select {
	case err := <-errc:
		return nil, used, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, used, err
	}

	merged, err := stats.Merge(cs)
	if err != nil {
		return nil, used, err
	}
	return merged.Done(), used, nil
}

func outcome(rep *RunReport) stats.RunOutcome {
	o := stats.RunOutcome{
		TotalProfitLoss: rep.TotalProfitLoss,
		MatchRate:       rep.AverageMatchRate,
		FirstFailurePos: -1,
		Exhausted:       rep.Exhausted,
		ColumnProfits:   rep.ColumnProfits,
	}
	if rep.FirstFailure != nil {
		o.FirstFailurePos = rep.FirstFailure.Position
	}
	return o
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// state 走全週期（不重複），再用可逆 mix63 打散
//
// 推進使用 CAS 迴圈，多個 goroutine 同時呼叫也只會各自拿到唯一的下一個 state。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()                                            // always masked
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
