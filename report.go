package coverlab

import (
	"github.com/zintix-labs/coverlab/bet"
	"github.com/zintix-labs/coverlab/series"
	"github.com/zintix-labs/coverlab/trace"
)

// RunReport 一次執行的完整報表。
//
// 累計值在 Run 時逐系列寫入；衍生欄位（AverageMatchRate、Positions、Bounded）由 Done 一次算出。
type RunReport struct {
	Bets             bet.Sequence  `json:"-" yaml:"-"`
	Positions        []PositionRow `json:"positions" yaml:"positions"`
	SeriesCount      int           `json:"series" yaml:"series"`
	RetryBudget      int           `json:"retry" yaml:"retry"`
	BetUnit          int           `json:"bet_unit" yaml:"bet_unit"`
	AttemptLimit     int           `json:"attempt_limit" yaml:"attempt_limit"`
	ColumnProfits    []int         `json:"column_profits" yaml:"column_profits"`
	TotalProfitLoss  int           `json:"total_profit_loss" yaml:"total_profit_loss"`
	TotalMatches     int           `json:"total_matches" yaml:"total_matches"`
	AverageMatchRate float64       `json:"average_match_rate" yaml:"average_match_rate"`
	Exhausted        int           `json:"exhausted_series" yaml:"exhausted_series"`
	FirstFailure     *series.Coord `json:"first_failure,omitempty" yaml:"first_failure,omitempty"`
	Bounded          *int          `json:"bounded_profit_loss,omitempty" yaml:"bounded_profit_loss,omitempty"`
	ExtractedNumbers []int         `json:"extracted_numbers,omitempty" yaml:"extracted_numbers,omitempty"`
	arena            *trace.Arena
	isDone           bool
}

// PositionRow 單一位置的軌跡與對應的注。
type PositionRow struct {
	Bet   bet.Bet `json:"bet" yaml:"bet"`
	Trace string  `json:"trace" yaml:"trace"`
}

// Done 計算衍生欄位並鎖定；重複呼叫無作用。
func (r *RunReport) Done() {
	if r.isDone {
		return
	}
	r.AverageMatchRate = r.MatchRate()

	r.Positions = make([]PositionRow, len(r.Bets))
	for i, b := range r.Bets {
		r.Positions[i] = PositionRow{Bet: b, Trace: r.arena.Row(i)}
	}

	if v, ok := r.BoundedProfitLoss(r.AttemptLimit); ok {
		r.Bounded = &v
	}
	r.isDone = true
}

// MatchRate 回傳平均每系列命中數（TotalMatches / SeriesCount），系列數為 0 時回傳 0。
func (r *RunReport) MatchRate() float64 {
	if r.SeriesCount == 0 {
		return 0
	}
	return float64(r.TotalMatches) / float64(r.SeriesCount)
}

// BoundedProfitLoss 依「位置為主、系列為次」的順序重走軌跡，
// 只累計前 limit 個非 '=' 符號的損益；'=' 直接跳過、不佔額度。
//
// 底線規則：總損益已為負，且有限次數損益比總損益更差時，改回報總損益。
// limit <= 0 代表不計算，ok 為 false。結果只取決於軌跡，可重複呼叫。
func (r *RunReport) BoundedProfitLoss(limit int) (v int, ok bool) {
	if limit <= 0 || r.arena == nil {
		return 0, false
	}
	sum, counted := 0, 0
walk:
	for pos := 0; pos < r.arena.Positions(); pos++ {
		for s := 0; s < r.arena.Series(); s++ {
			if counted >= limit {
				break walk
			}
			switch r.arena.At(pos, s) {
			case trace.Match:
				sum += series.WinUnits * r.BetUnit
			case trace.Loss:
				sum -= series.LossUnits * r.BetUnit
			default:
				continue
			}
			counted++
		}
	}
	if sum < r.TotalProfitLoss && r.TotalProfitLoss < 0 {
		sum = r.TotalProfitLoss
	}
	return sum, true
}

// Trace 回傳位置 pos 的軌跡字串。
func (r *RunReport) Trace(pos int) string {
	return r.arena.Row(pos)
}

// Symbol 回傳位置 pos 在第 s 個系列的符號。
func (r *RunReport) Symbol(pos, s int) trace.Symbol {
	return r.arena.At(pos, s)
}
