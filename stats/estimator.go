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


package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const confidence = 0.95

// summarize 以 gonum 計算總損益的分布統計。
func summarize(rep *BatchReport, totals []float64, rates []float64) {
	sum := rep.Summary
	n := len(totals)

	series := 0
	for _, c := range rep.Dist.Collect {
		series += c
	}
	if series > 0 {
		for i, c := range rep.Dist.Collect {
			rep.Dist.Ratio[i] = float64(c) / float64(series)
		}
	}
	for i, c := range rep.FirstFailure.ByPosition {
		if c > 0 {
			rep.FirstFailure.EarliestPos = i + 1
			break
		}
	}
	if n == 0 {
		return
	}

	sorted := slices.Clone(totals)
	slices.Sort(sorted)
	sum.WorstPL = int(sorted[0])
	sum.BestPL = int(sorted[n-1])
	sum.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	sum.Median = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	sum.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	sum.MeanMatchRate = stat.Mean(rates, nil)
	if n == 1 {
		sum.MeanPL = totals[0]
		sum.MeanCI = CI{Lo: totals[0], Hi: totals[0]}
	} else {
		sum.MeanPL, sum.StdPL = stat.MeanStdDev(totals, nil)
		sum.MeanCI = meanCI(sum.MeanPL, sum.StdPL, n, confidence)
	}

	for _, v := range totals {
		if v < 0 {
			sum.LosingRuns++
		}
	}
	sum.LosingRate, sum.LosingRateCI = proportionCICP(sum.LosingRuns, n, confidence)
}

// meanCI 以 Student t 分布估計平均數的信賴區間。
func meanCI(mean, std float64, n int, confidence float64) CI {
	if n < 2 || std == 0 || math.IsNaN(std) {
		return CI{Lo: mean, Hi: mean}
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	q := t.Quantile(1 - (1-confidence)/2)
	se := std / math.Sqrt(float64(n))
	return CI{Lo: mean - q*se, Hi: mean + q*se}
}

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}
