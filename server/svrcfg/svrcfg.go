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

package svrcfg

import (
	"log/slog"
	"runtime"
	"strings"

	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/server/logger"
)

const (
	DefaultAddr      = ":5808"
	DefaultMaxSeries = 1_000
	DefaultMaxRuns   = 10_000

	DefaultMaxPositions = 5_000
)

// SvrCfg 伺服器組裝所需的全部依賴與資源上限。
type SvrCfg struct {
	Log          *slog.Logger
	Addr         string
	MaxSeries    int // 單次 run 的系列數上限
	MaxPositions int // 下注序列的位置數上限
	MaxRuns      int // 單次 batch 的執行次數上限
	MaxWorkers   int // 單次 batch 的 worker 上限
}

// Valid 補齊預設值並檢查設定，logger 缺省時使用 dev 模式的 async logger。
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	if !strings.Contains(sc.Addr, ":") {
		return errs.Invalid("addr", "address must contain a port, got %q", sc.Addr)
	}
	if sc.MaxSeries <= 0 {
		sc.MaxSeries = DefaultMaxSeries
	}
	if sc.MaxPositions <= 0 {
		sc.MaxPositions = DefaultMaxPositions
	}
	if sc.MaxRuns <= 0 {
		sc.MaxRuns = DefaultMaxRuns
	}
	// 1 <= MaxWorkers <= NumCPU
	if sc.MaxWorkers <= 0 {
		sc.MaxWorkers = runtime.NumCPU()
	}
	sc.MaxWorkers = min(runtime.NumCPU(), sc.MaxWorkers)
	return nil
}
