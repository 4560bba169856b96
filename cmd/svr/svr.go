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


package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zintix-labs/coverlab/server"
	"github.com/zintix-labs/coverlab/server/logger"
	"github.com/zintix-labs/coverlab/server/svrcfg"
)

// coverlab 實驗伺服器入口，預設開啟 /dev 面板。
func main() {
	sCfg, closeLog, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	err = server.Run(sCfg)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, func(), error) {
	var (
		addr         string
		logMode      string
		maxSeries    int
		maxPositions int
		maxRuns      int
		maxWorkers   int
	)
	flag.StringVar(&addr, "addr", svrcfg.DefaultAddr, "listen address")
	flag.StringVar(&logMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&maxSeries, "max-series", svrcfg.DefaultMaxSeries, "max series per run")
	flag.IntVar(&maxPositions, "max-positions", svrcfg.DefaultMaxPositions, "max bet positions per request")
	flag.IntVar(&maxRuns, "max-runs", svrcfg.DefaultMaxRuns, "max runs per batch")
	flag.IntVar(&maxWorkers, "max-workers", 0, "max workers per batch (0 = NumCPU)")
	flag.Parse()

	mode, err := logger.ParseMode(logMode)
	if err != nil {
		return nil, nil, err
	}
	log, ah := logger.NewAsync(4096, mode)
	return &svrcfg.SvrCfg{
		Log:          log,
		Addr:         addr,
		MaxSeries:    maxSeries,
		MaxPositions: maxPositions,
		MaxRuns:      maxRuns,
		MaxWorkers:   maxWorkers,
	}, ah.Close, nil
}
