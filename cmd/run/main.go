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
	"fmt"
	"os"

	"github.com/zintix-labs/coverlab/sdk/perf"
)

// 範例：
//
//	go run ./cmd/run -bets serie.txt -series 1 -amount 70 -limit 10
//	go run ./cmd/run -preset batch -runs 5000 -worker 8 -format yaml
//	cat nuova.txt | go run ./cmd/run -bets serie.txt -stdin
func main() {
	cfg := bindVar()
	if err := perf.RunPProf(cfg.execute, cfg.pprofmode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
