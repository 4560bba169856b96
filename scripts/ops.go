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
)

// 用法: go run ./scripts <task>
var tasks = map[string]func() error{
	"test":        runTest,
	"test-detail": runTestDetail,
	"sample":      runSample,
	"batch":       runBatchSample,
}

func main() {
	if len(os.Args) < 2 {
		PrintYellow("Usage: go run ./scripts [test|test-detail|sample|batch]")
		os.Exit(1)
	}
	task, ok := tasks[os.Args[1]]
	if !ok {
		PrintYellow(fmt.Sprintf("Unknown task: %s", os.Args[1]))
		os.Exit(1)
	}
	if err := task(); err != nil {
		PrintRed(err.Error())
		os.Exit(1)
	}
}
