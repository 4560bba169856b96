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


// Package perf 以 runtime/pprof 包裝 CLI 執行，輸出 cpu / heap / allocs profile。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/coverlab/errs"
)

// Dir profile 輸出目錄
var Dir = "build/profiling"

// Modes 支援的 profile 模式；空字串代表不做 profiling。
var Modes = []string{"", "cpu", "heap", "allocs"}

// RunPProf 依 mode 包裝 exe；exe 的錯誤原樣回傳。
//
//	go run ./cmd/run -runs 1000 -p cpu
func RunPProf(exe func() error, mode string) error {
	switch mode {
	case "":
		return exe()
	case "cpu":
		return profileCPU(exe)
	case "heap":
		return snapshotAfter(exe, "heap", true)
	case "allocs":
		return snapshotAfter(exe, "allocs", false)
	}
	return errs.Invalid("p", "unknown pprof mode %q, want one of %q", mode, Modes)
}

func create(name string) (*os.File, error) {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create profiling dir")
	}
	f, err := os.Create(filepath.Join(Dir, name+".pprof"))
	if err != nil {
		return nil, errs.Wrap(err, "create "+name+".pprof")
	}
	return f, nil
}

func profileCPU(exe func() error) error {
	f, err := create("cpu")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// snapshotAfter 在 exe 之後寫出一次 heap 或 allocs 快照；heap 先 GC 讓 live objects 貼近現況。
func snapshotAfter(exe func() error, name string, gc bool) error {
	if err := exe(); err != nil {
		return err
	}
	if gc {
		runtime.GC()
	}
	f, err := create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.Lookup(name).WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+name+" profile")
	}
	return nil
}
