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

// Package wheel 提供單零輪盤的開號來源（SpinSource）。
//
// 引擎唯一的隨機性來自 SpinSource。來源有狀態、只供單一 goroutine 使用；
// 併發執行的多個模擬必須各自持有獨立 seed 的來源。
package wheel

import (
	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/sdk/core"
)

// Pockets 單零輪盤的格數（0..36）。
const Pockets = 37

// SpinSource 每次呼叫回傳 [0,36] 均勻分布的一個整數。
type SpinSource interface {
	Spin() int
}

// Wheel 以 core.Core 的有界整數取樣實作 SpinSource。
type Wheel struct {
	core *core.Core
	seed int64
}

// New 以預設 PRNG 與指定 seed 建立輪盤。
func New(seed int64) *Wheel {
	return NewWith(core.Default(), seed)
}

// NewWith 以指定 PRNG 工廠建立輪盤。
func NewWith(f core.Factory, seed int64) *Wheel {
	return &Wheel{core: core.New(f.New(seed)), seed: seed}
}

func (w *Wheel) Spin() int {
	return w.core.IntN(Pockets)
}

// Seed 回傳建立時的 seed，用於回報與重現。
func (w *Wheel) Seed() int64 {
	return w.seed
}

// Snapshot 取得目前 PRNG 狀態。
func (w *Wheel) Snapshot() ([]byte, error) {
	b, err := w.core.Snapshot()
	if err != nil {
		return nil, errs.Wrap(err, "wheel snapshot failed")
	}
	return b, nil
}

// Restore 還原 PRNG 狀態，之後的開號序列與快照當下一致。
func (w *Wheel) Restore(b []byte) error {
	if err := w.core.Restore(b); err != nil {
		return errs.Wrap(err, "wheel restore failed")
	}
	return nil
}

// Scripted 依序重播給定的號碼，用完後從頭循環。
type Scripted struct {
	pockets []int
	pos     int
}

// NewScripted 建立重播來源；號碼必須在 0..36 且至少一個。
func NewScripted(pockets ...int) (*Scripted, error) {
	if len(pockets) == 0 {
		return nil, errs.Invalid("spins", "scripted spins must not be empty")
	}
	for i, p := range pockets {
		if p < 0 || p >= Pockets {
			return nil, errs.Invalid("spins", "spin %d out of range: %d", i+1, p)
		}
	}
	cp := make([]int, len(pockets))
	copy(cp, pockets)
	return &Scripted{pockets: cp}, nil
}

func (s *Scripted) Spin() int {
	v := s.pockets[s.pos]
	s.pos = (s.pos + 1) % len(s.pockets)
	return v
}
