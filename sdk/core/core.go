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

package core

import "github.com/zintix-labs/coverlab/errs"

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 輪盤只需要有界整數；Uint64 保留給種子派生與測試比對。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// Factory 以 seed 建立 PRNG。
//
// 合約：同一實作下 New(seed) 必須是決定性的，相同 seed 產生相同序列。
// 重播（replay）與批次模擬的種子派生都依賴這一點。
type Factory interface {
	New(int64) PRNG
}

// Kind 為可選的 PRNG 演算法。
type Kind string

const (
	KindPCG64 Kind = "pcg64"
	KindPCG32 Kind = "pcg32"
)

type pcg64Factory struct{}

func (pcg64Factory) New(seed int64) PRNG { return newPCG64WithSeed(seed) }

type pcg32Factory struct{}

func (pcg32Factory) New(seed int64) PRNG { return newPCG32WithSeed(seed) }

// Default 回傳預設工廠（PCG64）。
func Default() Factory {
	return pcg64Factory{}
}

// FactoryOf 依名稱取得工廠，空字串視為預設。
func FactoryOf(k Kind) (Factory, error) {
	switch k {
	case "", KindPCG64:
		return pcg64Factory{}, nil
	case KindPCG32:
		return pcg32Factory{}, nil
	default:
		return nil, errs.Invalid("rng", "unknown rng kind %q", string(k))
	}
}

// Core 封裝 PRNG，並提供常用取樣方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}
