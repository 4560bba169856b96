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

// Package trace 保存每個位置的結果軌跡。
//
// Arena 為固定數量的位置槽；每個槽是一條只能追加的符號序列，
// 第 k 個符號對應第 k 個系列。槽以位置索引存取。
package trace

// Symbol 單一位置在單一系列的結果
type Symbol byte

const (
	Match   Symbol = '.' // 命中，小額獲利
	Loss    Symbol = 'X' // 未命中或被強制判輸
	Ignored Symbol = '=' // 忽略位置，不評估
)

func (s Symbol) String() string { return string(rune(s)) }

// Arena 位置槽集合
type Arena struct {
	slots [][]byte
}

// NewArena 建立 positions 個槽，seriesHint 用於預先配置容量。
func NewArena(positions int, seriesHint int) *Arena {
	a := &Arena{slots: make([][]byte, positions)}
	for i := range a.slots {
		a.slots[i] = make([]byte, 0, max(seriesHint, 0))
	}
	return a
}

// Append 在位置 pos 追加一個符號。
func (a *Arena) Append(pos int, s Symbol) {
	a.slots[pos] = append(a.slots[pos], byte(s))
}

// Positions 位置數
func (a *Arena) Positions() int {
	return len(a.slots)
}

// Series 已完整寫入的系列數（取所有槽的最短長度）。
func (a *Arena) Series() int {
	if len(a.slots) == 0 {
		return 0
	}
	n := len(a.slots[0])
	for _, s := range a.slots[1:] {
		n = min(n, len(s))
	}
	return n
}

// At 回傳位置 pos 在第 series 個系列的符號。
func (a *Arena) At(pos, series int) Symbol {
	return Symbol(a.slots[pos][series])
}

// Row 回傳位置 pos 的整條軌跡字串。
func (a *Arena) Row(pos int) string {
	return string(a.slots[pos])
}

// Rows 回傳所有位置的軌跡字串。
func (a *Arena) Rows() []string {
	out := make([]string, len(a.slots))
	for i := range a.slots {
		out[i] = string(a.slots[i])
	}
	return out
}
