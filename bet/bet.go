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

// Package bet 定義覆蓋下注（coverage bet）與下注序列。
//
// 一個 Bet 標記兩個號碼；開出其中之一即為命中（coverage match）。
// 哨兵值 (-1,-1) 代表「忽略」：該位置不評估，只在軌跡上留下 '='。
package bet

import (
	"fmt"
	"slices"

	"github.com/zintix-labs/coverlab/errs"
)

const (
	MinPocket = 0
	MaxPocket = 36

	// IgnoreToken 為檔案格式中的忽略標記。
	IgnoreToken = "ignora"
)

// Bet 為不可變的值型別，相等性即結構相等。
type Bet struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// Ignore 哨兵值
var Ignore = Bet{A: -1, B: -1}

// New 接受任意整數對；範圍檢查屬於解析邊界的責任。
func New(a, b int) Bet {
	return Bet{A: a, B: b}
}

func (b Bet) IsIgnored() bool {
	return b.A == -1 && b.B == -1
}

// Matches 回報開出號碼 n 是否命中本注。
func (b Bet) Matches(n int) bool {
	return n == b.A || n == b.B
}

// String 回傳檔案格式的一行："a b" 或 ignora
func (b Bet) String() string {
	if b.IsIgnored() {
		return IgnoreToken
	}
	return fmt.Sprintf("%d %d", b.A, b.B)
}

// InRange 回報是否為可參與模擬的注（兩碼皆在 0..36，或為哨兵）。
func (b Bet) InRange() bool {
	if b.IsIgnored() {
		return true
	}
	return inPocket(b.A) && inPocket(b.B)
}

func inPocket(n int) bool {
	return n >= MinPocket && n <= MaxPocket
}

// Sequence 為有序、固定長度的下注序列；位置從 0 起算，整個模擬期間不變。
type Sequence []Bet

func (s Sequence) Len() int { return len(s) }

// Validate 解析邊界用的檢查：序列非空且每注都在 0..36（或為哨兵）。
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return errs.Invalid("bets", "bet sequence is empty")
	}
	for i, b := range s {
		if !b.InRange() {
			return errs.Invalid("bets", "bet at position %d out of range: (%d,%d)", i+1, b.A, b.B)
		}
	}
	return nil
}

// Active 回傳非忽略位置的數量。
func (s Sequence) Active() int {
	n := 0
	for _, b := range s {
		if !b.IsIgnored() {
			n++
		}
	}
	return n
}

func Equal(a, b Sequence) bool {
	return slices.Equal(a, b)
}
