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

// Package corefmt 放置共用的輸出格式工具：PRNG 狀態的文字編碼、對齊表格與可讀 YAML。
package corefmt

import (
	"encoding/base64"

	"github.com/zintix-labs/coverlab/errs"
)

// EncodeState 把 PRNG 快照轉成可放進 URL / JSON 的文字（base64url, 無 padding）。
func EncodeState(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeState 為 EncodeState 的反向；格式錯誤屬於呼叫端輸入問題（Warn）。
func DecodeState(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Invalid("state", "decode state failed: %v", err)
	}
	return b, nil
}
