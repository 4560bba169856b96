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

// Package errs 定義 coverlab 統一的分級錯誤。
//
// 分級約定：
//   - Warn ：呼叫端的設定或參數不合法（例如 betUnit <= 0、空的下注序列），模擬不會開始。
//   - Fatal：系統層問題（檔案讀寫、序列化失敗），呼叫端通常無法自行修正。
//   - Log  ：只需記錄、不影響結果。
//
// 輸注不是錯誤：一個系列輸光是模擬結果，會記在 RunReport 裡，不會走到這個包。
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
// Field 指出出錯的設定欄位（若有）；Cause 可串接下層錯誤（wrap）。
type E struct {
	Message string
	Field   string
	Cause   error
	ErrLv   ErrLevel
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Field != "" {
		base += " | field: " + e.Field
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// Invalid 建立設定違規錯誤（Warn），field 為違規的設定名稱。
func Invalid(field string, format string, a ...any) *E {
	return &E{Message: fmt.Sprintf(format, a...), Field: field, ErrLv: Warn}
}

// Wrap 以訊息包裝底層錯誤。
//
// ErrLevel 規則：
//   - 若 cause 已經是 *E，則沿用其 ErrLv（保持原本嚴重度）。
//   - 否則（標準庫或三方依賴錯誤）一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	errLv := Fatal
	field := ""
	if e, ok := AsErr(cause); ok {
		errLv = e.ErrLv
		field = e.Field
	}
	return &E{Message: msg, Field: field, Cause: cause, ErrLv: errLv}
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// IsInvalid 回報 err 是否為設定違規（Warn 級）。
func IsInvalid(err error) bool {
	e, ok := AsErr(err)
	return ok && e.ErrLv == Warn
}
