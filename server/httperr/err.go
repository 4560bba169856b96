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


package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/coverlab/errs"
)

// Body 錯誤回應
type Body struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatusCode 將錯誤映射成 HTTP status code。
//   - ctx timeout/cancel → 504/408
//   - body 超過上限       → 413
//   - errs.Warn          → 400（設定或參數不合法）
//   - 其他               → 500
func StatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	}
	if e, ok := errs.AsErr(err); ok && e.ErrLv == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Errs 以 JSON 寫回錯誤；err 為 nil 時不做事。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	b := Body{Error: err.Error()}
	if e, ok := errs.AsErr(err); ok {
		b.Field = e.Field
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(StatusCode(err))
	_ = json.NewEncoder(w).Encode(b)
}

// Log 只記錄伺服器端需要關心的錯誤：5xx 記 error，408/413 記 warn，其餘 4xx 不記。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	switch status := StatusCode(err); {
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	case status == http.StatusRequestTimeout || status == http.StatusRequestEntityTooLarge:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	}
}
