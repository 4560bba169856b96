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


// Package logger 組裝伺服器用的 slog logger。
//
// 引擎本身不寫 log；只有 HTTP 邊界層（access log、handler 錯誤）會用到這裡。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/coverlab/errs"
)

// LogMode 輸出模式
type LogMode uint8

const (
	ModeDev     LogMode = iota // text / stderr / debug
	ModeProd                   // json / stdout / info
	ModeSilence                // 全部丟棄
)

// ParseMode 解析 "dev"、"prod"、"silence"（不分大小寫）。
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence", "silent":
		return ModeSilence, nil
	}
	return ModeDev, errs.Invalid("log-mode", "unknown log mode %q", s)
}

// NewDefaultLogger 同步 logger
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode))
}

// NewAsync 建立非阻塞 logger，並回傳 handler 以便結束時 Close。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode), buf)
	return slog.New(ah), ah
}

// AsyncHandler 把 Record 丟進 buffer 由背景 goroutine 寫出。
// buffer 滿或已 Close 時直接丟棄並計數，Handle 永遠不阻塞 request。
type AsyncHandler struct {
	next slog.Handler
	d    *dispatcher
}

type dispatcher struct {
	ch      chan item
	closed  chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type item struct {
	ctx     context.Context
	rec     slog.Record
	handler slog.Handler
}

// NewAsyncHandler next 為 nil 時使用 dev handler；buf <= 0 時為 1024。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev)
	}
	if buf <= 0 {
		buf = 1024
	}
	d := &dispatcher{
		ch:     make(chan item, buf),
		closed: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.loop()
	return &AsyncHandler{next: next, d: d}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.d != nil
}

// Dropped 回傳被丟棄的筆數
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.d.dropped.Load()
}

// Close 停止接收新 log，寫完 buffer 內剩餘的紀錄後返回。
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.d.once.Do(func() { close(h.d.closed) })
	h.d.wg.Wait()
}

func (d *dispatcher) loop() {
	defer d.wg.Done()
	for {
		select {
		case it := <-d.ch:
			it.handle()
		case <-d.closed:
			for {
				select {
				case it := <-d.ch:
					it.handle()
				default:
					return
				}
			}
		}
	}
}

func (it item) handle() {
	if it.handler != nil {
		_ = it.handler.Handle(it.ctx, it.rec)
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	select {
	case <-h.d.closed:
		h.d.dropped.Add(1)
		return nil
	default:
	}
	// Record 內含可變的 attr 切片，跨 goroutine 前必須 Clone
	it := item{ctx: ctx, rec: r.Clone(), handler: h.next}
	select {
	case h.d.ch <- it:
	default:
		h.d.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), d: h.d}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), d: h.d}
}

func buildHandler(mode LogMode) slog.Handler {
	switch mode {
	case ModeProd:
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, nil)
	default:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
