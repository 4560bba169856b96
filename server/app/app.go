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


// Package app 管理長期運行元件的啟動與優雅關閉。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownTimeout 優雅關閉的等待上限
const ShutdownTimeout = 5 * time.Second

// App 同時啟動所有 Component；收到 SIGINT/SIGTERM 或任一 Component 結束時關閉全部。
type App struct {
	comps []Component
	log   *slog.Logger
}

// New 建立 App，log 為 nil 時關閉錯誤只會被忽略。
func New(log *slog.Logger) *App { return &App{log: log} }

// NewWith 建立並註冊多個 Component。
func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// Run 阻塞直到收到終止信號（回傳 nil）或任一 Component 返回（回傳其錯誤）。
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext 與 Run 相同，但以 ctx 取代 OS 信號。
func (a *App) RunContext(ctx context.Context) error {
	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}
	a.shutdown(ShutdownTimeout)
	return err
}

func (a *App) shutdown(td time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), td)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) && a.log != nil {
			a.log.Error("app.shutdown", slog.Any("err", err))
		}
	}
}
