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


package netsvr

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// ChiAdapter 以 chi 實作 NetSvr。
type ChiAdapter struct {
	router chi.Router
	server *http.Server
	addr   string
}

// NewChiServer 建立監聽 addr 的 ChiAdapter。
//
// 批次模擬可能跑上數秒，WriteTimeout 比一般 API 寬鬆。
func NewChiServer(addr string) *ChiAdapter {
	cr := chi.NewRouter()
	return &ChiAdapter{
		router: cr,
		server: &http.Server{
			Addr:              addr,
			Handler:           cr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		addr: addr,
	}
}

func (c *ChiAdapter) Ready() bool {
	return c != nil && c.router != nil && c.server != nil &&
		strings.Contains(c.addr, ":") && c.server.Handler == c.router
}

// Run 阻塞直到 server 關閉；正常 Shutdown 不視為錯誤。
func (c *ChiAdapter) Run() error {
	if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (c *ChiAdapter) Shutdown(ctx context.Context) error {
	return c.server.Shutdown(ctx)
}

// Handler 回傳根 router，方便以 httptest 直接測試。
func (c *ChiAdapter) Handler() http.Handler {
	return c.router
}

func (c *ChiAdapter) Use(mw func(http.Handler) http.Handler) {
	c.router.Use(mw)
}

func (c *ChiAdapter) Get(path string, h http.HandlerFunc) {
	c.router.Get(path, h)
}

func (c *ChiAdapter) Post(path string, h http.HandlerFunc) {
	c.router.Post(path, h)
}

func (c *ChiAdapter) Group(path string, fn func(NetRouter)) {
	c.router.Route(path, func(r chi.Router) {
		fn(&ChiAdapter{router: r})
	})
}

func (c *ChiAdapter) Address() string {
	return c.addr
}

// URLParam 取得路徑參數，例如 /pocket/{n} 的 n。
func URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
