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


package api

import (
	"log/slog"

	"github.com/zintix-labs/coverlab/server/api/dev"
	"github.com/zintix-labs/coverlab/server/api/index"
	v1 "github.com/zintix-labs/coverlab/server/api/v1"
	"github.com/zintix-labs/coverlab/server/netsvr"
	"github.com/zintix-labs/coverlab/server/netsvr/middleware"
	"github.com/zintix-labs/coverlab/server/svrcfg"
)

// MaxBodyBytes request body 上限
const MaxBodyBytes = 1 << 20

// RegisterRoutes 註冊 middleware 與全部路由。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)  // 1. 註冊 middleware
	svr.Get("/", index.IndexHandlerFn) // 2. 註冊主頁
	dev.Register(svr, sCfg)            // 3. 實驗面板
	return registerV1API(svr, sCfg)    // 4. 註冊 v1 api
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.MaxBody(MaxBodyBytes))
	svr.Use(middleware.Compression)
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	h, err := v1.NewHandler(sCfg)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/run", h.Run)
		vOne.Post("/run", h.Run)
		vOne.Post("/batch", h.Batch)
		vOne.Get("/pocket/{n}", h.Pocket)
	})
	return nil
}
