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


// Package server 組裝並啟動 coverlab 的 HTTP 實驗伺服器。
package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/server/api"
	"github.com/zintix-labs/coverlab/server/app"
	"github.com/zintix-labs/coverlab/server/netsvr"
	"github.com/zintix-labs/coverlab/server/svrcfg"
)

// New 驗證設定並組裝好路由，尚未開始監聽。
func New(sCfg *svrcfg.SvrCfg) (*netsvr.ChiAdapter, error) {
	if err := sCfg.Valid(); err != nil {
		return nil, err
	}
	svr := netsvr.NewChiServer(sCfg.Addr)
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return nil, errs.Wrap(err, "register routes")
	}
	return svr, nil
}

// Run 組裝 server 並阻塞到收到 SIGINT/SIGTERM。
//
// 設定不合法時錯誤寫到 stderr，避免 logger 本身不可用時無從得知。
func Run(sCfg *svrcfg.SvrCfg) error {
	svr, err := New(sCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(sCfg, svr)
}

// RunWithSvr 以呼叫端提供的 NetSvr 啟動；路由需已註冊（見 api.RegisterRoutes）。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("server is not ready")
	}
	sCfg.Log.Info("[coverlab] listening", slog.String("addr", sCfg.Addr))
	if err := app.NewWith(sCfg.Log, svr).Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
