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

// Package server 是取樣服務的組裝器與啟動入口。
package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/server/api"
	"github.com/zintix-labs/floatrand/server/app"
	"github.com/zintix-labs/floatrand/server/netsvr"
	"github.com/zintix-labs/floatrand/server/svrcfg"
)

// Run 驗證設定、以 chi 建立 HTTP server、註冊路由並阻塞到服務停止。
//
// 所有依賴都經由 SvrCfg 注入；Run 不讀檔、不看環境變數（讀檔由 cmd/svr 以 svrcfg.Load 完成）。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// logger 可能還不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer sCfg.Close()
	svr := netsvr.NewChiServer(sCfg.Addr, sCfg.RequestTimeout)
	sCfg.Log.Info("[floatrand] listening on http://localhost" + svr.Address())
	return serve(sCfg, svr)
}

// RunWithSvr 與 Run 相同，但使用呼叫端注入的 NetSvr（自訂 listener、TLS、timeout 或其他框架的 adapter）。
//
// svr 必須非 nil；若是 ChiAdapter 則要求 Ready()。這一層只負責註冊 routes 並啟動 app。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer sCfg.Close()
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("default server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}
	sCfg.Log.Info("[floatrand] listening")
	return serve(sCfg, svr)
}

func serve(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes failed", slog.Any("err", err))
		return err
	}
	if err := app.NewWith(svr).Run(); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	sCfg.Log.Info("[floatrand] stopped")
	return nil
}
