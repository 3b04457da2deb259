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
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	v1 "github.com/zintix-labs/floatrand/server/api/v1"
	"github.com/zintix-labs/floatrand/server/netsvr"
	"github.com/zintix-labs/floatrand/server/netsvr/middleware"
	"github.com/zintix-labs/floatrand/server/svrcfg"
	"github.com/zintix-labs/floatrand/sim"
)

// RegisterRoutes 註冊 middleware、主頁與 v1 api。sCfg 必須已通過 Valid。
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)
	registerIndex(svr)
	return registerV1API(svr, sCfg)
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", indexHandler)
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	h, err := v1.NewSampleHandler(sCfg)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/range", h.Range)
		vOne.Get("/normal", h.Normal)
		vOne.Get("/verify", h.Verify)

		vOne.Post("/range", h.Range)
		vOne.Post("/normal", h.Normal)
		vOne.Post("/verify", h.Verify)
	})
	return nil
}

func indexHandler(w http.ResponseWriter, _ *http.Request) {
	methods := make([]string, 0, 3)
	for _, m := range sim.Methods() {
		methods = append(methods, string(m))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, `floatrand sampling service

GET|POST /v1/range   interval=[0,1) bits=32|64 n=1 seed=
GET|POST /v1/normal  method=%[1]s mean=0 sigma=1 bits=32|64 n=1 seed=
GET|POST /v1/verify  (normal params) n=10000 seed=
GET|POST /v1/verify  interval=... bins=20 n=10000 seed=   (POST: ?kind=range)

normal methods in this build: %[1]s
`, strings.Join(methods, "|"))
}
