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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zintix-labs/floatrand/server"
	"github.com/zintix-labs/floatrand/server/svrcfg"
)

// 取樣服務入口。設定檔可省略，旗標會覆寫檔案內容。
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := server.Run(cfg); err != nil {
		os.Exit(1)
	}
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	var (
		path    string
		logMode string
		addr    string
		workers int
	)
	flag.StringVar(&path, "config", "", "yaml config path")
	flag.StringVar(&logMode, "log-mode", "", "log mode: dev | prod | silence")
	flag.StringVar(&addr, "addr", "", "listen address, e.g. :5808")
	flag.IntVar(&workers, "worker", 0, "workers for /v1/verify")

	flag.Parse()

	sCfg := new(svrcfg.SvrCfg)
	if path != "" {
		c, err := svrcfg.Load(path)
		if err != nil {
			return nil, err
		}
		sCfg = c
	}
	if logMode != "" {
		sCfg.LogMode = logMode
	}
	if addr != "" {
		sCfg.Addr = addr
	}
	if workers > 0 {
		sCfg.Workers = workers
	}
	return sCfg, nil
}
