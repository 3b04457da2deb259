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

package svrcfg

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/server/logger"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr           = ":5808"
	DefaultMaxSamples     = 100_000    // /v1/range、/v1/normal 單次最多回傳的樣本數
	DefaultMaxVerify      = 10_000_000 // /v1/verify 單次最多取樣數
	DefaultRequestTimeout = 5 * time.Second
	DefaultLogBuf         = 8192
)

// SvrCfg 取樣服務設定。Log 不從檔案讀取，由組裝層注入（或由 Valid 依 LogMode 建立）。
//
// YAML 範例：
//
//	addr: ":5808"
//	log_mode: prod
//	max_samples: 100000
//	max_verify: 10000000
//	workers: 4
//	request_timeout: 5s
type SvrCfg struct {
	Addr           string        `yaml:"addr"`
	LogMode        string        `yaml:"log_mode"`
	LogBuf         int           `yaml:"log_buf"`
	MaxSamples     int           `yaml:"max_samples"`
	MaxVerify      int           `yaml:"max_verify"`
	Workers        int           `yaml:"workers"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	Log   *slog.Logger         `yaml:"-"`
	async *logger.AsyncHandler // Valid 自行建立的 async handler，Close 時寫出
}

// Load 讀取 YAML 設定檔。未知欄位視為錯誤。
func Load(path string) (*SvrCfg, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err, "read server config")
	}
	return Parse(raw)
}

// Parse 解析 YAML 內容
func Parse(raw []byte) (*SvrCfg, error) {
	cfg := new(SvrCfg)
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	// 空檔案視為全部使用預設值
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.WarnWrap(err, "invalid server config", "")
	}
	return cfg, nil
}

// Valid 補上預設值並夾限到合理範圍。
//
//   - Log 為 nil 時依 LogMode 建立 async logger
//   - 1 <= Workers <= NumCPU
//   - 1 <= MaxSamples <= MaxVerify
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		mode, err := logger.ParseLogMode(sc.LogMode)
		if err != nil {
			return err
		}
		if sc.LogBuf <= 0 {
			sc.LogBuf = DefaultLogBuf
		}
		sc.Log, sc.async = logger.NewAsync(sc.LogBuf, mode)
	}

	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	if sc.MaxVerify <= 0 {
		sc.MaxVerify = DefaultMaxVerify
	}
	if sc.MaxSamples <= 0 {
		sc.MaxSamples = DefaultMaxSamples
	}
	sc.MaxSamples = min(sc.MaxSamples, sc.MaxVerify)
	if sc.Workers <= 0 {
		sc.Workers = runtime.NumCPU()
	}
	sc.Workers = min(sc.Workers, runtime.NumCPU())
	if sc.RequestTimeout <= 0 {
		sc.RequestTimeout = DefaultRequestTimeout
	}
	return nil
}

// Close 寫出 Valid 建立的 async logger 緩衝
func (sc *SvrCfg) Close() {
	if sc.async != nil {
		sc.async.Close()
	}
}
