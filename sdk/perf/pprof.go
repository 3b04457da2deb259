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

// Package perf 包裝 runtime/pprof，讓 CLI 的批次取樣可以順便產出 profile。
//
// Usage like:
//
//	go run ./cmd/run -mode normal -method exact -n 50000000 -pprof cpu
//	go tool pprof build/profiling/cpu.pprof
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/floatrand/errs"
)

// DefaultDir pprof 檔案預設寫入路徑
const DefaultDir = "build/profiling"

// Mode profile 種類
type Mode string

const (
	ModeNone   Mode = ""
	ModeCPU    Mode = "cpu"
	ModeHeap   Mode = "heap"
	ModeAllocs Mode = "allocs"
)

// ParseMode 解析旗標字串
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeNone, ModeCPU, ModeHeap, ModeAllocs:
		return m, nil
	default:
		return ModeNone, errs.Warnf("unknown pprof mode %q (want cpu|heap|allocs)", s)
	}
}

// Run 依 mode 執行 exe 並把 profile 寫到 dir；mode 為空時只執行 exe。
// exe 一定會被執行；回傳的錯誤只來自 profile 的寫出。
func Run(exe func(), mode Mode, dir string) error {
	if mode == ModeNone {
		exe()
		return nil
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		exe()
		return errs.Wrap(err, "create pprof dir")
	}
	path := filepath.Join(dir, string(mode)+".pprof")

	switch mode {
	case ModeCPU:
		return cpu(exe, path)
	case ModeHeap:
		// 先執行目標邏輯，GC 後拍一次 in-use 快照
		exe()
		runtime.GC()
		return writeProfile("heap", path)
	default:
		// allocs 為累積配置，需搭配 -alloc_space / -alloc_objects 查看
		exe()
		return writeProfile("allocs", path)
	}
}

func cpu(exe func(), path string) error {
	f, err := os.Create(path)
	if err != nil {
		exe()
		return errs.Wrap(err, "create cpu profile")
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		exe()
		return errs.Wrap(err, "start cpu profile")
	}
	defer pprof.StopCPUProfile()

	exe()
	return nil
}

func writeProfile(name string, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return errs.Fatalf("profile %s not found", name)
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create "+name+" profile")
	}
	defer f.Close()
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+name+" profile")
	}
	return nil
}
