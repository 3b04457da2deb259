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

// Package sim 批次取樣驅動：把 N 次取樣分給多個 worker，每個 worker 持有獨立種子的產生器，
// 結果交給 stats 產出報表。
package sim

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/floatrand"
	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/sdk/core"
	"github.com/zintix-labs/floatrand/stats"
)

// batch 每批取樣數；批與批之間檢查 ctx 並推進進度條
const batch = 4096

// Simulator 以多個產生器平行取樣並統計。
//
// 同一個 Simulator 以相同 seed 建立時，相同參數（含 workers）的結果可重現。
// 不可併發呼叫同一個 Simulator 的方法。
type Simulator struct {
	factory   core.PRNGFactory
	initSeed  int64
	seedmaker *seedMaker
	showpb    bool
}

// New 以預設 PRNG 與 seed 建立 Simulator
func New(seed int64) *Simulator {
	return NewWithFactory(core.Default(), seed)
}

// NewWithFactory 以指定 PRNG 工廠建立 Simulator
func NewWithFactory(f core.PRNGFactory, seed int64) *Simulator {
	return &Simulator{
		factory:   f,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
	}
}

// ShowProgress 設定是否在 stderr 顯示進度條
func (s *Simulator) ShowProgress(on bool) *Simulator {
	s.showpb = on
	return s
}

// Seed 回傳初始種子
func (s *Simulator) Seed() int64 {
	return s.initSeed
}

// Normal 平行取樣 n 次常態分佈並回傳報表與用時。
func (s *Simulator) Normal(ctx context.Context, job NormalJob, n int, workers int) (*stats.NormalReport, time.Duration, error) {
	draw, err := job.Drawer()
	if err != nil {
		return nil, 0, err
	}
	if err := checkRun(n, workers); err != nil {
		return nil, 0, err
	}
	workers = min(workers, n)

	rs := make([]*stats.NormalRecorder, workers)
	for i := range rs {
		rs[i] = job.recorder(share(n, workers, i))
	}
	used, err := s.run(ctx, n, workers, draw, func(i int, v float64) { rs[i].Record(v) })
	if err != nil {
		return nil, used, err
	}
	merged, err := stats.MergeNormalRecorder(rs)
	if err != nil {
		return nil, used, err
	}
	return merged.Done(), used, nil
}

// Range 平行取樣 n 次區間均勻分佈並回傳報表與用時。
func (s *Simulator) Range(ctx context.Context, job RangeJob, n int, workers int) (*stats.UniformReport, time.Duration, error) {
	p, err := job.plan()
	if err != nil {
		return nil, 0, err
	}
	if err := checkRun(n, workers); err != nil {
		return nil, 0, err
	}
	workers = min(workers, n)
	bins := job.Bins
	if bins == 0 {
		bins = stats.DefaultBins
	}

	rs := make([]*stats.UniformRecorder, workers)
	for i := range rs {
		if rs[i], err = stats.NewUniformRecorder(p.label, job.Bits, p.low, p.high, bins, p.contains); err != nil {
			return nil, 0, err
		}
	}
	used, err := s.run(ctx, n, workers, p.draw, func(i int, v float64) { rs[i].Record(v) })
	if err != nil {
		return nil, used, err
	}
	merged, err := stats.MergeUniformRecorder(rs)
	if err != nil {
		return nil, used, err
	}
	return merged.Done(), used, nil
}

// Sample 以單一產生器連續取 n 個樣本（單線，適合小量輸出）。
func Sample(ctx context.Context, r *floatrand.Rand, draw Drawer, n int) ([]float64, error) {
	if n < 1 {
		return nil, errs.NewWarn("n must > 0")
	}
	out := make([]float64, n)
	for i := range out {
		if i%batch == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errs.Wrap(err, "sample cancelled")
			}
		}
		out[i] = draw(r)
	}
	return out, nil
}

// run 啟動 workers 個 goroutine，第 i 個以獨立產生器取 share(n, workers, i) 個樣本並交給 record(i, v)。
func (s *Simulator) run(ctx context.Context, n int, workers int, draw Drawer, record func(int, float64)) (time.Duration, error) {
	rands := make([]*floatrand.Rand, workers)
	for i := range rands {
		rands[i] = floatrand.With(core.New(s.factory.New(s.seedmaker.next())))
	}

	bar := pb.New(n)
	if !s.showpb {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	var cancelled atomic.Bool
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			r := rands[i]
			left := share(n, workers, i)
			for left > 0 {
				if ctx.Err() != nil {
					cancelled.Store(true)
					return
				}
				m := min(left, batch)
				for range m {
					record(i, draw(r))
				}
				left -= m
				bar.Add(m)
			}
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if cancelled.Load() {
		return used, errs.Wrap(ctx.Err(), "simulation cancelled")
	}
	return used, nil
}

// share 回傳第 i 個 worker 分到的樣本數：n/workers，餘數分給前幾個
func share(n, workers, i int) int {
	q, r := n/workers, n%workers
	if i < r {
		return q + 1
	}
	return q
}

func checkRun(n, workers int) error {
	if n < 1 {
		return errs.NewWarn("n must > 0")
	}
	if workers < 1 {
		return errs.NewWarn("workers must > 0")
	}
	return nil
}

const mask63 = uint64(1<<63) - 1

// seedMaker 由初始種子推導每個 worker 的種子
type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 以 CAS 推進全週期 LCG（mod 2^63），回傳經 mix63 打散的非負種子。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next))
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
