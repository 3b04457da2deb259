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

package sim

import (
	"slices"

	"github.com/zintix-labs/floatrand"
	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/sdk/sampler"
	"github.com/zintix-labs/floatrand/stats"
)

// Method 常態取樣方法
type Method string

const (
	MethodExact  Method = "exact"  // Box–Muller
	MethodApprox Method = "approx" // popcount + 三角分佈
	MethodSum    Method = "sum"    // 四個 uint32 加減
)

// Drawer 以 r 取一個樣本，結果統一轉成 float64
type Drawer func(r *floatrand.Rand) float64

type drawerBuilder func(bits int, mu, sigma float64) Drawer

// drawers 方法註冊表。exact 只在有 math provider 的 build 裡註冊（見 exact.go）。
var drawers = map[Method]drawerBuilder{
	MethodApprox: func(bits int, mu, sigma float64) Drawer {
		if bits == 32 {
			m, s := float32(mu), float32(sigma)
			return func(r *floatrand.Rand) float64 { return float64(r.Float32NormalApprox(m, s)) }
		}
		return func(r *floatrand.Rand) float64 { return r.Float64NormalApprox(mu, sigma) }
	},
	MethodSum: func(bits int, mu, sigma float64) Drawer {
		if bits == 32 {
			m, s := float32(mu), float32(sigma)
			return func(r *floatrand.Rand) float64 {
				return float64(sampler.NormalApproxSum(r.Source(), m, s))
			}
		}
		return func(r *floatrand.Rand) float64 { return sampler.NormalApproxSum(r.Source(), mu, sigma) }
	},
}

// Methods 回傳此 build 可用的方法（已排序）
func Methods() []Method {
	out := make([]Method, 0, len(drawers))
	for m := range drawers {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// NormalJob 常態取樣的參數
type NormalJob struct {
	Method Method
	Bits   int
	Mean   float64
	Sigma  float64
}

// Drawer 檢查參數並回傳取樣函數
func (j NormalJob) Drawer() (Drawer, error) {
	if err := checkBits(j.Bits); err != nil {
		return nil, err
	}
	if !isFinite(j.Mean) || !isFinite(j.Sigma) {
		return nil, errs.Warnf("mean and sigma must be finite, got %g, %g", j.Mean, j.Sigma)
	}
	if j.Bits == 32 && (!isFinite(float64(float32(j.Mean))) || !isFinite(float64(float32(j.Sigma)))) {
		return nil, errs.Warnf("mean and sigma overflow float32: %g, %g", j.Mean, j.Sigma)
	}
	b, ok := drawers[j.Method]
	if !ok {
		return nil, errs.NewWithExtra(errs.Warn, "normal method not available in this build", string(j.Method))
	}
	return b(j.Bits, j.Mean, j.Sigma), nil
}

func (j NormalJob) recorder(capHint int) *stats.NormalRecorder {
	return stats.NewNormalRecorder(string(j.Method), j.Bits, j.Mean, j.Sigma, capHint)
}

// RangeJob 區間取樣的參數
type RangeJob struct {
	Interval string // 區間記號，例如 "[0,1)"
	Bits     int
	Bins     int // 0 時使用 stats.DefaultBins，上限 stats.MaxBins
}

// rangePlan 為解析後的區間：取樣函數、實際端點與包含性判斷
type rangePlan struct {
	label    string
	draw     Drawer
	low      float64
	high     float64
	contains func(float64) bool
}

func (j RangeJob) plan() (*rangePlan, error) {
	if err := checkBits(j.Bits); err != nil {
		return nil, err
	}
	if j.Bins < 0 || j.Bins > stats.MaxBins {
		return nil, errs.Warnf("bins must be between 1 and %d, got %d", stats.MaxBins, j.Bins)
	}
	if j.Bits == 32 {
		return planRange[float32](j.Interval, func(r *floatrand.Rand, iv sampler.Interval[float32]) float32 {
			return r.Float32Range(iv)
		})
	}
	return planRange[float64](j.Interval, func(r *floatrand.Rand, iv sampler.Interval[float64]) float64 {
		return r.Float64Range(iv)
	})
}

// Drawer 檢查參數並回傳取樣函數
func (j RangeJob) Drawer() (Drawer, error) {
	p, err := j.plan()
	if err != nil {
		return nil, err
	}
	return p.draw, nil
}

func planRange[F sampler.Float](notation string, sample func(*floatrand.Rand, sampler.Interval[F]) F) (*rangePlan, error) {
	iv, err := sampler.ParseInterval[F](notation)
	if err != nil {
		return nil, err
	}
	low, high := iv.Resolve()
	return &rangePlan{
		label:    iv.String(),
		draw:     func(r *floatrand.Rand) float64 { return float64(sample(r, iv)) },
		low:      float64(low),
		high:     float64(high),
		contains: func(x float64) bool { return iv.Contains(F(x)) },
	}, nil
}

func checkBits(bits int) error {
	if bits != 32 && bits != 64 {
		return errs.Warnf("bits must be 32 or 64, got %d", bits)
	}
	return nil
}

func isFinite(x float64) bool {
	return x-x == 0
}
