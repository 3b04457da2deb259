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

package stats

import (
	"math"

	"github.com/zintix-labs/floatrand/errs"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultBins 區間均勻性檢定的預設分箱數
	DefaultBins = 20
	// MaxBins 分箱數上限；每個 worker 各持有一份計數
	MaxBins = 10_000
)

// UniformReport 區間取樣的統計結果
type UniformReport struct {
	Interval   string  `json:"Interval"`
	Bits       int     `json:"Bits"`
	Low        float64 `json:"Low"`
	High       float64 `json:"High"`
	Samples    int     `json:"Samples"`
	Min        float64 `json:"Min"`
	Max        float64 `json:"Max"`
	Violations int     `json:"Violations"` // 落在區間外（依包含性判斷）的樣本數
	NonFinite  int     `json:"NonFinite"`
	HitLow     int     `json:"HitLow"`  // 剛好等於 Low 的樣本數
	HitHigh    int     `json:"HitHigh"` // 剛好等於 High 的樣本數
	Counts     []int   `json:"Counts"`
	ChiSquare  float64 `json:"ChiSquare"`
	PValue     float64 `json:"PValue"`
	isDone     bool
}

// UniformRecorder 收集區間樣本的分箱計數。
//
// 分箱以半寬計算 (x/2 - low/2) / (high/2 - low/2)，所以 [MIN, MAX] 這種寬度溢位的區間也能分箱。
type UniformRecorder struct {
	label    string
	bits     int
	low      float64
	high     float64
	contains func(float64) bool
	counts   []int
	samples  int
	min      float64
	max      float64
	viol     int
	nonFin   int
	hitLow   int
	hitHigh  int
}

// NewUniformRecorder 建立 recorder。contains 判斷樣本是否合法（通常是 Interval.Contains）。
func NewUniformRecorder(label string, bits int, low, high float64, bins int, contains func(float64) bool) (*UniformRecorder, error) {
	if bins < 1 || bins > MaxBins {
		return nil, errs.Warnf("bins must be between 1 and %d, got %d", MaxBins, bins)
	}
	if !(low <= high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return nil, errs.Warnf("uniform recorder: invalid range [%g, %g]", low, high)
	}
	if contains == nil {
		contains = func(x float64) bool { return x >= low && x <= high }
	}
	if low == high {
		bins = 1
	}
	return &UniformRecorder{
		label:    label,
		bits:     bits,
		low:      low,
		high:     high,
		contains: contains,
		counts:   make([]int, bins),
		min:      math.Inf(1),
		max:      math.Inf(-1),
	}, nil
}

// Record 紀錄一筆樣本
func (r *UniformRecorder) Record(x float64) {
	r.samples++
	if math.IsNaN(x) || math.IsInf(x, 0) {
		r.nonFin++
		return
	}
	if !r.contains(x) {
		r.viol++
		return
	}
	r.min = min(r.min, x)
	r.max = max(r.max, x)
	if x == r.low {
		r.hitLow++
	}
	if x == r.high {
		r.hitHigh++
	}
	r.counts[r.bin(x)]++
}

func (r *UniformRecorder) bin(x float64) int {
	n := len(r.counts)
	if n == 1 {
		return 0
	}
	width := 0.5*r.high - 0.5*r.low
	pos := (0.5*x - 0.5*r.low) / width
	i := int(pos * float64(n))
	return min(max(i, 0), n-1)
}

// MergeUniformRecorder 合併多個設定相同的 recorder。
func MergeUniformRecorder(rs []*UniformRecorder) (*UniformRecorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewWarn("no recorder to merge")
	}
	base := rs[0]
	m := &UniformRecorder{
		label:    base.label,
		bits:     base.bits,
		low:      base.low,
		high:     base.high,
		contains: base.contains,
		counts:   make([]int, len(base.counts)),
		min:      math.Inf(1),
		max:      math.Inf(-1),
	}
	for _, r := range rs {
		if r.low != base.low || r.high != base.high || len(r.counts) != len(base.counts) || r.bits != base.bits {
			return nil, errs.NewWarn("uniform recorders must share range, bits and bins")
		}
		for i, c := range r.counts {
			m.counts[i] += c
		}
		m.samples += r.samples
		m.viol += r.viol
		m.nonFin += r.nonFin
		m.hitLow += r.hitLow
		m.hitHigh += r.hitHigh
		m.min = min(m.min, r.min)
		m.max = max(m.max, r.max)
	}
	return m, nil
}

// Done 產出報表
func (r *UniformRecorder) Done() *UniformReport {
	rep := &UniformReport{
		Interval:   r.label,
		Bits:       r.bits,
		Low:        r.low,
		High:       r.high,
		Samples:    r.samples,
		Violations: r.viol,
		NonFinite:  r.nonFin,
		HitLow:     r.hitLow,
		HitHigh:    r.hitHigh,
		Counts:     append([]int(nil), r.counts...),
	}
	if !math.IsInf(r.min, 1) {
		rep.Min, rep.Max = r.min, r.max
	}
	rep.ChiSquare, rep.PValue = ChiSquareUniform(rep.Counts)
	rep.Done()
	return rep
}

func (u *UniformReport) Done() {
	u.isDone = true
}

// Ok 沒有越界、沒有非有限值，且均勻性檢定在 alpha 下不拒絕。
func (u *UniformReport) Ok(alpha float64) bool {
	return u.Violations == 0 && u.NonFinite == 0 && u.PValue >= alpha
}

// ChiSquareUniform 對分箱計數做「各箱機率相等」的卡方適合度檢定，回傳統計量與 p 值。
//
// 箱數少於 2 或總數為 0 時沒有自由度，回傳 (0, 1)。
func ChiSquareUniform(counts []int) (chi, p float64) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if len(counts) < 2 || total == 0 {
		return 0, 1
	}
	expected := float64(total) / float64(len(counts))
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return chi, dist.Survival(chi)
}
