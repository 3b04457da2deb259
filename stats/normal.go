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
	"slices"

	"github.com/zintix-labs/floatrand/errs"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// 標準常態分佈落在 1σ、(1σ,2σ]、(2σ,3σ] 的理論百分比，以及預設容許誤差（百分點）。
var (
	NormalBandsExpected  = [3]float64{68.27, 27.18, 4.28}
	NormalBandsTolerance = 4.0
)

// NormalReport 常態取樣的統計結果
type NormalReport struct {
	Method     string     `json:"Method"`
	Bits       int        `json:"Bits"`
	Mean       float64    `json:"Mean"`  // 目標平均
	Sigma      float64    `json:"Sigma"` // 目標標準差
	Samples    int        `json:"Samples"`
	SampleMean float64    `json:"SampleMean"`
	SampleStd  float64    `json:"SampleStd"`
	Bands      [3]float64 `json:"Bands"`   // 百分比：1σ、(1σ,2σ]、(2σ,3σ]
	Outside    float64    `json:"Outside"` // 百分比：超過 3σ
	NonFinite  int        `json:"NonFinite"`
	KS         float64    `json:"KS"`         // 與 N(Mean, Sigma²) 的 Kolmogorov–Smirnov 距離
	KSCritical float64    `json:"KSCritical"` // 95% 臨界值 1.358/√n
	BandsOK    bool       `json:"BandsOK"`
	isDone     bool
}

// NormalRecorder 收集常態樣本，Done 時一次性計算統計量。
//
// 不可併發寫入；平行取樣時每個 worker 持有一個，最後用 MergeNormalRecorder 合併。
type NormalRecorder struct {
	method string
	bits   int
	mean   float64
	sigma  float64
	values []float64
}

func NewNormalRecorder(method string, bits int, mean, sigma float64, capHint int) *NormalRecorder {
	return &NormalRecorder{
		method: method,
		bits:   bits,
		mean:   mean,
		sigma:  sigma,
		values: make([]float64, 0, max(capHint, 0)),
	}
}

// Record 紀錄一筆樣本
func (r *NormalRecorder) Record(v float64) {
	r.values = append(r.values, v)
}

// MergeNormalRecorder 合併多個參數相同的 recorder。
func MergeNormalRecorder(rs []*NormalRecorder) (*NormalRecorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewWarn("no recorder to merge")
	}
	total := 0
	for _, r := range rs {
		if r.method != rs[0].method || r.bits != rs[0].bits || r.mean != rs[0].mean || r.sigma != rs[0].sigma {
			return nil, errs.NewWarn("normal recorders must share method, bits, mean and sigma")
		}
		total += len(r.values)
	}
	m := NewNormalRecorder(rs[0].method, rs[0].bits, rs[0].mean, rs[0].sigma, total)
	for _, r := range rs {
		m.values = append(m.values, r.values...)
	}
	return m, nil
}

// Done 產出報表。會對內部樣本排序。
func (r *NormalRecorder) Done() *NormalReport {
	rep := &NormalReport{
		Method:  r.method,
		Bits:    r.bits,
		Mean:    r.mean,
		Sigma:   r.sigma,
		Samples: len(r.values),
	}
	finite := r.values[:0:0]
	for _, v := range r.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			rep.NonFinite++
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == len(r.values) {
		finite = r.values
	}
	rep.fill(finite)
	rep.Done()
	return rep
}

// Done 鎖定報表並計算衍生欄位
func (n *NormalReport) Done() {
	if n.isDone {
		return
	}
	n.BandsOK = n.NonFinite == 0 && n.Samples > 0 && BandsWithin(n.Bands, NormalBandsExpected, NormalBandsTolerance)
	n.isDone = true
}

func (n *NormalReport) fill(values []float64) {
	if len(values) == 0 {
		return
	}
	n.SampleMean, n.SampleStd = stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		n.SampleStd = 0
	}

	c := SigmaBandCounts(values, n.Mean, n.Sigma)
	total := float64(n.Samples)
	for i := range n.Bands {
		n.Bands[i] = 100 * float64(c[i]) / total
	}
	n.Outside = 100 * float64(c[3]) / total

	n.KS = KSNormal(values, n.Mean, n.Sigma)
	n.KSCritical = 1.358 / math.Sqrt(float64(len(values)))
}

// SigmaBandCounts 統計落在 [μ-σ, μ+σ]、(1σ,2σ]、(2σ,3σ] 以及 3σ 之外的樣本數。
// σ 取絕對值。
func SigmaBandCounts(values []float64, mu, sigma float64) [4]int {
	sigma = math.Abs(sigma)
	var c [4]int
	for _, v := range values {
		d := math.Abs(v - mu)
		switch {
		case d <= sigma:
			c[0]++
		case d <= 2*sigma:
			c[1]++
		case d <= 3*sigma:
			c[2]++
		default:
			c[3]++
		}
	}
	return c
}

// BandsWithin 判斷每個區間百分比與期望值的差距都不超過 tol 個百分點。
func BandsWithin(got, want [3]float64, tol float64) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

// KSNormal 回傳樣本經驗分佈與 N(mu, sigma²) CDF 的最大距離。
//
// 會就地排序 values。sigma 為 0 時無法定義參考分佈，回傳 0。
func KSNormal(values []float64, mu, sigma float64) float64 {
	sigma = math.Abs(sigma)
	if len(values) == 0 || sigma == 0 {
		return 0
	}
	slices.Sort(values)
	ref := distuv.Normal{Mu: mu, Sigma: sigma}
	n := float64(len(values))
	d := 0.0
	for i, v := range values {
		cdf := ref.CDF(v)
		d = max(d, float64(i+1)/n-cdf, cdf-float64(i)/n)
	}
	return d
}
