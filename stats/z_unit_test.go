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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/stats"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"
)

// quantileSample 以分位數建立「完美」的常態樣本：經驗 CDF 與理論 CDF 的差距最多 1/(2n)。
func quantileSample(mu, sigma float64, n int) []float64 {
	ref := distuv.Normal{Mu: mu, Sigma: sigma}
	out := make([]float64, n)
	for i := range out {
		out[i] = ref.Quantile((float64(i) + 0.5) / float64(n))
	}
	return out
}

func buildNormalReport(values []float64) *stats.NormalReport {
	r := stats.NewNormalRecorder("test", 64, 10, 3, len(values))
	for _, v := range values {
		r.Record(v)
	}
	return r.Done()
}

func TestNormalReportPerfectSample(t *testing.T) {
	n := 10000
	rep := buildNormalReport(quantileSample(10, 3, n))

	if rep.Samples != n {
		t.Fatalf("samples got %d want %d", rep.Samples, n)
	}
	if math.Abs(rep.SampleMean-10) > 1e-6 {
		t.Fatalf("mean got %.6f want 10", rep.SampleMean)
	}
	if math.Abs(rep.SampleStd-3) > 0.01 {
		t.Fatalf("std got %.6f want ~3", rep.SampleStd)
	}
	for i, want := range stats.NormalBandsExpected {
		if math.Abs(rep.Bands[i]-want) > 0.1 {
			t.Fatalf("band %d got %.3f want %.3f", i, rep.Bands[i], want)
		}
	}
	if rep.KS > 1.0/float64(n) {
		t.Fatalf("KS of quantile sample should be <= 1/n, got %g", rep.KS)
	}
	if !rep.BandsOK {
		t.Fatalf("bands should pass")
	}
}

func TestNormalReportShiftedSampleFails(t *testing.T) {
	// 樣本平移 2σ：KS 遠大於臨界值，1σ 比例遠小於 68%
	rep := buildNormalReport(quantileSample(16, 3, 5000))
	if rep.BandsOK {
		t.Fatalf("shifted sample should fail bands, got %v", rep.Bands)
	}
	if rep.KS <= rep.KSCritical {
		t.Fatalf("shifted sample KS %g should exceed critical %g", rep.KS, rep.KSCritical)
	}
}

func TestNormalReportNonFinite(t *testing.T) {
	vals := quantileSample(10, 3, 1000)
	vals = append(vals, math.NaN(), math.Inf(1))
	rep := buildNormalReport(vals)
	if rep.NonFinite != 2 {
		t.Fatalf("non-finite got %d want 2", rep.NonFinite)
	}
	if rep.BandsOK {
		t.Fatalf("report with non-finite samples must not pass")
	}
	if math.IsNaN(rep.SampleMean) {
		t.Fatalf("mean should skip non-finite samples")
	}
}

func TestSigmaBandCounts(t *testing.T) {
	vals := []float64{10, 13, 13.5, 16, 18.5, 19, 20, 1, -5}
	c := stats.SigmaBandCounts(vals, 10, -3) // 負 σ 取絕對值
	want := [4]int{2, 2, 3, 2}
	if c != want {
		t.Fatalf("counts got %v want %v", c, want)
	}
}

func TestMergeNormalRecorder(t *testing.T) {
	a := stats.NewNormalRecorder("approx", 32, 0, 1, 0)
	b := stats.NewNormalRecorder("approx", 32, 0, 1, 0)
	a.Record(1)
	b.Record(2)
	b.Record(3)
	m, err := stats.MergeNormalRecorder([]*stats.NormalRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if rep := m.Done(); rep.Samples != 3 || rep.SampleMean != 2 {
		t.Fatalf("merged report got %d samples, mean %v", rep.Samples, rep.SampleMean)
	}

	c := stats.NewNormalRecorder("exact", 32, 0, 1, 0)
	if _, err := stats.MergeNormalRecorder([]*stats.NormalRecorder{a, c}); err == nil {
		t.Fatalf("merging different methods should fail")
	}
	if _, err := stats.MergeNormalRecorder(nil); err == nil {
		t.Fatalf("merging nothing should fail")
	}
}

func TestChiSquareUniform(t *testing.T) {
	chi, p := stats.ChiSquareUniform([]int{100, 100, 100, 100})
	if chi != 0 || math.Abs(p-1) > 1e-12 {
		t.Fatalf("flat counts: chi=%g p=%g", chi, p)
	}

	chi, p = stats.ChiSquareUniform([]int{400, 0, 0, 0})
	if chi != 1200 {
		t.Fatalf("chi got %g want 1200", chi)
	}
	if p > 1e-6 {
		t.Fatalf("skewed counts should have tiny p, got %g", p)
	}

	if chi, p := stats.ChiSquareUniform([]int{7}); chi != 0 || p != 1 {
		t.Fatalf("single bin: chi=%g p=%g", chi, p)
	}
}

func TestUniformRecorder(t *testing.T) {
	r, err := stats.NewUniformRecorder("[0,1)", 64, 0, 1, 4, func(x float64) bool { return x >= 0 && x < 1 })
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, x := range []float64{0, 0.3, 0.6, 0.9, 1, math.NaN()} {
		r.Record(x)
	}
	rep := r.Done()
	if rep.Samples != 6 || rep.Violations != 1 || rep.NonFinite != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.HitLow != 1 || rep.HitHigh != 0 {
		t.Fatalf("hits got low=%d high=%d", rep.HitLow, rep.HitHigh)
	}
	want := []int{1, 1, 1, 1}
	for i := range want {
		if rep.Counts[i] != want[i] {
			t.Fatalf("counts got %v want %v", rep.Counts, want)
		}
	}
	if rep.Min != 0 || rep.Max != 0.9 {
		t.Fatalf("min/max got %g/%g", rep.Min, rep.Max)
	}
	if rep.Ok(0) {
		t.Fatalf("report with violations must not be ok")
	}
}

func TestUniformRecorderWideRange(t *testing.T) {
	r, err := stats.NewUniformRecorder("full", 64, -math.MaxFloat64, math.MaxFloat64, 2, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r.Record(-math.MaxFloat64)
	r.Record(-1e300)
	r.Record(1e300)
	r.Record(math.MaxFloat64)
	rep := r.Done()
	if rep.Counts[0] != 2 || rep.Counts[1] != 2 {
		t.Fatalf("wide binning got %v", rep.Counts)
	}
	if !rep.Ok(0.05) {
		t.Fatalf("balanced wide sample should be ok: %+v", rep)
	}
}

func TestUniformRecorderDegenerateAndInvalid(t *testing.T) {
	r, err := stats.NewUniformRecorder("[2,2]", 32, 2, 2, 10, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r.Record(2)
	r.Record(2)
	rep := r.Done()
	if len(rep.Counts) != 1 || rep.PValue != 1 {
		t.Fatalf("degenerate range should collapse to one bin: %+v", rep)
	}

	if _, err := stats.NewUniformRecorder("bad", 64, 2, 1, 10, nil); err == nil {
		t.Fatalf("low > high should fail")
	}
	if _, err := stats.NewUniformRecorder("bad", 64, 0, 1, 0, nil); err == nil {
		t.Fatalf("zero bins should fail")
	}
	if _, err := stats.NewUniformRecorder("bad", 64, 0, 1, stats.MaxBins+1, nil); errs.Level(err) != errs.Warn {
		t.Fatalf("bins over MaxBins should be warn, got %v", err)
	}
}

func TestMergeUniformRecorder(t *testing.T) {
	a, _ := stats.NewUniformRecorder("[0,1]", 64, 0, 1, 2, nil)
	b, _ := stats.NewUniformRecorder("[0,1]", 64, 0, 1, 2, nil)
	a.Record(0.1)
	b.Record(0.9)
	b.Record(1)
	m, err := stats.MergeUniformRecorder([]*stats.UniformRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	rep := m.Done()
	if rep.Samples != 3 || rep.Counts[0] != 1 || rep.Counts[1] != 2 || rep.HitHigh != 1 {
		t.Fatalf("merged report: %+v", rep)
	}
	if rep.Min != 0.1 || rep.Max != 1 {
		t.Fatalf("merged min/max got %g/%g", rep.Min, rep.Max)
	}

	c, _ := stats.NewUniformRecorder("[0,2]", 64, 0, 2, 2, nil)
	if _, err := stats.MergeUniformRecorder([]*stats.UniformRecorder{a, c}); err == nil {
		t.Fatalf("merging different ranges should fail")
	}
}

func TestRenders(t *testing.T) {
	rep := buildNormalReport(quantileSample(10, 3, 100))

	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &stats.JsonReportRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded["Method"] != "test" {
		t.Fatalf("json Method got %v", decoded["Method"])
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, &stats.YAMLReportRender{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var y map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &y); err != nil {
		t.Fatalf("yaml decode: %v", err)
	}
	if !strings.Contains(buf.String(), "bands: [") {
		t.Fatalf("yaml bands should be flow style:\n%s", buf.String())
	}

	buf.Reset()
	if err := rep.WriteWith(&buf, &stats.TableReportRender{}); err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(buf.String(), "Normal (test, float64)") || !strings.Contains(buf.String(), "Within 1σ") {
		t.Fatalf("table missing title or rows:\n%s", buf.String())
	}
}
