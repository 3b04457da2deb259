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
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/zintix-labs/floatrand"
	"github.com/zintix-labs/floatrand/errs"
	"github.com/zintix-labs/floatrand/sdk/core"
	"github.com/zintix-labs/floatrand/stats"
)

func TestNormalApproxBands(t *testing.T) {
	for _, bits := range []int{32, 64} {
		rep, _, err := New(42).Normal(context.Background(), NormalJob{Method: MethodApprox, Bits: bits, Mean: 10, Sigma: 3}, 10000, 4)
		if err != nil {
			t.Fatalf("bits=%d: %v", bits, err)
		}
		if rep.Samples != 10000 {
			t.Fatalf("samples got %d", rep.Samples)
		}
		if !rep.BandsOK {
			t.Fatalf("bits=%d: approx bands off: %v", bits, rep.Bands)
		}
		if math.Abs(rep.SampleMean-10) > 0.2 {
			t.Fatalf("bits=%d: mean got %.3f", bits, rep.SampleMean)
		}
	}
}

func TestNormalDeterministic(t *testing.T) {
	job := NormalJob{Method: MethodSum, Bits: 64, Mean: 0, Sigma: 1}
	sa := New(7)
	a, _, err := sa.Normal(context.Background(), job, 5000, 3)
	if err != nil {
		t.Fatalf("run a: %v", err)
	}
	if sa.Seed() != 7 {
		t.Fatalf("Seed should stay the initial seed after a run, got %d", sa.Seed())
	}
	b, _, err := New(7).Normal(context.Background(), job, 5000, 3)
	if err != nil {
		t.Fatalf("run b: %v", err)
	}
	if a.SampleMean != b.SampleMean || a.SampleStd != b.SampleStd || a.KS != b.KS {
		t.Fatalf("same seed should reproduce: %+v vs %+v", a, b)
	}
}

func TestRangeReport(t *testing.T) {
	cases := []RangeJob{
		{Interval: "[0,1)", Bits: 64},
		{Interval: "(-2,2)", Bits: 32},
		{Interval: "(1.5,3]", Bits: 64, Bins: 10},
		{Interval: "(,)", Bits: 64},
		{Interval: "[,]", Bits: 32},
	}
	for _, job := range cases {
		rep, _, err := NewWithFactory(&core.PCG32Factory{}, 99).Range(context.Background(), job, 20000, 4)
		if err != nil {
			t.Fatalf("%s: %v", job.Interval, err)
		}
		if rep.Violations != 0 || rep.NonFinite != 0 {
			t.Fatalf("%s: violations=%d nonfinite=%d", job.Interval, rep.Violations, rep.NonFinite)
		}
		if rep.PValue < 1e-4 {
			t.Fatalf("%s: histogram not uniform, chi=%g p=%g", job.Interval, rep.ChiSquare, rep.PValue)
		}
	}
}

func TestRangeOpenNeverHitsBounds(t *testing.T) {
	rep, _, err := New(1).Range(context.Background(), RangeJob{Interval: "(0,1e-30)", Bits: 32}, 10000, 2)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if rep.HitLow != 0 || rep.HitHigh != 0 || rep.Violations != 0 {
		t.Fatalf("open interval hit a bound: %+v", rep)
	}
}

func TestInvalidParams(t *testing.T) {
	ctx := context.Background()
	s := New(1)
	if _, _, err := s.Normal(ctx, NormalJob{Method: "nope", Bits: 64, Sigma: 1}, 10, 1); errs.Level(err) != errs.Warn {
		t.Fatalf("unknown method should be warn, got %v", err)
	}
	if _, _, err := s.Normal(ctx, NormalJob{Method: MethodApprox, Bits: 16, Sigma: 1}, 10, 1); errs.Level(err) != errs.Warn {
		t.Fatalf("bad bits should be warn, got %v", err)
	}
	if _, _, err := s.Normal(ctx, NormalJob{Method: MethodApprox, Bits: 32, Mean: 1e300, Sigma: 1}, 10, 1); errs.Level(err) != errs.Warn {
		t.Fatalf("float32 overflow should be warn, got %v", err)
	}
	if _, _, err := s.Normal(ctx, NormalJob{Method: MethodApprox, Bits: 64, Sigma: 1}, 0, 1); errs.Level(err) != errs.Warn {
		t.Fatalf("n=0 should be warn, got %v", err)
	}
	if _, _, err := s.Range(ctx, RangeJob{Interval: "[2,1]", Bits: 64}, 10, 1); errs.Level(err) != errs.Warn {
		t.Fatalf("reversed interval should be warn, got %v", err)
	}
	if _, _, err := s.Range(ctx, RangeJob{Interval: "[0,1]", Bits: 64}, 10, 0); errs.Level(err) != errs.Warn {
		t.Fatalf("workers=0 should be warn, got %v", err)
	}
	for _, bins := range []int{-1, stats.MaxBins + 1, stats.MaxBins * 1000} {
		if _, _, err := s.Range(ctx, RangeJob{Interval: "[0,1)", Bits: 64, Bins: bins}, 1, 1); errs.Level(err) != errs.Warn {
			t.Fatalf("bins=%d should be warn, got %v", bins, err)
		}
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New(1).Normal(ctx, NormalJob{Method: MethodApprox, Bits: 64, Sigma: 1}, 100000, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if _, err := Sample(ctx, floatrand.New(1), func(*floatrand.Rand) float64 { return 0 }, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("sample: want context.Canceled, got %v", err)
	}
}

func TestSample(t *testing.T) {
	draw, err := RangeJob{Interval: "[5,5]", Bits: 64}.Drawer()
	if err != nil {
		t.Fatalf("drawer: %v", err)
	}
	vals, err := Sample(context.Background(), floatrand.New(3), draw, 100)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	for _, v := range vals {
		if v != 5 {
			t.Fatalf("degenerate interval should return 5, got %v", v)
		}
	}
}

func TestMethods(t *testing.T) {
	ms := Methods()
	if !slices.Contains(ms, MethodApprox) || !slices.Contains(ms, MethodSum) {
		t.Fatalf("approx and sum are always available, got %v", ms)
	}
}

func TestShare(t *testing.T) {
	total := 0
	for i := 0; i < 3; i++ {
		total += share(10, 3, i)
	}
	if total != 10 || share(10, 3, 0) != 4 || share(10, 3, 2) != 3 {
		t.Fatalf("share split wrong")
	}
}

func TestSeedMakerDistinct(t *testing.T) {
	sm := newSeedMaker(123)
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		s := sm.next()
		if s < 0 {
			t.Fatalf("seed must be non-negative, got %d", s)
		}
		if seen[s] {
			t.Fatalf("duplicate seed %d at %d", s, i)
		}
		seen[s] = true
	}
}
