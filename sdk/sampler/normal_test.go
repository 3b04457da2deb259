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

//go:build !floatrand_nomath

package sampler

import (
	"math"
	"testing"

	"github.com/zintix-labs/floatrand/sdk/core"
)

func TestNormalIsActuallyNormal(t *testing.T) {
	c := core.NewWithSeed(42)
	one, two, three := sigmaBands(func() float32 { return Normal[float32](c, 10, 3) }, 10, 3, draws)
	checkBands(t, "float32 exact", one, two, three)

	one, two, three = sigmaBands(func() float64 { return Normal[float64](c, 10, 3) }, 10, 3, draws)
	checkBands(t, "float64 exact", one, two, three)
}

func TestNormalRejectsTinyU1(t *testing.T) {
	// u1 = 0 與 u1 = epsilon 都必須重抽；u1 = 0.5、u2 = 0 => mu + sigma*sqrt(2 ln 2)
	src := &scripted{f64: []float64{0, f64Traits.epsilon, 0.5, 0}}
	got := Normal[float64](src, 1, 2)
	want := 2*math.Sqrt(-2*math.Log(0.5)) + 1
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
	if len(src.f64) != 0 {
		t.Fatalf("expected four draws, %d left", len(src.f64))
	}
}

func TestNormalFinite(t *testing.T) {
	c := core.NewWithSeed(9)
	for i := 0; i < draws; i++ {
		if v := Normal[float32](c, 0, 1); !isFinite(v) {
			t.Fatalf("non-finite float32 sample %v", v)
		}
		if v := Normal[float64](c, 0, 1); !isFinite(v) {
			t.Fatalf("non-finite float64 sample %v", v)
		}
	}
}

func TestHasExactNormal(t *testing.T) {
	if !HasExactNormal {
		t.Fatalf("exact normal should be compiled in")
	}
}

func BenchmarkNormal(b *testing.B) {
	c := core.NewWithSeed(42)
	for i := 0; i < b.N; i++ {
		_ = Normal[float64](c, 10, 3)
	}
}
