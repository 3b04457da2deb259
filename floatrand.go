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

// Package floatrand 提供浮點數區間均勻取樣與常態分佈取樣的對外入口。
//
// 兩種使用方式：
//
//  1. 自己持有產生器（Rand）：
//
//     r := floatrand.New(0x1234)
//     x := r.Float32Range(sampler.LeftClosed[float32](1.5, 3))
//     y := r.Float64NormalApprox(10, 3)
//
//  2. 行程共用的產生器（自由函數）：
//
//     x := floatrand.Float64Range(sampler.Full[float64]())
//
// 自由函數在 build tag floatrand_noshared 下不編譯；
// 精確常態取樣（Float32Normal / Float64Normal）在 floatrand_nomath 下不編譯。
//
// 演算法只寫一次（sdk/sampler），Rand 與自由函數都只是 core.Source 的轉接層。
package floatrand

import (
	"github.com/zintix-labs/floatrand/sdk/core"
	"github.com/zintix-labs/floatrand/sdk/sampler"
)

// Rand 包裝一個呼叫端持有的 Source。不可在多個 goroutine 間共用。
type Rand struct {
	src core.Source
}

// New 以預設 PRNG（PCG64）與 seed 建立 Rand。
func New(seed int64) *Rand {
	return &Rand{src: core.NewWithSeed(seed)}
}

// With 以外部提供的 Source 建立 Rand。
func With(src core.Source) *Rand {
	return &Rand{src: src}
}

// Source 回傳底層 Source
func (r *Rand) Source() core.Source {
	return r.src
}

// Float32Range 在 iv 內均勻取樣一個 float32。
func (r *Rand) Float32Range(iv sampler.Interval[float32]) float32 {
	return sampler.Range(r.src, iv)
}

// Float64Range 在 iv 內均勻取樣一個 float64。
func (r *Rand) Float64Range(iv sampler.Interval[float64]) float64 {
	return sampler.Range(r.src, iv)
}

// Float32NormalApprox 以位元運算近似 N(mu, sigma²)，不需要 math provider。
func (r *Rand) Float32NormalApprox(mu, sigma float32) float32 {
	return sampler.NormalApprox(r.src, mu, sigma)
}

// Float64NormalApprox 以位元運算近似 N(mu, sigma²)，不需要 math provider。
func (r *Rand) Float64NormalApprox(mu, sigma float64) float64 {
	return sampler.NormalApprox(r.src, mu, sigma)
}
