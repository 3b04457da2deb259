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

//go:build !floatrand_noshared

package floatrand

import (
	"github.com/zintix-labs/floatrand/sdk/core"
	"github.com/zintix-labs/floatrand/sdk/sampler"
)

// 以下自由函數使用 core.Shared()，可併發呼叫。

// Seed 以指定 seed 重建行程共用的產生器。
func Seed(seed int64) {
	core.Shared().Reseed(seed)
}

// Float32Range 在 iv 內均勻取樣一個 float32。
func Float32Range(iv sampler.Interval[float32]) float32 {
	return sampler.Range(core.Shared(), iv)
}

// Float64Range 在 iv 內均勻取樣一個 float64。
func Float64Range(iv sampler.Interval[float64]) float64 {
	return sampler.Range(core.Shared(), iv)
}

// Float32NormalApprox 以位元運算近似 N(mu, sigma²)，回傳 float32。
func Float32NormalApprox(mu, sigma float32) float32 {
	return sampler.NormalApprox(core.Shared(), mu, sigma)
}

// Float64NormalApprox 以位元運算近似 N(mu, sigma²)，回傳 float64。
func Float64NormalApprox(mu, sigma float64) float64 {
	return sampler.NormalApprox(core.Shared(), mu, sigma)
}
