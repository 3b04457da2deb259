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

package floatrand

import "github.com/zintix-labs/floatrand/sdk/sampler"

// Float32Normal 以 Box–Muller 取樣 N(mu, sigma²)。
func (r *Rand) Float32Normal(mu, sigma float32) float32 {
	return sampler.Normal(r.src, mu, sigma)
}

// Float64Normal 以 Box–Muller 取樣 N(mu, sigma²)。
func (r *Rand) Float64Normal(mu, sigma float64) float64 {
	return sampler.Normal(r.src, mu, sigma)
}
