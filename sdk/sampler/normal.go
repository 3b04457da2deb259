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

import "github.com/zintix-labs/floatrand/sdk/core"

// HasExactNormal 表示此 build 是否包含 Normal（Box–Muller）。
const HasExactNormal = true

// Normal 以 Box–Muller 基本形式取樣 N(mu, sigma²)。
//
// u1 必須大於 epsilon，避免 ln(0) 產生非有限值；u2 不需要重抽。
// 超越函數由 build tag 選定的 math provider 提供（見 mathprov_*.go）。
func Normal[F Float](src core.Source, mu, sigma F) F {
	t := traitsOf[F]()
	var u1 F
	for {
		u1 = t.unit(src)
		if u1 > t.epsilon {
			break
		}
	}
	u2 := t.unit(src)

	mag := sigma * sqrt(-2*ln(u1))
	return mag*cos(tau[F]()*u2) + mu
}
