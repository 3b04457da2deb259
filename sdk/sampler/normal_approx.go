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

// 本檔案 (normal_approx.go) 實作只用整數位元運算的常態分佈近似取樣。
//
// 參考：http://marc-b-reynolds.github.io/distribution/2021/03/18/CheapGaussianApprox.html
//
// 特性：
//   - 一次 128-bit 亂數，沒有超越函數、沒有重試。
//   - 結果是近似值：準確度只保證在統計意義上（見 stats 套件的 sigma 區間檢查）。
package sampler

import (
	"math/bits"

	"github.com/zintix-labs/floatrand/sdk/core"
)

const (
	// approxPopcountK 使 popcount+三角分佈組合與標準常態 CDF 的最大誤差最小的縮放係數（經驗值）。
	approxPopcountK = 5.76917e-11
	// approxSumK 為四個 uint32 加減組合的縮放係數（經驗值）。
	approxSumK = 3.97815e-10
)

// NormalApprox 以位元運算近似 N(mu, sigma²)。
//
//  1. lo 的 64 個位元中 1 的個數服從 Binomial(64, 1/2)，減 32 後以 0 為中心。
//  2. hi 拆成兩個 uint32 相減，得到以 0 為中心的三角分佈。
//  3. (二項 << 32) + 三角 轉成 float64 後乘上縮放係數。
func NormalApprox[F Float](src core.Source, mu, sigma F) F {
	hi, lo := src.Uint128()

	bd := int64(bits.OnesCount64(lo)) - 32
	td := int64(uint32(hi)) - int64(hi>>32)
	r := float64((bd << 32) + td)

	return F(approxPopcountK*r)*sigma + mu
}

// NormalApproxSum 是較粗糙的中央極限近似：(a+b)-(c+d)，四個 uint32 各取自一次 128-bit 亂數。
// 主要作為 NormalApprox 的比較基準。
func NormalApproxSum[F Float](src core.Source, mu, sigma F) F {
	hi, lo := src.Uint128()

	const mask = 0xffffffff
	a := int64(lo & mask)
	b := int64(lo >> 32)
	c := int64(hi & mask)
	d := int64(hi >> 32)

	return F(approxSumK*float64((a+b)-(c+d)))*sigma + mu
}
