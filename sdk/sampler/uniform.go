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

// 本檔案 (uniform.go) 實作任意浮點區間的均勻取樣。
//
// 演算法原理：
//   - 基礎亂數只提供 [0,1)，先依區間的包含性轉成 (0,1)、[0,1) 或 (0,1]，再線性映射到 [low, high]。
//   - 兩端都包含時無法直接由 [0,1) 得到，改用「拉伸」：scale 除以單位亂數的最大值，
//     讓最大的單位亂數剛好映射到 high。
//   - 區間寬度超過型別可表示的範圍時（例如 [MIN, MAX]），high-low 會溢位成 Inf，
//     此時改以中點切半：先擲硬幣決定左右半邊，再在半邊內取樣。
//
// 特性：
//   - 對所有合法區間都有結果，且結果一定是有限值。
//   - 只有開區間的「拒絕 0」迴圈會重試，機率上幾乎必然結束。
package sampler

import "github.com/zintix-labs/floatrand/sdk/core"

// Range 在 iv 內均勻取樣一個浮點數。
//
// 合約：iv 必須合法（兩端有限時 low <= high，見 Interval.Validate），否則結果無定義。
//
// 包含性是對單位亂數而言：r*scale + low 會捨入，所以相對於端點量級很窄的開區間
// （例如 float32 的 (100, 100.5)）仍可能回傳端點本身，但不會超出 [low, high]。
func Range[F Float](src core.Source, iv Interval[F]) F {
	t := traitsOf[F]()
	low, high := iv.Resolve()
	inclusive := iv.Inclusive()

	var scale F
	if inclusive == InclusiveBoth {
		scale = (high - low) / t.maxRand
	} else {
		scale = high - low
	}

	if isFinite(scale) {
		var r F
		switch inclusive {
		case InclusiveNone:
			r = unitOpenOpen(src, t)
		case InclusiveRight:
			r = unitOpenClosed(src, t)
		default:
			// InclusiveLeft 直接用 [0,1)；InclusiveBoth 的右端靠拉伸後的 scale 達成
			r = t.unit(src)
		}
		return r*scale + low
	}

	return rangeWide(src, t, low, high, inclusive)
}

// rangeWide 處理 high-low 溢位的區間。
//
// 中點由兩個半值相加而得，不會溢位。每一邊都必須能取到中點本身，
// 所以不能用 (0,1] 的技巧處理單側包含，而是依那一側的端點是否包含決定是否拉伸。
func rangeWide[F Float](src core.Source, t *floatTraits[F], low, high F, inclusive Inclusive) F {
	const half = 0.5
	highHalf := half * high
	lowHalf := half * low
	mid := highHalf + lowHalf

	var r F
	var stretch bool
	if src.Bool() {
		// 右半邊 [mid, high]
		stretch = inclusive == InclusiveRight || inclusive == InclusiveBoth
		r = t.unit(src)
	} else {
		// 左半邊 [low, mid]
		stretch = inclusive == InclusiveLeft || inclusive == InclusiveBoth
		r = -t.unit(src)
	}

	halfScale := highHalf - lowHalf
	if stretch {
		// 拉伸後仍溢位代表區間極端到無法拉伸，退回未拉伸的半寬
		if s := halfScale / t.maxRand; isFinite(s) {
			halfScale = s
		}
	}
	return r*halfScale + mid
}

// unitOpenOpen 回傳 (0,1)：拒絕 0 後重抽。
func unitOpenOpen[F Float](src core.Source, t *floatTraits[F]) F {
	for {
		if r := t.unit(src); r != 0 {
			return r
		}
	}
}

// unitOpenClosed 回傳 (0,1]
func unitOpenClosed[F Float](src core.Source, t *floatTraits[F]) F {
	return 1 - t.unit(src)
}
