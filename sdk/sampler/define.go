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

// Package sampler 提供浮點數的區間均勻取樣與常態分佈取樣。
//
// 本檔案 (define.go) 定義泛型約束與各精度的常數表。
//
// 目的：
//   - 演算法只寫一次，float32 / float64 各自實例化。
//   - 每個精度需要的常數（最小/最大有限值、epsilon、單位亂數最大值）集中在 floatTraits。
package sampler

import (
	"math"

	"github.com/zintix-labs/floatrand/sdk/core"
)

// Float 定義取樣演算法支援的浮點數型別
type Float interface {
	float32 | float64
}

// floatTraits 是單一精度的能力表。
type floatTraits[F Float] struct {
	lowest  F // 最小有限值（負的最大值）
	highest F // 最大有限值
	epsilon F // machine epsilon
	maxRand F // 單位亂數可能產生的最大值（1 的前一個格點）
	bits    int
	unit    func(core.Source) F
}

// 單位亂數最大值的算法：
//  1. 尾數全部填 1
//  2. 指數設為 bias（也就是數值落在 [1,2)）
//  3. 減掉隱含的 1.0
//
// float32 得到 1-2^-23（0x3f7ffffe），float64 得到 1-2^-52（0x3feffffffffffffe）。
var (
	f32Traits = floatTraits[float32]{
		lowest:  -math.MaxFloat32,
		highest: math.MaxFloat32,
		epsilon: 0x1p-23,
		maxRand: math.Float32frombits(uint32(1)<<23-1|uint32(127)<<23) - 1,
		bits:    32,
		unit:    func(s core.Source) float32 { return s.Float32() },
	}
	f64Traits = floatTraits[float64]{
		lowest:  -math.MaxFloat64,
		highest: math.MaxFloat64,
		epsilon: 0x1p-52,
		maxRand: math.Float64frombits(uint64(1)<<52-1|uint64(1023)<<52) - 1,
		bits:    64,
		unit:    func(s core.Source) float64 { return s.Float64() },
	}
)

// traitsOf 依型別參數回傳對應的常數表。
func traitsOf[F Float]() *floatTraits[F] {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return any(&f32Traits).(*floatTraits[F])
	}
	return any(&f64Traits).(*floatTraits[F])
}

// isFinite 不依賴 math 套件的 float64 轉換，NaN 與 ±Inf 都回傳 false。
func isFinite[F Float](x F) bool {
	return x-x == 0
}
