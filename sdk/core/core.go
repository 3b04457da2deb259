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

package core

import "math"

// Source 是取樣演算法唯一依賴的亂數能力（Base RNG）。
//
// 合約：
//   - Float32 回傳 [0,1) 且落在 2^-23 的格點上（最大值為 1-2^-23）。
//   - Float64 回傳 [0,1) 且落在 2^-52 的格點上（最大值為 1-2^-52）。
//   - Bool 為公平硬幣。
//   - Uint128 回傳 128-bit 均勻亂數，hi 為高 64 位、lo 為低 64 位。
//
// 區間取樣會用「單位亂數的最大可能值」來拉伸閉區間，
// 因此實作若產出不在上述格點的浮點數，閉區間取樣可能超出右端點。
type Source interface {
	Float32() float32
	Float64() float64
	Bool() bool
	Uint128() (hi, lo uint64)
}

// PRNG 定義 Core 所需的亂數來源。
//
// 浮點數不在這裡要求：Core 一律由 Uint64 的位元填入尾數來產生 [0,1) 浮點數，
// 這樣不論底層 PRNG 的原生輸出寬度為何，單位亂數的格點與最大值都是固定的。
type PRNG interface {
	// Uint64 回傳均勻分佈的 64-bit 亂數。
	Uint64() uint64
}

// PRNGFactory 以 seed 建立 PRNG。
type PRNGFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 在同一個實作與同一個版本下，New(seed) 必須是決定性的。
	// 取樣演算法本身不要求可重現；決定性只服務於 sim 的多 worker 派生與除錯回放。
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory（PCG64）
type DefaultPRNG struct{}

// New 滿足合約
func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// PCG32Factory 以 PCG32 作為底層 PRNG。
type PCG32Factory struct{}

func (p *PCG32Factory) New(seed int64) PRNG {
	return newPCG32WithSeed(seed)
}

// Core 封裝 PRNG，並提供 Source 所需的取樣方法。
//
// Core 是「呼叫端自己持有」的轉接層，不可在多個 goroutine 間共用；
// 需要共用時請使用 Shared。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// NewWithSeed 以預設 PRNG 與指定 seed 建立 Core。
func NewWithSeed(seed int64) *Core {
	return New(Default().New(seed))
}

const (
	f32FractionBits = 23
	f64FractionBits = 52
	f32One          = uint32(127) << f32FractionBits
	f64One          = uint64(1023) << f64FractionBits
)

// Float32 回傳 [0,1) 的 float32。
// 取 23 個亂數位元填入 [1,2) 的尾數後減 1，結果剛好落在 2^-23 的格點。
func (c *Core) Float32() float32 {
	return unitFloat32(c.Uint64())
}

// Float64 回傳 [0,1) 的 float64（52 bits 精度）。
func (c *Core) Float64() float64 {
	return unitFloat64(c.Uint64())
}

// Bool 取最高位元作為公平硬幣。
func (c *Core) Bool() bool {
	return c.Uint64()>>63 == 1
}

// Uint128 連續取兩次 Uint64，先取得的為高位。
func (c *Core) Uint128() (hi, lo uint64) {
	hi = c.Uint64()
	lo = c.Uint64()
	return hi, lo
}

func unitFloat32(u uint64) float32 {
	return math.Float32frombits(f32One|uint32(u>>(64-f32FractionBits))) - 1
}

func unitFloat64(u uint64) float64 {
	return math.Float64frombits(f64One|(u>>(64-f64FractionBits))) - 1
}
