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

import (
	"sync"
)

// SharedSource 是包裝「行程共用」PRNG 的 Source 轉接層。
//
// 每一次基礎取樣（Float32 / Float64 / Bool / Uint128）都在鎖內完成；
// 一次區間取樣或常態取樣可能由多次基礎取樣組成，
// 這些基礎取樣之間可能穿插其他 goroutine 的呼叫，但每一次取得的值仍然是均勻的。
type SharedSource struct {
	mu   sync.Mutex
	core Core
}

var (
	sharedOnce sync.Once
	shared     *SharedSource
)

// Shared 回傳行程共用的 Source，第一次呼叫時以 crypto/rand 產生 seed。
func Shared() *SharedSource {
	sharedOnce.Do(func() {
		shared = &SharedSource{core: Core{newPCG64()}}
	})
	return shared
}

// NewShared 以指定 PRNG 建立一個可併發使用的 Source。
func NewShared(rng PRNG) *SharedSource {
	return &SharedSource{core: Core{rng}}
}

func (s *SharedSource) Float32() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Float32()
}

func (s *SharedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Float64()
}

func (s *SharedSource) Bool() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Bool()
}

func (s *SharedSource) Uint128() (hi, lo uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.Uint128()
}

// Reseed 以指定 seed 重建共用 PRNG。
func (s *SharedSource) Reseed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.core = Core{newPCG64WithSeed(seed)}
}
