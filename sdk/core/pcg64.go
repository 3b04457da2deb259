// Package core provides the base random number generators consumed by the
// floatrand samplers: PCG64 (default), PCG32, and the Core / Shared adapters
// that expose them through the Source capability.
//
// The PCG algorithm is designed by Melissa O'Neill.

package core

import (
	"crypto/rand"
	"encoding/binary"
	r2 "math/rand/v2"
)

// PCG64 亂數產生器
type PCG64 struct {
	rng *r2.PCG
}

// newPCG64 使用加密隨機來源產生 seed，建立新的 PCG64 實例。
func newPCG64() *PCG64 {
	var b [8]byte
	// crypto/rand.Read 在支援的平台上不會失敗（失敗時直接 crash）
	_, _ = rand.Read(b[:])
	return newPCG64WithSeed(int64(binary.LittleEndian.Uint64(b[:])))
}

// newPCG64WithSeed 以指定 seed 建立新的 PCG64 實例。
func newPCG64WithSeed(seed int64) *PCG64 {
	x := uint64(seed) ^ (0x9e3779b97f4a7c15)
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xDA942042E4DD58B5)
	return &PCG64{rng: r2.NewPCG(hi, lo)}
}

// Uint64 回傳非負整數uint64亂數
func (r *PCG64) Uint64() uint64 {
	return r.rng.Uint64()
}

// splitmix64 將輸入值混洗成新的 64-bit 狀態，用於種子展開。
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
