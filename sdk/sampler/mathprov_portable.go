//go:build !floatrand_nomath && floatrand_portablemath

package sampler

import (
	"math"

	"github.com/chewxy/math32"
)

// portable math provider：float32 使用純軟體的 math32，在 float32 精度下直接計算；
// float64 使用 Go math（本身即為可攜的軟體實作）。

func ln[F Float](x F) F {
	if v, ok := any(x).(float32); ok {
		return F(math32.Log(v))
	}
	return F(math.Log(float64(x)))
}

func sqrt[F Float](x F) F {
	if v, ok := any(x).(float32); ok {
		return F(math32.Sqrt(v))
	}
	return F(math.Sqrt(float64(x)))
}

func cos[F Float](x F) F {
	if v, ok := any(x).(float32); ok {
		return F(math32.Cos(v))
	}
	return F(math.Cos(float64(x)))
}

func tau[F Float]() F {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return F(float32(2 * math.Pi))
	}
	return F(2 * math.Pi)
}
