//go:build !floatrand_nomath && !floatrand_portablemath

package sampler

import "math"

// platform math provider：直接使用 Go 標準 math，float32 經 float64 計算後轉回。

func ln[F Float](x F) F { return F(math.Log(float64(x))) }

func sqrt[F Float](x F) F { return F(math.Sqrt(float64(x))) }

func cos[F Float](x F) F { return F(math.Cos(float64(x))) }

func tau[F Float]() F { return F(2 * math.Pi) }
