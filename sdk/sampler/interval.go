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

package sampler

import (
	"strconv"
	"strings"

	"github.com/zintix-labs/floatrand/errs"
)

// BoundKind 描述區間一端的型態。零值為 Unbounded。
type BoundKind uint8

const (
	Unbounded BoundKind = iota
	Included
	Excluded
)

// Bound 為區間的一端
type Bound[F Float] struct {
	Kind  BoundKind
	Value F
}

// Interval 是取樣的目標區間，兩端各自可以是包含、不包含或無界。
//
// 無界端點一律視為該型別的最小/最大「有限值」，不是數學上的無限大，
// 所以 Full() 取樣的是整個有限浮點數範圍。
//
// 合約：兩端都有限時 Low <= High。取樣函數不檢查，需要檢查請呼叫 Validate。
type Interval[F Float] struct {
	Low  Bound[F]
	High Bound[F]
}

// Closed 回傳 [lo, hi]
func Closed[F Float](lo, hi F) Interval[F] {
	return Interval[F]{Bound[F]{Included, lo}, Bound[F]{Included, hi}}
}

// Open 回傳 (lo, hi)
func Open[F Float](lo, hi F) Interval[F] {
	return Interval[F]{Bound[F]{Excluded, lo}, Bound[F]{Excluded, hi}}
}

// LeftClosed 回傳 [lo, hi)
func LeftClosed[F Float](lo, hi F) Interval[F] {
	return Interval[F]{Bound[F]{Included, lo}, Bound[F]{Excluded, hi}}
}

// RightClosed 回傳 (lo, hi]
func RightClosed[F Float](lo, hi F) Interval[F] {
	return Interval[F]{Bound[F]{Excluded, lo}, Bound[F]{Included, hi}}
}

// AtLeast 回傳 [lo, +∞)
func AtLeast[F Float](lo F) Interval[F] {
	return Interval[F]{Low: Bound[F]{Included, lo}}
}

// GreaterThan 回傳 (lo, +∞)
func GreaterThan[F Float](lo F) Interval[F] {
	return Interval[F]{Low: Bound[F]{Excluded, lo}}
}

// AtMost 回傳 (-∞, hi]
func AtMost[F Float](hi F) Interval[F] {
	return Interval[F]{High: Bound[F]{Included, hi}}
}

// LessThan 回傳 (-∞, hi)
func LessThan[F Float](hi F) Interval[F] {
	return Interval[F]{High: Bound[F]{Excluded, hi}}
}

// Full 回傳兩端皆無界的區間
func Full[F Float]() Interval[F] {
	return Interval[F]{}
}

// Inclusive 是區間的包含性分類，也是唯一會影響取樣策略的分類。
// 無界端點因為會換成最小/最大有限值，視為包含。
type Inclusive uint8

const (
	InclusiveNone Inclusive = iota
	InclusiveLeft
	InclusiveRight
	InclusiveBoth
)

var inclusiveNames = map[Inclusive]string{
	InclusiveNone:  "open",
	InclusiveLeft:  "left-closed",
	InclusiveRight: "right-closed",
	InclusiveBoth:  "closed",
}

func (in Inclusive) String() string {
	if s, ok := inclusiveNames[in]; ok {
		return s
	}
	return "unknown"
}

// Inclusive 依兩端型態分類
func (iv Interval[F]) Inclusive() Inclusive {
	lowOpen := iv.Low.Kind == Excluded
	highOpen := iv.High.Kind == Excluded
	switch {
	case lowOpen && highOpen:
		return InclusiveNone
	case highOpen:
		return InclusiveLeft
	case lowOpen:
		return InclusiveRight
	default:
		return InclusiveBoth
	}
}

// Resolve 回傳實際使用的兩端數值（無界端換成最小/最大有限值）。
func (iv Interval[F]) Resolve() (low, high F) {
	t := traitsOf[F]()
	low, high = t.lowest, t.highest
	if iv.Low.Kind != Unbounded {
		low = iv.Low.Value
	}
	if iv.High.Kind != Unbounded {
		high = iv.High.Value
	}
	return low, high
}

// Contains 判斷 x 是否落在區間內（依兩端的包含性比較）。
func (iv Interval[F]) Contains(x F) bool {
	low, high := iv.Resolve()
	if iv.Low.Kind == Excluded {
		if !(x > low) {
			return false
		}
	} else if !(x >= low) {
		return false
	}
	if iv.High.Kind == Excluded {
		return x < high
	}
	return x <= high
}

// Validate 檢查區間是否可以取樣。
//
// 取樣函數本身沒有錯誤路徑，這裡只給邊界層（解析、HTTP、CLI）使用：
//   - 有限端點不能是 NaN / ±Inf
//   - low <= high
//   - 開區間端點相同時區間為空
func (iv Interval[F]) Validate() error {
	for _, b := range []Bound[F]{iv.Low, iv.High} {
		if b.Kind != Unbounded && !isFinite(b.Value) {
			return errs.Warnf("interval %s: bound must be finite", iv)
		}
		if b.Kind > Excluded {
			return errs.Warnf("interval: unknown bound kind %d", b.Kind)
		}
	}
	low, high := iv.Resolve()
	if low > high {
		return errs.Warnf("interval %s: low must be <= high", iv)
	}
	if low == high && iv.Inclusive() != InclusiveBoth {
		return errs.Warnf("interval %s: empty interval", iv)
	}
	return nil
}

// String 以區間記號輸出，無界端留空，例如 "[1,2)"、"(,3]"。
func (iv Interval[F]) String() string {
	bits := traitsOf[F]().bits
	var sb strings.Builder
	if iv.Low.Kind == Included {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	if iv.Low.Kind != Unbounded {
		sb.WriteString(strconv.FormatFloat(float64(iv.Low.Value), 'g', -1, bits))
	}
	sb.WriteByte(',')
	if iv.High.Kind != Unbounded {
		sb.WriteString(strconv.FormatFloat(float64(iv.High.Value), 'g', -1, bits))
	}
	if iv.High.Kind == Included {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
	return sb.String()
}

// ParseInterval 解析區間記號。
//
// 支援格式（空白會被忽略）：
//   - [a,b]、(a,b)、[a,b)、(a,b]
//   - 無界端留空：(,b]、[a,)、(,)
//
// 無界端可以用 '[' 或 '(' 書寫，兩者都解析為 Unbounded。
// 解析成功後會呼叫 Validate。
func ParseInterval[F Float](s string) (Interval[F], error) {
	var iv Interval[F]
	v := strings.Join(strings.Fields(s), "")
	if len(v) < 3 {
		return iv, errs.Warnf("interval %q: too short", s)
	}

	open, end := v[0], v[len(v)-1]
	if (open != '[' && open != '(') || (end != ']' && end != ')') {
		return iv, errs.Warnf("interval %q: must start with '[' or '(' and end with ']' or ')'", s)
	}
	body := v[1 : len(v)-1]
	lo, hi, ok := strings.Cut(body, ",")
	if !ok || strings.Contains(hi, ",") {
		return iv, errs.Warnf("interval %q: want exactly one ','", s)
	}

	bits := traitsOf[F]().bits
	parse := func(text string, closed bool) (Bound[F], error) {
		if text == "" {
			return Bound[F]{Kind: Unbounded}, nil
		}
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return Bound[F]{}, errs.WarnWrap(err, "interval bound is not a number", s)
		}
		kind := Excluded
		if closed {
			kind = Included
		}
		return Bound[F]{Kind: kind, Value: F(f)}, nil
	}

	var err error
	if iv.Low, err = parse(lo, open == '['); err != nil {
		return Interval[F]{}, err
	}
	if iv.High, err = parse(hi, end == ']'); err != nil {
		return Interval[F]{}, err
	}
	if err := iv.Validate(); err != nil {
		return Interval[F]{}, err
	}
	return iv, nil
}
