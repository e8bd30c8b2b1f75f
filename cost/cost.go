/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cost

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// DepthBits is the width of the depth field in the packed representation.
	DepthBits = 8

	// MaxOpCost is the smallest operator cost that is treated as infinite.
	MaxOpCost = _OpCostMask >> DepthBits
)

const (
	_DepthMask  = (1 << DepthBits) - 1
	_OpCostMask = math.MaxUint32 &^ _DepthMask
	_Infinity   = math.MaxUint32
)

// Cost is the packed cost of an expression.
//
// The high bits hold the operator cost and the low DepthBits bits hold the
// depth of the expression, so comparing two costs as plain integers orders
// them by operator cost first, and prefers the shallower expression when the
// operator costs are equal.
//
// All arithmetic saturates. The all-ones pattern is the infinity sentinel,
// which is only ever produced by an explicit saturation in New.
type Cost uint32

// New packs opCost and depth, or returns Infinity if opCost does not fit.
func New(opCost uint32, depth uint8) Cost {
	if opCost >= MaxOpCost {
		return Infinity()
	} else {
		return Cost(opCost<<DepthBits | uint32(depth))
	}
}

func Zero() Cost {
	return 0
}

func Infinity() Cost {
	return _Infinity
}

func (self Cost) OpCost() uint32 {
	return (uint32(self) & _OpCostMask) >> DepthBits
}

func (self Cost) Depth() uint8 {
	return uint8(uint32(self) & _DepthMask)
}

func (self Cost) IsInfinite() bool {
	return self == _Infinity
}

// Add combines two costs: operator costs are summed with saturation, and the
// result is as deep as the deeper operand. Infinity is absorbing.
func (self Cost) Add(other Cost) Cost {
	return New(addsat32(self.OpCost(), other.OpCost()), maxu8(self.Depth(), other.Depth()))
}

func (self Cost) Compare(other Cost) int {
	if self < other {
		return -1
	} else if self > other {
		return 1
	} else {
		return 0
	}
}

func (self Cost) Less(other Cost) bool {
	return self < other
}

func (self Cost) String() string {
	if self.IsInfinite() {
		return "inf"
	} else {
		return fmt.Sprintf("%d/%d", self.OpCost(), self.Depth())
	}
}

// Sum adds all the costs together, the sum of nothing is Zero.
func Sum(costs ...Cost) Cost {
	ret := Zero()
	for _, c := range costs {
		ret = ret.Add(c)
	}
	return ret
}

func addsat32(a uint32, b uint32) uint32 {
	if v, c := bits.Add32(a, b, 0); c != 0 {
		return math.MaxUint32
	} else {
		return v
	}
}

func incsat8(v uint8) uint8 {
	if v == math.MaxUint8 {
		return v
	} else {
		return v + 1
	}
}

func maxu8(a uint8, b uint8) uint8 {
	if a > b {
		return a
	} else {
		return b
	}
}
