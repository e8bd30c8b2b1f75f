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
	"math"

	"github.com/cloudwego/egopt/ir"
)

// OfOpcode returns the heuristic base cost of a single operator. Constants and
// width conversions are nearly free, simple ALU operations are cheap, and
// anything touching memory or with side effects is penalized.
func OfOpcode(op ir.Opcode) Cost {
	switch op {
	case ir.OpIconst, ir.OpF32const, ir.OpF64const:
		return New(1, 0)
	case ir.OpUextend, ir.OpSextend, ir.OpIreduce:
		return New(1, 0)
	case ir.OpIadd, ir.OpIsub, ir.OpBand, ir.OpBor, ir.OpBxor, ir.OpBnot, ir.OpIshl, ir.OpUshr, ir.OpSshr:
		return New(3, 0)
	case ir.OpImul:
		return New(10, 0)
	}

	/* everything else */
	c := New(4, 0)
	if op.CanTrap() || op.OtherSideEffects() {
		c = c.Add(New(10, 0))
	}
	if op.CanLoad() {
		c = c.Add(New(20, 0))
	}
	if op.CanStore() {
		c = c.Add(New(50, 0))
	}
	return c
}

// OfSkeletonOp returns the cost of an operator placed in the side-effecting
// skeleton, which must execute whether or not its value is used.
func OfSkeletonOp(op ir.Opcode, arity int) Cost {
	return skeleton(OfOpcode(op), arity)
}

// OfPureOp returns the cost of a pure operator applied to operands with the
// given costs. The result is one level deeper than the deepest operand.
func OfPureOp(op ir.Opcode, operands ...Cost) Cost {
	return pure(OfOpcode(op), operands)
}

func skeleton(base Cost, arity int) Cost {
	if arity < 0 {
		panic("cost: negative arity")
	}

	/* clamp the arity into both fields */
	n := uint64(arity)
	d := uint64(arity) + 1
	if n > math.MaxUint32 {
		n = math.MaxUint32
	}
	if d > math.MaxUint8 {
		d = math.MaxUint8
	}

	/* add the arity penalty */
	return base.Add(New(uint32(n), uint8(d)))
}

func pure(base Cost, operands []Cost) Cost {
	c := base.Add(Sum(operands...))
	return New(c.OpCost(), incsat8(c.Depth()))
}
