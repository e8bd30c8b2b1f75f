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
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cloudwego/egopt/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func randomCost(f *gofakeit.Faker) Cost {
	if f.Number(0, 15) == 0 {
		return Infinity()
	} else {
		return New(uint32(f.Number(0, MaxOpCost-1)), f.Uint8())
	}
}

func TestCost_Packing(t *testing.T) {
	c := New(5, 3)
	require.Equal(t, uint32(5), c.OpCost())
	require.Equal(t, uint8(3), c.Depth())
	require.False(t, c.IsInfinite())
	require.Equal(t, "5/3", c.String())
	require.True(t, New(MaxOpCost, 0).IsInfinite())
	require.True(t, New(MaxOpCost+100, 7).IsInfinite())
	require.False(t, New(MaxOpCost-1, 255).IsInfinite())
	require.Equal(t, "inf", Infinity().String())
	require.Equal(t, Zero(), Sum())
}

func TestCost_Ordering(t *testing.T) {
	require.True(t, New(3, 200).Less(New(4, 0)))
	require.True(t, New(3, 1).Less(New(3, 2)))
	require.Equal(t, 0, New(3, 2).Compare(New(3, 2)))
	require.Equal(t, 1, Infinity().Compare(New(MaxOpCost-1, 255)))
	require.Equal(t, -1, Zero().Compare(New(0, 1)))
}

func TestCost_AddProperties(t *testing.T) {
	f := gofakeit.New(20240101)
	for i := 0; i < 1000; i++ {
		a, b, c := randomCost(f), randomCost(f), randomCost(f)
		require.Equal(t, a.Add(b), b.Add(a), "%s + %s", a, b)
		require.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)), "%s + %s + %s", a, b, c)
		require.False(t, a.Add(b).Less(a), "%s + %s", a, b)
		require.True(t, Infinity().Add(a).IsInfinite())
		require.Equal(t, a, a.Add(Zero()))
	}
}

func TestCost_DepthClamp(t *testing.T) {
	c := New(10, 255).Add(New(10, 1))
	require.Equal(t, uint8(255), c.Depth())
	require.Equal(t, uint32(20), c.OpCost())
	require.Equal(t, uint8(255), OfPureOp(ir.OpIadd, New(1, 255)).Depth())
	require.Equal(t, uint8(255), OfSkeletonOp(ir.OpCall, 1000).Depth())
}

func TestCost_Saturation(t *testing.T) {
	a := New(MaxOpCost-10, 2)
	b := New(11, 2)
	require.True(t, a.Add(b).IsInfinite())
	require.True(t, b.Add(a).IsInfinite())
	require.False(t, a.Add(New(9, 2)).IsInfinite())
	require.True(t, OfPureOp(ir.OpIadd, a, b).IsInfinite())
}

func TestCost_OpcodeTable(t *testing.T) {
	tab := map[ir.Opcode]Cost{
		ir.OpIconst:     New(1, 0),
		ir.OpUextend:    New(1, 0),
		ir.OpIreduce:    New(1, 0),
		ir.OpIadd:       New(3, 0),
		ir.OpSshr:       New(3, 0),
		ir.OpImul:       New(10, 0),
		ir.OpIcmp:       New(4, 0),
		ir.OpUdiv:       New(14, 0),
		ir.OpLoad:       New(34, 0),
		ir.OpStore:      New(64, 0),
		ir.OpStackLoad:  New(24, 0),
		ir.OpStackStore: New(54, 0),
		ir.OpFence:      New(14, 0),
		ir.OpCall:       New(84, 0),
	}
	for op, c := range tab {
		assert.Equal(t, c, OfOpcode(op), op.String())
	}
}

func TestCost_SkeletonAndPure(t *testing.T) {
	c := OfSkeletonOp(ir.OpStore, 2)
	require.Equal(t, uint32(66), c.OpCost())
	require.Equal(t, uint8(3), c.Depth())
	c = OfPureOp(ir.OpIadd, OfPureOp(ir.OpIconst), OfPureOp(ir.OpIconst))
	require.Equal(t, uint32(5), c.OpCost())
	require.Equal(t, uint8(2), c.Depth())
	require.Panics(t, func() { OfSkeletonOp(ir.OpCall, -1) })
}

func buildShared(t *testing.T) (*ir.Function, []ir.Inst) {
	b := ir.CreateBuilder("shared")
	b.SwitchToBlock(b.CreateBlock())
	x := b.Iconst(ir.I64, 1)
	y := b.Iadd(x, x)
	z := b.Imul(y, x)
	b.Return(z)
	fn := b.Build()
	var ret []ir.Inst
	for _, v := range []ir.Value{x, y, z} {
		ins, ok := fn.DFG.ValueInst(v)
		require.True(t, ok)
		ret = append(ret, ins)
	}
	return fn, ret
}

func TestExprCost_SharedCountedOnce(t *testing.T) {
	fn, ins := buildShared(t)
	a := ForInst(fn.DFG, ins[0])
	a.Add(ForInst(fn.DFG, ins[0]))
	require.Equal(t, New(1, 0), a.Total())
	require.Equal(t, 1, a.Len())

	/* x is reachable through both y and z */
	e := ForInst(fn.DFG, ins[2])
	y := ForInst(fn.DFG, ins[1])
	y.Add(ForInst(fn.DFG, ins[0]))
	e.Add(y)
	e.Add(ForInst(fn.DFG, ins[0]))
	require.Equal(t, New(14, 0), e.Total())
	require.Equal(t, []ir.Inst{ins[0], ins[1], ins[2]}, e.Insts())
	require.Equal(t, New(4, 0), y.Total(), "operand must be left untouched")
}

func TestExprCost_UnionIsOrderIndependent(t *testing.T) {
	fn, ins := buildShared(t)
	small := ForInst(fn.DFG, ins[2])
	large := ForInst(fn.DFG, ins[0])
	large.Add(ForInst(fn.DFG, ins[1]))

	/* small absorbs large, and large absorbs small */
	a := ZeroExpr()
	a.Add(small)
	a.Add(large)
	b := ZeroExpr()
	b.Add(large)
	b.Add(small)
	require.Equal(t, a.Total(), b.Total())
	require.Equal(t, a.Insts(), b.Insts())
	require.Equal(t, 2, large.Len())
	require.Equal(t, 1, small.Len())
	require.Equal(t, 0, a.Compare(b))
	require.False(t, a.Less(b))
}

func TestExprCost_Cheapest(t *testing.T) {
	fn, ins := buildShared(t)
	cands := []*ExprCost{
		ForInst(fn.DFG, ins[2]),
		ForInst(fn.DFG, ins[1]),
		ForInst(fn.DFG, ins[0]),
		ForInst(fn.DFG, ins[0]),
	}
	n := SelectCount.Load()
	require.Equal(t, 2, Cheapest(cands))
	require.Equal(t, -1, Cheapest(nil))
	require.Equal(t, n+2, SelectCount.Load())
}

func TestModel_Parse(t *testing.T) {
	m, err := ParseModel([]byte("[opcodes]\nimul = 6\nload = 30\n"))
	require.NoError(t, err)
	require.Equal(t, New(6, 0), m.OfOpcode(ir.OpImul))
	require.Equal(t, New(30, 0), m.OfOpcode(ir.OpLoad))
	require.Equal(t, New(3, 0), m.OfOpcode(ir.OpIadd))
	require.Equal(t, []ir.Opcode{ir.OpImul, ir.OpLoad}, m.Overrides())
	require.Equal(t, New(7, 1), m.OfPureOp(ir.OpImul, New(1, 0)))
	require.Contains(t, m.Dump(), "imul")
	m2 := DefaultModel().With(ir.OpIadd, New(1, 0))
	require.Equal(t, New(1, 0), m2.OfOpcode(ir.OpIadd))
	require.Equal(t, New(3, 0), DefaultModel().OfOpcode(ir.OpIadd))
}

func TestModel_Errors(t *testing.T) {
	_, err := ParseModel([]byte("[opcodes]\nfoo = 1\nbar = 2\nimul = 16777215\n"))
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 3)
	_, err = ParseModel([]byte("[opcodes\n"))
	require.Error(t, err)
	_, err = ParseModel([]byte("[other]\nx = 1\n"))
	require.Error(t, err)
	_, err = ParseModel([]byte("[opcodes]\nimul = -1\n"))
	require.Error(t, err)
}

func TestModel_Load(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "costs.toml")
	require.NoError(t, os.WriteFile(fp, []byte("[opcodes]\niadd = 2\n"), 0644))
	m, err := LoadModel(fp)
	require.NoError(t, err)
	fn, ins := buildShared(t)
	require.Equal(t, New(2, 0), m.ForInst(fn.DFG, ins[1]).Total())
	_, err = LoadModel(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
