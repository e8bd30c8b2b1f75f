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

package ir

import (
    `os`
    `strings`
    `testing`

    `github.com/brianvoe/gofakeit/v6`
    `github.com/stretchr/testify/require`
    `gonum.org/v1/gonum/graph/flow`
    `gonum.org/v1/gonum/graph/simple`
)

func buildSample() (*Function, []Block) {
    b := CreateBuilder("sample")
    b0 := b.CreateBlock()
    b1 := b.CreateBlock()
    b2 := b.CreateBlock()
    b.SwitchToBlock(b0)
    p := b.Param(I64)
    v := b.Iconst(I64, 42)
    b.Store(HeapFlags, v, p, 8)
    x := b.Load(I32, TableFlags, p, -4)
    b.Brif(x, b1, b2)
    b.SwitchToBlock(b1)
    b.StackStore(x, 16)
    b.Call(3, p, x)
    b.Jump(b2)
    b.SwitchToBlock(b2)
    b.Return(x)
    return b.Build(), []Block { b0, b1, b2 }
}

func TestBuilder_Display(t *testing.T) {
    fn, bbs := buildSample()
    ins := fn.Layout.BlockInsts(bbs[0])
    require.Len(t, ins, 4)
    require.Equal(t, "v1 = iconst.i64 42", fn.DFG.DisplayInst(ins[0]))
    require.Equal(t, "store.i64 notrap aligned heap v1, v0+8", fn.DFG.DisplayInst(ins[1]))
    require.Equal(t, "v2 = load.i32 notrap aligned table v0-4", fn.DFG.DisplayInst(ins[2]))
    require.Equal(t, "brif v2, block1, block2", fn.DFG.DisplayInst(ins[3]))
    ins = fn.Layout.BlockInsts(bbs[1])
    require.Equal(t, "stack_store v2, ss+16", fn.DFG.DisplayInst(ins[0]))
    require.Equal(t, "call fn3, v0, v2", fn.DFG.DisplayInst(ins[1]))
    require.True(t, strings.HasPrefix(fn.String(), "function %sample {\nblock0(v0: i64):\n"))
    println(fn.String())
}

func TestBuilder_Misuse(t *testing.T) {
    b := CreateBuilder("misuse")
    require.Panics(t, func() { b.Nop() })
    b.SwitchToBlock(b.CreateBlock())
    b.Return()
    require.Panics(t, func() { b.Nop() })
    b.SwitchToBlock(b.CreateBlock())
    require.Panics(t, func() { b.Build() })
}

func TestDataFlowGraph_Check(t *testing.T) {
    dfg := NewDataFlowGraph()
    require.Panics(t, func() { dfg.MakeInst(InstData { Op: OpIadd }) })
    require.Panics(t, func() { dfg.MakeInst(InstData { Op: OpIadd, Args: []Value { 0, 1 }, Flags: HeapFlags }) })
    require.Panics(t, func() { dfg.MakeInst(InstData { Op: OpJump }) })
    require.Panics(t, func() { dfg.MakeInst(InstData { Op: OpCallIndirect }) })
    require.Equal(t, 0, dfg.NumInsts())
}

func TestOpcode_Predicates(t *testing.T) {
    require.True(t, OpLoad.CanLoad())
    require.True(t, OpLoad.CanTrap())
    require.False(t, OpLoad.CanStore())
    require.True(t, OpCall.CanStore())
    require.True(t, OpFence.OtherSideEffects())
    require.True(t, OpIadd.IsPure())
    require.False(t, OpUdiv.IsPure())
    require.True(t, OpBrif.IsBranch())
    require.False(t, OpReturn.IsBranch())
    require.True(t, OpReturn.IsTerminator())
    require.False(t, OpStackLoad.HasMemFlags())
    op, ok := OpcodeByName("atomic_rmw")
    require.True(t, ok)
    require.Equal(t, OpAtomicRmw, op)
    _, ok = OpcodeByName("frobnicate")
    require.False(t, ok)
    for i := 0; i < NumOpcodes(); i++ {
        op, ok = OpcodeByName(Opcode(i).String())
        require.True(t, ok)
        require.Equal(t, Opcode(i), op)
    }
}

func TestMemFlags(t *testing.T) {
    fl := NewMemFlags().WithReadonly().WithRegion(RegionVmctx)
    require.True(t, fl.Readonly())
    require.False(t, fl.Notrap())
    require.True(t, fl.VmCtx())
    require.Equal(t, "readonly vmctx", fl.String())
    require.True(t, OtherFlags.Other())
    require.True(t, HeapFlags.WithRegion(RegionTable).Table())
}

func TestCFG_Malformed(t *testing.T) {
    require.Panics(t, func() { ComputeCFG(NewFunction("none")) })
    fn := NewFunction("empty")
    fn.Layout.AppendBlock(fn.DFG.MakeBlock())
    require.Panics(t, func() { ComputeCFG(fn) })
    fn = NewFunction("dangling")
    bb := fn.DFG.MakeBlock()
    fn.Layout.AppendBlock(bb)
    fn.Layout.AppendInst(fn.DFG.MakeInst(InstData { Op: OpJump, Dests: []Block { fn.DFG.MakeBlock() } }), bb)
    require.Panics(t, func() { ComputeCFG(fn) })
}

func TestCFG_Edges(t *testing.T) {
    fn, bbs := buildSample()
    cfg := ComputeCFG(fn)
    require.Equal(t, bbs[0], cfg.Entry)
    require.Equal(t, []Block { bbs[1], bbs[2] }, cfg.Successors(bbs[0]))
    require.Equal(t, []Block { bbs[0], bbs[1] }, cfg.Predecessors(bbs[2]))
    require.Equal(t, []Block { bbs[2], bbs[1], bbs[0] }, cfg.PostOrder())
    require.Equal(t, []Block { bbs[0], bbs[1], bbs[2] }, cfg.ReversePostOrder())
}

func buildRandom(f *gofakeit.Faker, n int) *Function {
    b := CreateBuilder("random")
    bbs := make([]Block, n)
    for i := range bbs {
        bbs[i] = b.CreateBlock()
    }

    /* every block either returns, jumps, or branches to random blocks */
    b.SwitchToBlock(bbs[0])
    p := b.Param(I64)
    for i, bb := range bbs {
        b.SwitchToBlock(bb)
        if i == n - 1 {
            b.Return()
            continue
        }
        switch f.Number(0, 4) {
            case 0  : b.Return()
            case 1  : b.Jump(bbs[f.Number(1, n - 1)])
            default : b.Brif(p, bbs[f.Number(1, n - 1)], bbs[f.Number(1, n - 1)])
        }
    }
    return b.Build()
}

func TestDominatorTree_MatchesOracle(t *testing.T) {
    f := gofakeit.New(1234)
    for r := 0; r < 200; r++ {
        fn := buildRandom(f, f.Number(2, 24))
        cfg := ComputeCFG(fn)
        dt := BuildDominatorTree(cfg)

        /* build the same graph with gonum */
        g := simple.NewDirectedGraph()
        for _, bb := range fn.Layout.Blocks() {
            g.AddNode(simple.Node(bb))
        }
        for _, bb := range fn.Layout.Blocks() {
            for _, to := range cfg.Successors(bb) {
                if to != bb {
                    g.SetEdge(simple.Edge { F: simple.Node(bb), T: simple.Node(to) })
                }
            }
        }

        /* compare the immediate dominators of every reachable block */
        oracle := flow.Dominators(simple.Node(cfg.Entry), g)
        reachable := make(map[Block]bool)
        for _, bb := range cfg.PostOrder() {
            reachable[bb] = true
            if bb == cfg.Entry {
                continue
            }
            idom := oracle.DominatorOf(int64(bb))
            require.NotNil(t, idom)
            require.Equal(t, Block(idom.ID()), dt.DominatedBy[bb], "idom of %s in\n%s", bb, fn)
            require.True(t, dt.Dominates(cfg.Entry, bb))
            require.True(t, dt.Dominates(dt.DominatedBy[bb], bb))
        }

        /* unreachable blocks are dominated by nothing */
        for _, bb := range fn.Layout.Blocks() {
            require.Equal(t, reachable[bb], dt.Reachable(bb))
            if !reachable[bb] {
                require.False(t, dt.Dominates(cfg.Entry, bb))
            }
        }
    }
}

func TestDot(t *testing.T) {
    fn, bbs := buildSample()
    cfg := ComputeCFG(fn)
    ss := Dot(fn, cfg, func(bb Block) []string { return []string { "note " + bb.String() } })
    require.True(t, strings.HasPrefix(ss, "digraph CFG {"))
    require.Contains(t, ss, "START -> block0")
    require.Contains(t, ss, "block0 -> block1")
    require.Contains(t, ss, "block1 -> block2")
    require.Contains(t, ss, "# note block2")
    require.Equal(t, 1, strings.Count(ss, bbs[2].String() + " [ label"))
    if fp := os.Getenv("EGOPT_DOT_OUTPUT"); fp != "" {
        require.NoError(t, os.WriteFile(fp, []byte(ss), 0644))
    }
}
