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

package alias

import (
    `fmt`
    `strings`

    `github.com/cloudwego/egopt/ir`
)

// MemoryRegion is one of the four disjoint abstract memory categories. The
// partition is assigned upstream through ir.MemFlags and trusted as is.
type MemoryRegion uint8

const (
    Heap MemoryRegion = iota
    Table
    VmCtx
    Other
    NumRegions
)

var _RegionNames = [NumRegions]string {
    Heap  : "heap",
    Table : "table",
    VmCtx : "vmctx",
    Other : "other",
}

func (self MemoryRegion) String() string {
    return _RegionNames[self]
}

// RegionOf maps the region tag of a memory access to its category.
func RegionOf(fl ir.MemFlags) MemoryRegion {
    switch {
        case fl.Heap()  : return Heap
        case fl.Table() : return Table
        case fl.VmCtx() : return VmCtx
        default         : return Other
    }
}

type StateKind uint8

const (
    // Entry means no write has happened since the function entry.
    Entry StateKind = iota

    // Store means the last write is exactly the store instruction.
    Store

    // BeforeInst means the last write is unknown, but happened before the
    // instruction, which is always the first instruction of a merge block.
    BeforeInst

    // AfterInst means the last write is unknown, and the instruction itself
    // might have written anything.
    AfterInst
)

// MemoryState is what is provably the last write to a region as observed at
// a program point. It is comparable, and two states are equal iff both the
// kind and the instruction are equal.
type MemoryState struct {
    Kind StateKind
    Inst ir.Inst
}

func EntryState() MemoryState {
    return MemoryState { Kind: Entry }
}

func StoreState(inst ir.Inst) MemoryState {
    return MemoryState { Kind: Store, Inst: inst }
}

func BeforeInstState(inst ir.Inst) MemoryState {
    return MemoryState { Kind: BeforeInst, Inst: inst }
}

func AfterInstState(inst ir.Inst) MemoryState {
    return MemoryState { Kind: AfterInst, Inst: inst }
}

func (self MemoryState) String() string {
    switch self.Kind {
        case Entry      : return "entry"
        case Store      : return fmt.Sprintf("store(%s)", self.Inst)
        case BeforeInst : return fmt.Sprintf("before(%s)", self.Inst)
        case AfterInst  : return fmt.Sprintf("after(%s)", self.Inst)
        default         : panic("unreachable")
    }
}

// LastStores is the complete summary at a program point, one state per region.
// The zero value has all the regions in the Entry state.
type LastStores [NumRegions]MemoryState

func (self *LastStores) setAll(st MemoryState) {
    for i := range self {
        self[i] = st
    }
}

// Get returns the state of region r.
func (self *LastStores) Get(r MemoryRegion) MemoryState {
    return self[r]
}

// update applies the effect of inst on the summary.
func (self *LastStores) update(dfg *ir.DataFlowGraph, inst ir.Inst) {
    p := dfg.Inst(inst)
    op := p.Op

    /* fences and fence-like instructions clobber everything */
    if hasMemoryFenceSemantics(op) {
        self.setAll(AfterInstState(inst))
        return
    }

    /* non-storing instructions do not change anything */
    if !op.CanStore() {
        return
    }

    /* stores with a region tag only clobber that region */
    if fl, ok := p.MemFlags(); ok {
        self[RegionOf(fl)] = StoreState(inst)
    } else {
        self.setAll(AfterInstState(inst))
    }
}

// meetFrom merges other into self at the start of the block whose first
// instruction is loc. Disagreeing regions become BeforeInst(loc), which is
// stable under further meets at the same point. Returns true if self changed.
func (self *LastStores) meetFrom(other *LastStores, loc ir.Inst) (changed bool) {
    for i := range self {
        if self[i] != other[i] && self[i] != BeforeInstState(loc) {
            self[i] = BeforeInstState(loc)
            changed = true
        }
    }
    return
}

func (self *LastStores) String() string {
    buf := make([]string, 0, NumRegions)
    for i, st := range self {
        buf = append(buf, fmt.Sprintf("%s: %s", MemoryRegion(i), st))
    }
    return fmt.Sprintf("{%s}", strings.Join(buf, ", "))
}

func hasMemoryFenceSemantics(op ir.Opcode) bool {
    switch op {
        case ir.OpAtomicRmw    : return true
        case ir.OpAtomicCas    : return true
        case ir.OpAtomicLoad   : return true
        case ir.OpAtomicStore  : return true
        case ir.OpFence        : return true
        case ir.OpDebugtrap    : return true
        case ir.OpCall         : return true
        case ir.OpCallIndirect : return true
        default                : return false
    }
}

// isPlainLoad reports whether op is an ordinary (non-atomic, non-stack) load,
// the only kind of load that may be forwarded or de-duplicated.
func isPlainLoad(op ir.Opcode) bool {
    switch op {
        case ir.OpLoad    : return true
        case ir.OpUload8  : return true
        case ir.OpSload8  : return true
        case ir.OpUload16 : return true
        case ir.OpSload16 : return true
        case ir.OpUload32 : return true
        case ir.OpSload32 : return true
        default           : return false
    }
}
