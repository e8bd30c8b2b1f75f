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
    `fmt`
)

// ControlFlowGraph records the successors and predecessors of every block in
// a function. It is a snapshot, and must be recomputed after the function is
// modified.
type ControlFlowGraph struct {
    Entry Block
    succs map[Block][]Block
    preds map[Block][]Block
}

func appendUnique(buf []Block, bb Block) []Block {
    for _, v := range buf {
        if v == bb {
            return buf
        }
    }
    return append(buf, bb)
}

// ComputeCFG builds the control flow graph of fn. It panics if fn has no entry
// block, or any block is empty or not terminated.
func ComputeCFG(fn *Function) *ControlFlowGraph {
    entry, ok := fn.Layout.EntryBlock()
    if !ok {
        panic("ir: function has no entry block")
    }

    /* create a new CFG */
    ret := &ControlFlowGraph {
        Entry : entry,
        succs : make(map[Block][]Block),
        preds : make(map[Block][]Block),
    }

    /* add every edge */
    for _, bb := range fn.Layout.Blocks() {
        last, ok := fn.Layout.LastInst(bb)
        if !ok {
            panic(fmt.Sprintf("ir: %s is empty", bb))
        }

        /* the last instruction must be a terminator */
        p := fn.DFG.Inst(last)
        if !p.Op.IsTerminator() {
            panic(fmt.Sprintf("ir: %s is not terminated", bb))
        }

        /* link the successors */
        for _, to := range p.Dests {
            if !fn.Layout.IsBlockInserted(to) {
                panic(fmt.Sprintf("ir: %s branches to %s which is not in the layout", bb, to))
            }
            ret.succs[bb] = appendUnique(ret.succs[bb], to)
            ret.preds[to] = appendUnique(ret.preds[to], bb)
        }
    }

    /* all done */
    return ret
}

func (self *ControlFlowGraph) Successors(bb Block) []Block {
    return self.succs[bb]
}

func (self *ControlFlowGraph) Predecessors(bb Block) []Block {
    return self.preds[bb]
}
