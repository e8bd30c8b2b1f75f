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

    `github.com/cloudwego/egopt/ir`
    `github.com/oleiade/lane`
    `go.uber.org/zap`
)

// LastStoreTracker computes the LastStores summary at the entry of every
// reachable block with a worklist fixpoint over the CFG.
//
// Every region only ever moves from a concrete state to BeforeInst of a fixed
// merge point, so the lattice has finite height and the iteration terminates.
type LastStoreTracker struct {
    fn     *ir.Function
    cfg    *ir.ControlFlowGraph
    log    *zap.Logger
    limit  int
    rounds int
    input  []*LastStores
}

func newLastStoreTracker(fn *ir.Function, cfg *ir.ControlFlowGraph, conf Config) *LastStoreTracker {
    return &LastStoreTracker {
        fn    : fn,
        cfg   : cfg,
        log   : conf.logger(),
        limit : conf.MaxRounds,
        input : make([]*LastStores, fn.DFG.NumBlocks()),
    }
}

// Rounds returns the number of blocks processed before convergence.
func (self *LastStoreTracker) Rounds() int {
    return self.rounds
}

// Input returns the converged entry state of bb, or nil if bb is unreachable.
func (self *LastStoreTracker) Input(bb ir.Block) *LastStores {
    return self.input[bb]
}

func (self *LastStoreTracker) solve() {
    q := lane.NewStack()
    m := make(map[ir.Block]struct{})

    /* every region starts in the Entry state */
    if _, ok := self.fn.Layout.FirstInst(self.cfg.Entry); !ok {
        panic(fmt.Sprintf("alias: entry block %s is empty", self.cfg.Entry))
    }

    /* start from the entry block */
    q.Push(self.cfg.Entry)
    m[self.cfg.Entry] = struct{}{}
    self.input[self.cfg.Entry] = new(LastStores)

    /* iterate until no block entry state changes */
    for !q.Empty() {
        bb := q.Pop().(ir.Block)
        delete(m, bb)

        /* guard against runaway iterations */
        if self.rounds++; self.limit != 0 && self.rounds > self.limit {
            panic(fmt.Sprintf("alias: fixpoint did not converge within %d rounds", self.limit))
        }

        /* walk the block */
        st := *self.input[bb]
        for _, ins := range self.fn.Layout.BlockInsts(bb) {
            st.update(self.fn.DFG, ins)
        }

        /* trace the block exit state */
        self.log.Debug("block visited",
            zap.Int("round", self.rounds),
            zap.Stringer("block", bb),
            zap.Stringer("exit", &st),
        )

        /* merge into every successor, and revisit the ones that changed */
        for _, succ := range self.cfg.Successors(bb) {
            if self.propagate(succ, &st) {
                if _, ok := m[succ]; !ok {
                    m[succ] = struct{}{}
                    q.Push(succ)
                }
            }
        }
    }
}

func (self *LastStoreTracker) propagate(succ ir.Block, st *LastStores) bool {
    loc, ok := self.fn.Layout.FirstInst(succ)
    if !ok {
        panic(fmt.Sprintf("alias: block %s is empty", succ))
    }

    /* first visit, just take the incoming state */
    if self.input[succ] == nil {
        in := *st
        self.input[succ] = &in
        return true
    }

    /* otherwise meet with what we had */
    return self.input[succ].meetFrom(st, loc)
}
