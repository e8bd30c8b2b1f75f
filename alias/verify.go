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
    `go.uber.org/multierr`
    `golang.org/x/exp/maps`
    `golang.org/x/exp/slices`
)

// Verify checks that every recorded answer is consistent with the dominance
// relation: the instruction named by a Store, AfterInst or BeforeInst state must
// execute on every path to the load. It returns all violations found.
func Verify(fn *ir.Function, cfg *ir.ControlFlowGraph, a *Analysis) (err error) {
    dt := ir.BuildDominatorTree(cfg)
    ins := maps.Keys(a.loads)
    slices.Sort(ins)

    /* check every load */
    for _, ld := range ins {
        if e := verifyLoad(fn, dt, ld, a.loads[ld]); e != nil {
            err = multierr.Append(err, e)
        }
    }
    return
}

func verifyLoad(fn *ir.Function, dt *ir.DominatorTree, ld ir.Inst, st MemoryState) error {
    if st.Kind == Entry {
        return nil
    }

    /* locate both instructions */
    lb, ok1 := fn.Layout.InstBlock(ld)
    sb, ok2 := fn.Layout.InstBlock(st.Inst)
    if !ok1 || !ok2 {
        return fmt.Errorf("alias: %s observes %s which is not in the layout", ld, st)
    }

    /* BeforeInst only ever names the first instruction of a block */
    if first, _ := fn.Layout.FirstInst(sb); st.Kind == BeforeInst && first != st.Inst {
        return fmt.Errorf("alias: %s observes %s which does not start a block", ld, st)
    }

    /* different blocks, the writer block must dominate */
    if lb != sb {
        if !dt.Dominates(sb, lb) {
            return fmt.Errorf("alias: %s observes %s, but %s does not dominate %s", ld, st, sb, lb)
        } else {
            return nil
        }
    }

    /* same block, the writer must come first */
    i := fn.Layout.InstIndex(st.Inst)
    j := fn.Layout.InstIndex(ld)
    if i > j || (i == j && st.Kind != BeforeInst) {
        return fmt.Errorf("alias: %s observes %s which comes after it", ld, st)
    } else {
        return nil
    }
}
