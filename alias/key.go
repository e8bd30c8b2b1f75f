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
    `github.com/cloudwego/egopt/ir`
)

// LoadKey is the identity of the value a load reads. It is one input of the
// node identity used by hashconsing: two loads with equal keys read the same
// value, and a load whose key equals StoreKey(s) reads exactly what s wrote.
// Deciding to merge the nodes is up to the caller.
type LoadKey struct {
    State  MemoryState
    Addr   ir.Value
    Op     ir.Opcode
    Offset int32
    Type   ir.Type
}

// LoadKey builds the key of a plain load, ok is false for anything else.
func (self *Analysis) LoadKey(dfg *ir.DataFlowGraph, inst ir.Inst) (LoadKey, bool) {
    st, ok := self.StateForLoad(inst)
    if !ok {
        return LoadKey{}, false
    }

    /* build the key */
    p := dfg.Inst(inst)
    return LoadKey {
        State  : st,
        Addr   : p.Address(),
        Op     : p.Op,
        Offset : p.Offset(),
        Type   : p.Type,
    }, true
}

// StoreKey builds the key a full-width load would have right after the given
// store, if it reads the same address with the same type. Only plain `store`
// instructions are forwardable, ok is false for anything else.
func StoreKey(dfg *ir.DataFlowGraph, store ir.Inst) (LoadKey, bool) {
    p := dfg.Inst(store)
    if p.Op != ir.OpStore {
        return LoadKey{}, false
    }

    /* a load observing this store reads back the stored value */
    return LoadKey {
        State  : StoreState(store),
        Addr   : p.Address(),
        Op     : ir.OpLoad,
        Offset : p.Offset(),
        Type   : p.Type,
    }, true
}

// StoredValue returns the value written by a forwardable store.
func StoredValue(dfg *ir.DataFlowGraph, store ir.Inst) ir.Value {
    if p := dfg.Inst(store); p.Op != ir.OpStore {
        panic("alias: not a forwardable store: " + dfg.DisplayInst(store))
    } else {
        return p.Args[0]
    }
}
