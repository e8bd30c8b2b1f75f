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

type Opcode uint8

const (
    OpNop Opcode = iota
    OpIconst
    OpF32const
    OpF64const
    OpUextend
    OpSextend
    OpIreduce
    OpIadd
    OpIsub
    OpIneg
    OpImul
    OpUdiv
    OpSdiv
    OpUrem
    OpSrem
    OpBand
    OpBor
    OpBxor
    OpBnot
    OpIshl
    OpUshr
    OpSshr
    OpRotl
    OpRotr
    OpIcmp
    OpSelect
    OpLoad
    OpUload8
    OpSload8
    OpUload16
    OpSload16
    OpUload32
    OpSload32
    OpStore
    OpIstore8
    OpIstore16
    OpIstore32
    OpStackLoad
    OpStackStore
    OpAtomicLoad
    OpAtomicStore
    OpAtomicRmw
    OpAtomicCas
    OpFence
    OpCall
    OpCallIndirect
    OpTrap
    OpTrapz
    OpDebugtrap
    OpJump
    OpBrif
    OpReturn
    _OpCount
)

const (
    _F_trap = 1 << iota
    _F_side
    _F_load
    _F_store
    _F_mem
    _F_term
)

const (
    _N_var = -1
)

type _OpInfo struct {
    name  string
    flags uint8
    nargs int8
    ndest int8
}

var _OpTab = [_OpCount]_OpInfo {
    OpNop          : { "nop"           , 0                                       , 0      , 0 },
    OpIconst       : { "iconst"        , 0                                       , 0      , 0 },
    OpF32const     : { "f32const"      , 0                                       , 0      , 0 },
    OpF64const     : { "f64const"      , 0                                       , 0      , 0 },
    OpUextend      : { "uextend"       , 0                                       , 1      , 0 },
    OpSextend      : { "sextend"       , 0                                       , 1      , 0 },
    OpIreduce      : { "ireduce"       , 0                                       , 1      , 0 },
    OpIadd         : { "iadd"          , 0                                       , 2      , 0 },
    OpIsub         : { "isub"          , 0                                       , 2      , 0 },
    OpIneg         : { "ineg"          , 0                                       , 1      , 0 },
    OpImul         : { "imul"          , 0                                       , 2      , 0 },
    OpUdiv         : { "udiv"          , _F_trap                                 , 2      , 0 },
    OpSdiv         : { "sdiv"          , _F_trap                                 , 2      , 0 },
    OpUrem         : { "urem"          , _F_trap                                 , 2      , 0 },
    OpSrem         : { "srem"          , _F_trap                                 , 2      , 0 },
    OpBand         : { "band"          , 0                                       , 2      , 0 },
    OpBor          : { "bor"           , 0                                       , 2      , 0 },
    OpBxor         : { "bxor"          , 0                                       , 2      , 0 },
    OpBnot         : { "bnot"          , 0                                       , 1      , 0 },
    OpIshl         : { "ishl"          , 0                                       , 2      , 0 },
    OpUshr         : { "ushr"          , 0                                       , 2      , 0 },
    OpSshr         : { "sshr"          , 0                                       , 2      , 0 },
    OpRotl         : { "rotl"          , 0                                       , 2      , 0 },
    OpRotr         : { "rotr"          , 0                                       , 2      , 0 },
    OpIcmp         : { "icmp"          , 0                                       , 2      , 0 },
    OpSelect       : { "select"        , 0                                       , 3      , 0 },
    OpLoad         : { "load"          , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpUload8       : { "uload8"        , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpSload8       : { "sload8"        , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpUload16      : { "uload16"       , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpSload16      : { "sload16"       , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpUload32      : { "uload32"       , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpSload32      : { "sload32"       , _F_trap | _F_load | _F_mem              , 1      , 0 },
    OpStore        : { "store"         , _F_trap | _F_store | _F_mem             , 2      , 0 },
    OpIstore8      : { "istore8"       , _F_trap | _F_store | _F_mem             , 2      , 0 },
    OpIstore16     : { "istore16"      , _F_trap | _F_store | _F_mem             , 2      , 0 },
    OpIstore32     : { "istore32"      , _F_trap | _F_store | _F_mem             , 2      , 0 },
    OpStackLoad    : { "stack_load"    , _F_load                                 , 0      , 0 },
    OpStackStore   : { "stack_store"   , _F_store                                , 1      , 0 },
    OpAtomicLoad   : { "atomic_load"   , _F_trap | _F_side | _F_load | _F_mem    , 1      , 0 },
    OpAtomicStore  : { "atomic_store"  , _F_trap | _F_side | _F_store | _F_mem   , 2      , 0 },
    OpAtomicRmw    : { "atomic_rmw"    , _F_trap | _F_side | _F_load | _F_store | _F_mem, 2, 0 },
    OpAtomicCas    : { "atomic_cas"    , _F_trap | _F_side | _F_load | _F_store | _F_mem, 3, 0 },
    OpFence        : { "fence"         , _F_side                                 , 0      , 0 },
    OpCall         : { "call"          , _F_trap | _F_side | _F_load | _F_store  , _N_var , 0 },
    OpCallIndirect : { "call_indirect" , _F_trap | _F_side | _F_load | _F_store  , _N_var , 0 },
    OpTrap         : { "trap"          , _F_trap | _F_term                       , 0      , 0 },
    OpTrapz        : { "trapz"         , _F_trap                                 , 1      , 0 },
    OpDebugtrap    : { "debugtrap"     , _F_side                                 , 0      , 0 },
    OpJump         : { "jump"          , _F_term                                 , 0      , 1 },
    OpBrif         : { "brif"          , _F_term                                 , 1      , 2 },
    OpReturn       : { "return"        , _F_term                                 , _N_var , 0 },
}

var _OpNames = make(map[string]Opcode, _OpCount)

func init() {
    for i, op := range _OpTab {
        _OpNames[op.name] = Opcode(i)
    }
}

// OpcodeByName looks up an opcode by its textual name, e.g. "iadd".
func OpcodeByName(name string) (Opcode, bool) {
    op, ok := _OpNames[name]
    return op, ok
}

// NumOpcodes returns the number of defined opcodes.
func NumOpcodes() int {
    return int(_OpCount)
}

func (self Opcode) info() *_OpInfo {
    if self < _OpCount {
        return &_OpTab[self]
    } else {
        panic(fmt.Sprintf("ir: invalid opcode %d", uint8(self)))
    }
}

func (self Opcode) String() string {
    return self.info().name
}

// CanTrap reports whether the instruction may raise a trap.
func (self Opcode) CanTrap() bool {
    return self.info().flags & _F_trap != 0
}

// OtherSideEffects reports whether the instruction has side effects other than
// trapping, loading and storing, which forbids removing or reordering it.
func (self Opcode) OtherSideEffects() bool {
    return self.info().flags & _F_side != 0
}

func (self Opcode) CanLoad() bool {
    return self.info().flags & _F_load != 0
}

func (self Opcode) CanStore() bool {
    return self.info().flags & _F_store != 0
}

// HasMemFlags reports whether instructions of this opcode carry a MemFlags.
func (self Opcode) HasMemFlags() bool {
    return self.info().flags & _F_mem != 0
}

func (self Opcode) IsTerminator() bool {
    return self.info().flags & _F_term != 0
}

func (self Opcode) IsBranch() bool {
    return self.info().ndest != 0
}

// IsPure reports whether the instruction can be freely duplicated, moved or
// removed, that is, it does not belong to the side-effecting skeleton.
func (self Opcode) IsPure() bool {
    return self.info().flags & (_F_trap | _F_side | _F_load | _F_store | _F_term) == 0
}
