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
    `strings`
)

// InstData is the payload of a single instruction.
//
// Memory instructions keep their address in Args (loads: Args[0], stores:
// Args[1]) and their static offset in Imm. Constants and stack slot
// offsets live in Imm as well.
type InstData struct {
    Op    Opcode
    Type  Type
    Args  []Value
    Imm   int64
    Flags MemFlags
    Dests []Block
}

// MemFlags returns the flags of a memory instruction, ok is false if the
// instruction does not access memory through a MemFlags-carrying format.
func (self *InstData) MemFlags() (MemFlags, bool) {
    if self.Op.HasMemFlags() {
        return self.Flags, true
    } else {
        return 0, false
    }
}

func (self *InstData) addrIndex() int {
    switch self.Op {
        case OpLoad, OpUload8, OpSload8, OpUload16, OpSload16, OpUload32, OpSload32 : return 0
        case OpAtomicLoad, OpAtomicRmw, OpAtomicCas                                 : return 0
        case OpStore, OpIstore8, OpIstore16, OpIstore32, OpAtomicStore              : return 1
        default                                                                     : panic("ir: not a memory instruction: " + self.Op.String())
    }
}

// Address returns the address operand of a memory instruction.
func (self *InstData) Address() Value {
    return self.Args[self.addrIndex()]
}

// Offset returns the static address offset of a memory instruction.
func (self *InstData) Offset() int32 {
    if self.Op.HasMemFlags() {
        return int32(self.Imm)
    } else {
        panic("ir: not a memory instruction: " + self.Op.String())
    }
}

func (self *InstData) check() {
    op := self.Op.info()

    /* check the operand count */
    if op.nargs != _N_var && int(op.nargs) != len(self.Args) {
        panic(fmt.Sprintf("ir: %s expects %d arguments, got %d", op.name, op.nargs, len(self.Args)))
    }

    /* check the branch targets */
    if int(op.ndest) != len(self.Dests) {
        panic(fmt.Sprintf("ir: %s expects %d destinations, got %d", op.name, op.ndest, len(self.Dests)))
    }

    /* call_indirect needs the callee */
    if self.Op == OpCallIndirect && len(self.Args) == 0 {
        panic("ir: call_indirect without callee")
    }

    /* memory flags on a non-memory instruction are meaningless */
    if self.Flags != 0 && !self.Op.HasMemFlags() {
        panic(fmt.Sprintf("ir: %s does not take memory flags", op.name))
    }
}

// ValueDef describes where a value is defined, either as the result of an
// instruction or as a block parameter.
type ValueDef struct {
    Inst  Inst
    Block Block
    Param bool
    Type  Type
}

// DataFlowGraph owns the instructions, values and blocks of a function.
type DataFlowGraph struct {
    insts   []InstData
    results []Value
    values  []ValueDef
    params  [][]Value
}

func NewDataFlowGraph() *DataFlowGraph {
    return new(DataFlowGraph)
}

func (self *DataFlowGraph) NumInsts() int {
    return len(self.insts)
}

func (self *DataFlowGraph) NumBlocks() int {
    return len(self.params)
}

func (self *DataFlowGraph) NumValues() int {
    return len(self.values)
}

// MakeInst creates a new instruction without inserting it into the layout.
// It panics if the payload is inconsistent with the opcode.
func (self *DataFlowGraph) MakeInst(data InstData) Inst {
    data.check()
    self.insts = append(self.insts, data)
    self.results = append(self.results, ValueNone)
    return Inst(len(self.insts) - 1)
}

// MakeResult attaches a result value of type t to inst.
func (self *DataFlowGraph) MakeResult(inst Inst, t Type) Value {
    if self.results[inst] != ValueNone {
        panic(fmt.Sprintf("ir: %s already has a result", inst))
    }

    /* allocate the value */
    v := Value(len(self.values))
    self.values = append(self.values, ValueDef { Inst: inst, Type: t })
    self.results[inst] = v
    return v
}

func (self *DataFlowGraph) MakeBlock() Block {
    self.params = append(self.params, nil)
    return Block(len(self.params) - 1)
}

func (self *DataFlowGraph) AppendBlockParam(bb Block, t Type) Value {
    v := Value(len(self.values))
    self.values = append(self.values, ValueDef { Block: bb, Param: true, Type: t })
    self.params[bb] = append(self.params[bb], v)
    return v
}

func (self *DataFlowGraph) BlockParams(bb Block) []Value {
    return self.params[bb]
}

// Inst returns the payload of inst. The returned pointer must not be used to
// change the opcode.
func (self *DataFlowGraph) Inst(inst Inst) *InstData {
    return &self.insts[inst]
}

func (self *DataFlowGraph) Opcode(inst Inst) Opcode {
    return self.insts[inst].Op
}

func (self *DataFlowGraph) FirstResult(inst Inst) (Value, bool) {
    v := self.results[inst]
    return v, v != ValueNone
}

func (self *DataFlowGraph) ValueDef(v Value) ValueDef {
    return self.values[v]
}

func (self *DataFlowGraph) ValueType(v Value) Type {
    return self.values[v].Type
}

// ValueInst returns the instruction defining v, ok is false for block params.
func (self *DataFlowGraph) ValueInst(v Value) (Inst, bool) {
    if d := self.values[v]; d.Param {
        return 0, false
    } else {
        return d.Inst, true
    }
}

// DisplayInst renders inst in a textual form, e.g. "v3 = load.i64 heap v1+8".
func (self *DataFlowGraph) DisplayInst(inst Inst) string {
    var sb strings.Builder
    var args []string

    /* result value, if any */
    p := &self.insts[inst]
    if v, ok := self.FirstResult(inst); ok {
        sb.WriteString(v.String())
        sb.WriteString(" = ")
    }

    /* opcode and controlling type */
    sb.WriteString(p.Op.String())
    if p.Type != TypeInvalid {
        sb.WriteByte('.')
        sb.WriteString(p.Type.String())
    }

    /* memory flags */
    if fl, ok := p.MemFlags(); ok && fl != 0 {
        sb.WriteByte(' ')
        sb.WriteString(fl.String())
    }

    /* operands */
    for _, v := range p.Args {
        args = append(args, v.String())
    }

    /* memory offsets are attached to the address, other immediates go last */
    switch {
        case p.Op.HasMemFlags() && p.Imm != 0 : args[p.addrIndex()] += fmt.Sprintf("%+d", p.Imm)
        case p.Op == OpIconst                 : args = append(args, fmt.Sprint(p.Imm))
        case p.Op == OpStackLoad              : args = append(args, fmt.Sprintf("ss%+d", p.Imm))
        case p.Op == OpStackStore             : args = append(args, fmt.Sprintf("ss%+d", p.Imm))
        case p.Op == OpCall                   : args = append([]string { fmt.Sprintf("fn%d", p.Imm) }, args...)
    }

    /* branch targets */
    for _, bb := range p.Dests {
        args = append(args, bb.String())
    }

    /* join them together */
    if len(args) != 0 {
        sb.WriteByte(' ')
        sb.WriteString(strings.Join(args, ", "))
    }
    return sb.String()
}
