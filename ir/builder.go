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

// Builder constructs a Function block by block. Instructions are always
// appended to the current block, which must be selected with SwitchToBlock.
type Builder struct {
    fn  *Function
    bb  Block
    ok  bool
}

func CreateBuilder(name string) *Builder {
    return &Builder {
        fn: NewFunction(name),
    }
}

// CreateBlock allocates a new block. It enters the layout the first time it
// is switched to.
func (self *Builder) CreateBlock() Block {
    return self.fn.DFG.MakeBlock()
}

func (self *Builder) SwitchToBlock(bb Block) {
    if !self.fn.Layout.IsBlockInserted(bb) {
        self.fn.Layout.AppendBlock(bb)
    }
    self.bb = bb
    self.ok = true
}

func (self *Builder) CurrentBlock() Block {
    return self.bb
}

// Param appends a parameter to the current block.
func (self *Builder) Param(t Type) Value {
    return self.fn.DFG.AppendBlockParam(self.current(), t)
}

func (self *Builder) current() Block {
    if !self.ok {
        panic("ir: no current block")
    }

    /* cannot append after terminators */
    if last, ok := self.fn.Layout.LastInst(self.bb); ok && self.fn.DFG.Opcode(last).IsTerminator() {
        panic(fmt.Sprintf("ir: %s is already terminated", self.bb))
    }

    /* everything is fine */
    return self.bb
}

func (self *Builder) ins(data InstData) Inst {
    bb := self.current()
    ins := self.fn.DFG.MakeInst(data)
    self.fn.Layout.AppendInst(ins, bb)
    return ins
}

func (self *Builder) insv(data InstData, t Type) Value {
    return self.fn.DFG.MakeResult(self.ins(data), t)
}

func (self *Builder) Nop() Inst {
    return self.ins(InstData { Op: OpNop })
}

func (self *Builder) Iconst(t Type, v int64) Value {
    return self.insv(InstData { Op: OpIconst, Type: t, Imm: v }, t)
}

func (self *Builder) Unary(op Opcode, t Type, x Value) Value {
    return self.insv(InstData { Op: op, Type: t, Args: []Value { x } }, t)
}

func (self *Builder) Binary(op Opcode, x Value, y Value) Value {
    t := self.fn.DFG.ValueType(x)
    return self.insv(InstData { Op: op, Type: t, Args: []Value { x, y } }, t)
}

func (self *Builder) Iadd(x Value, y Value) Value { return self.Binary(OpIadd, x, y) }
func (self *Builder) Isub(x Value, y Value) Value { return self.Binary(OpIsub, x, y) }
func (self *Builder) Imul(x Value, y Value) Value { return self.Binary(OpImul, x, y) }
func (self *Builder) Band(x Value, y Value) Value { return self.Binary(OpBand, x, y) }
func (self *Builder) Ishl(x Value, y Value) Value { return self.Binary(OpIshl, x, y) }
func (self *Builder) Udiv(x Value, y Value) Value { return self.Binary(OpUdiv, x, y) }

func (self *Builder) Uextend(t Type, x Value) Value {
    return self.Unary(OpUextend, t, x)
}

// Load emits a plain full-width load of type t from addr + off.
func (self *Builder) Load(t Type, flags MemFlags, addr Value, off int32) Value {
    return self.LoadOp(OpLoad, t, flags, addr, off)
}

// LoadOp emits any of the load opcodes, including the extending ones.
func (self *Builder) LoadOp(op Opcode, t Type, flags MemFlags, addr Value, off int32) Value {
    return self.insv(InstData {
        Op    : op,
        Type  : t,
        Args  : []Value { addr },
        Imm   : int64(off),
        Flags : flags,
    }, t)
}

// Store emits a full-width store of val to addr + off.
func (self *Builder) Store(flags MemFlags, val Value, addr Value, off int32) Inst {
    return self.StoreOp(OpStore, flags, val, addr, off)
}

func (self *Builder) StoreOp(op Opcode, flags MemFlags, val Value, addr Value, off int32) Inst {
    return self.ins(InstData {
        Op    : op,
        Type  : self.fn.DFG.ValueType(val),
        Args  : []Value { val, addr },
        Imm   : int64(off),
        Flags : flags,
    })
}

func (self *Builder) StackLoad(t Type, off int32) Value {
    return self.insv(InstData { Op: OpStackLoad, Type: t, Imm: int64(off) }, t)
}

func (self *Builder) StackStore(val Value, off int32) Inst {
    return self.ins(InstData { Op: OpStackStore, Args: []Value { val }, Imm: int64(off) })
}

func (self *Builder) AtomicLoad(t Type, flags MemFlags, addr Value) Value {
    return self.insv(InstData { Op: OpAtomicLoad, Type: t, Args: []Value { addr }, Flags: flags }, t)
}

func (self *Builder) AtomicStore(flags MemFlags, val Value, addr Value) Inst {
    return self.ins(InstData { Op: OpAtomicStore, Type: self.fn.DFG.ValueType(val), Args: []Value { val, addr }, Flags: flags })
}

func (self *Builder) AtomicRmw(flags MemFlags, addr Value, val Value) Value {
    t := self.fn.DFG.ValueType(val)
    return self.insv(InstData { Op: OpAtomicRmw, Type: t, Args: []Value { addr, val }, Flags: flags }, t)
}

func (self *Builder) Fence() Inst {
    return self.ins(InstData { Op: OpFence })
}

// Call emits a direct call to the function with the given index.
func (self *Builder) Call(fn int64, args ...Value) Inst {
    return self.ins(InstData { Op: OpCall, Args: args, Imm: fn })
}

func (self *Builder) CallIndirect(callee Value, args ...Value) Inst {
    return self.ins(InstData { Op: OpCallIndirect, Args: append([]Value { callee }, args...) })
}

func (self *Builder) Trapz(cond Value) Inst {
    return self.ins(InstData { Op: OpTrapz, Args: []Value { cond } })
}

func (self *Builder) Debugtrap() Inst {
    return self.ins(InstData { Op: OpDebugtrap })
}

func (self *Builder) Trap() Inst {
    return self.ins(InstData { Op: OpTrap })
}

func (self *Builder) Jump(to Block) Inst {
    return self.ins(InstData { Op: OpJump, Dests: []Block { to } })
}

func (self *Builder) Brif(cond Value, t Block, f Block) Inst {
    return self.ins(InstData { Op: OpBrif, Args: []Value { cond }, Dests: []Block { t, f } })
}

func (self *Builder) Return(vals ...Value) Inst {
    return self.ins(InstData { Op: OpReturn, Args: vals })
}

// Build finishes the function. Every block in the layout must be terminated.
func (self *Builder) Build() *Function {
    for _, bb := range self.fn.Layout.Blocks() {
        if last, ok := self.fn.Layout.LastInst(bb); !ok || !self.fn.DFG.Opcode(last).IsTerminator() {
            panic(fmt.Sprintf("ir: %s is not terminated", bb))
        }
    }

    /* hand over the function */
    fn := self.fn
    self.fn, self.ok = nil, false
    return fn
}
