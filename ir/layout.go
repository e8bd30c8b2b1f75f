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

type _InstPos struct {
    b Block
    i int
}

// Layout is the program order of blocks and of the instructions inside each
// block. The first block is the entry block.
type Layout struct {
    blocks []Block
    insts  map[Block][]Inst
    where  map[Inst]_InstPos
}

func NewLayout() *Layout {
    return &Layout {
        insts: make(map[Block][]Inst),
        where: make(map[Inst]_InstPos),
    }
}

func (self *Layout) IsBlockInserted(bb Block) bool {
    _, ok := self.insts[bb]
    return ok
}

func (self *Layout) AppendBlock(bb Block) {
    if self.IsBlockInserted(bb) {
        panic(fmt.Sprintf("ir: %s is already in the layout", bb))
    } else {
        self.blocks = append(self.blocks, bb)
        self.insts[bb] = nil
    }
}

func (self *Layout) AppendInst(inst Inst, bb Block) {
    if _, ok := self.where[inst]; ok {
        panic(fmt.Sprintf("ir: %s is already in the layout", inst))
    } else if !self.IsBlockInserted(bb) {
        panic(fmt.Sprintf("ir: %s is not in the layout", bb))
    } else {
        self.where[inst] = _InstPos { b: bb, i: len(self.insts[bb]) }
        self.insts[bb] = append(self.insts[bb], inst)
    }
}

// Blocks returns all the blocks in layout order.
func (self *Layout) Blocks() []Block {
    return self.blocks
}

func (self *Layout) BlockInsts(bb Block) []Inst {
    return self.insts[bb]
}

func (self *Layout) EntryBlock() (Block, bool) {
    if len(self.blocks) == 0 {
        return 0, false
    } else {
        return self.blocks[0], true
    }
}

func (self *Layout) FirstInst(bb Block) (Inst, bool) {
    if ins := self.insts[bb]; len(ins) == 0 {
        return 0, false
    } else {
        return ins[0], true
    }
}

func (self *Layout) LastInst(bb Block) (Inst, bool) {
    if ins := self.insts[bb]; len(ins) == 0 {
        return 0, false
    } else {
        return ins[len(ins) - 1], true
    }
}

func (self *Layout) InstBlock(inst Inst) (Block, bool) {
    p, ok := self.where[inst]
    return p.b, ok
}

// InstIndex returns the position of inst within its block.
func (self *Layout) InstIndex(inst Inst) int {
    if p, ok := self.where[inst]; ok {
        return p.i
    } else {
        panic(fmt.Sprintf("ir: %s is not in the layout", inst))
    }
}
