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
    `github.com/oleiade/lane`
)

func stacknew(bb Block) (s *lane.Stack) {
    s = lane.NewStack()
    s.Push(bb)
    return
}

// BlockIter walks the blocks reachable from the entry in post order.
type BlockIter struct {
    g *ControlFlowGraph
    b Block
    s *lane.Stack
    v map[Block]struct{}
}

func (self *ControlFlowGraph) Iter() *BlockIter {
    return &BlockIter {
        g: self,
        s: stacknew(self.Entry),
        v: map[Block]struct{}{ self.Entry: {} },
    }
}

func (self *BlockIter) Next() bool {
    var tail bool
    var this Block

    /* scan until the stack is empty */
    for !self.s.Empty() {
        tail = true
        this = self.s.Head().(Block)

        /* add all the successors */
        for _, p := range self.g.Successors(this) {
            if _, ok := self.v[p]; !ok {
                tail = false
                self.v[p] = struct{}{}
                self.s.Push(p)
                break
            }
        }

        /* all the successors are visited, pop the current node */
        if tail {
            self.b = self.s.Pop().(Block)
            return true
        }
    }

    /* no more blocks */
    return false
}

func (self *BlockIter) Block() Block {
    return self.b
}

func (self *BlockIter) ForEach(action func(bb Block)) {
    for self.Next() {
        action(self.b)
    }
}

func blockreverse(s []Block) {
    for i, j := 0, len(s) - 1; i < j; i, j = i + 1, j - 1 {
        s[i], s[j] = s[j], s[i]
    }
}

// PostOrder returns the reachable blocks in post order.
func (self *ControlFlowGraph) PostOrder() []Block {
    var ret []Block
    self.Iter().ForEach(func(bb Block) { ret = append(ret, bb) })
    return ret
}

// ReversePostOrder returns the reachable blocks in reverse post order, which
// visits every block before its successors except along back edges.
func (self *ControlFlowGraph) ReversePostOrder() []Block {
    ret := self.PostOrder()
    blockreverse(ret)
    return ret
}
