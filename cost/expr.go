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

package cost

import (
	"fmt"

	"github.com/cloudwego/egopt/ir"
)

// ExprCost is the cost of an expression DAG. It remembers every instruction
// whose cost has been counted, so an instruction shared by several operands
// contributes to the total only once.
//
// The total is always the saturating sum of the costs recorded in the set.
type ExprCost struct {
	total Cost
	insts InstSet
}

// ZeroExpr returns an empty accumulator with a total of Zero.
func ZeroExpr() *ExprCost {
	return &ExprCost{insts: make(InstSet)}
}

// ForInst returns the cost of the single instruction inst with the default
// model.
func ForInst(dfg *ir.DataFlowGraph, inst ir.Inst) *ExprCost {
	return DefaultModel().ForInst(dfg, inst)
}

// Add unions the instructions of other into self. Instructions already in
// self are not counted again. other is left untouched.
func (self *ExprCost) Add(other *ExprCost) {
	if len(other.insts) > len(self.insts) {
		self.merge(other.insts.clone(), other.total, self.insts)
	} else {
		self.merge(self.insts, self.total, other.insts)
	}
	ExprAddCount.Inc()
}

func (self *ExprCost) merge(dst InstSet, total Cost, src InstSet) {
	if dst == nil {
		dst = make(InstSet, len(src))
	}

	/* fold the smaller set into the larger one */
	for i, c := range src {
		if dst.add(i, c) {
			total = total.Add(c)
		}
	}

	/* update the accumulator */
	self.insts = dst
	self.total = total
}

// Total returns the accumulated cost.
func (self *ExprCost) Total() Cost {
	return self.total
}

// Len returns the number of distinct instructions counted.
func (self *ExprCost) Len() int {
	return len(self.insts)
}

// Contains reports whether inst has been counted.
func (self *ExprCost) Contains(inst ir.Inst) bool {
	return self.insts.Contains(inst)
}

// Insts returns the counted instructions in ascending order.
func (self *ExprCost) Insts() []ir.Inst {
	return self.insts.Insts()
}

// Compare orders two expressions by their totals only.
func (self *ExprCost) Compare(other *ExprCost) int {
	return self.total.Compare(other.total)
}

func (self *ExprCost) Less(other *ExprCost) bool {
	return self.total.Less(other.total)
}

func (self *ExprCost) String() string {
	return fmt.Sprintf("%s %s", self.total, self.insts)
}

// Cheapest returns the index of the candidate with the smallest total, the
// first one wins ties. It returns -1 if there are no candidates.
func Cheapest(cands []*ExprCost) int {
	ret := -1
	for i, c := range cands {
		if ret < 0 || c.Less(cands[ret]) {
			ret = i
		}
	}

	/* update the statistics */
	SelectCount.Inc()
	CandidateCount.Add(int64(len(cands)))
	return ret
}
