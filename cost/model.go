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
	"bytes"
	"fmt"
	"os"

	"github.com/cloudwego/egopt/ir"
	"github.com/davecgh/go-spew/spew"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Model is a cost model with optional per-opcode overrides of the base cost.
// A Model is immutable once built and may be shared between compilations.
type Model struct {
	overrides map[ir.Opcode]Cost
}

var _DefaultModel = new(Model)

// DefaultModel returns the model with the built-in heuristic table.
func DefaultModel() *Model {
	return _DefaultModel
}

// With returns a copy of the model with the base cost of op replaced.
func (self *Model) With(op ir.Opcode, c Cost) *Model {
	ret := &Model{overrides: maps.Clone(self.overrides)}
	if ret.overrides == nil {
		ret.overrides = make(map[ir.Opcode]Cost)
	}
	ret.overrides[op] = c
	return ret
}

// OfOpcode returns the base cost of op under this model.
func (self *Model) OfOpcode(op ir.Opcode) Cost {
	if c, ok := self.overrides[op]; ok {
		return c
	} else {
		return OfOpcode(op)
	}
}

func (self *Model) OfSkeletonOp(op ir.Opcode, arity int) Cost {
	return skeleton(self.OfOpcode(op), arity)
}

func (self *Model) OfPureOp(op ir.Opcode, operands ...Cost) Cost {
	return pure(self.OfOpcode(op), operands)
}

// ForInst returns the cost of the single instruction inst.
func (self *Model) ForInst(dfg *ir.DataFlowGraph, inst ir.Inst) *ExprCost {
	c := self.OfOpcode(dfg.Opcode(inst))
	return &ExprCost{total: c, insts: InstSet{inst: c}}
}

// Overrides returns the overridden opcodes in ascending order.
func (self *Model) Overrides() []ir.Opcode {
	rr := maps.Keys(self.overrides)
	slices.Sort(rr)
	return rr
}

// Dump returns a human readable dump of the overrides.
func (self *Model) Dump() string {
	rr := make(map[string]string, len(self.overrides))
	for op, c := range self.overrides {
		rr[op.String()] = c.String()
	}
	return spew.Sdump(rr)
}

type _ModelFile struct {
	Opcodes map[string]uint32 `toml:"opcodes"`
}

// ParseModel builds a model from a TOML document of the form
//
//	[opcodes]
//	imul = 6
//	load = 30
//
// where every value is the operator cost of the named opcode. All the
// problems in the table are reported together.
func ParseModel(data []byte) (*Model, error) {
	var err error
	var mf _ModelFile

	/* decode the document, rejecting unknown keys */
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	/* syntax errors stop everything */
	if err = dec.Decode(&mf); err != nil {
		return nil, fmt.Errorf("cost: invalid cost table: %w", err)
	}

	/* sort the names for stable error messages */
	ret := &Model{overrides: make(map[ir.Opcode]Cost, len(mf.Opcodes))}
	names := maps.Keys(mf.Opcodes)
	slices.Sort(names)

	/* validate every entry */
	for _, name := range names {
		op, ok := ir.OpcodeByName(name)
		val := mf.Opcodes[name]

		/* check for the opcode and the value */
		if !ok {
			err = multierr.Append(err, fmt.Errorf("cost: unknown opcode %q", name))
		} else if val >= MaxOpCost {
			err = multierr.Append(err, fmt.Errorf("cost: cost %d of opcode %q is out of range", val, name))
		} else {
			ret.overrides[op] = New(val, 0)
		}
	}

	/* check for errors */
	if err != nil {
		return nil, err
	} else {
		return ret, nil
	}
}

// LoadModel reads and parses the cost table at path.
func LoadModel(path string) (*Model, error) {
	if buf, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("cost: cannot read cost table: %w", err)
	} else {
		return ParseModel(buf)
	}
}
