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

package egopt

import (
	"github.com/cloudwego/egopt/alias"
	"github.com/cloudwego/egopt/cost"
	"github.com/cloudwego/egopt/internal/opts"
	"github.com/cloudwego/egopt/internal/trace"
	"github.com/cloudwego/egopt/ir"
)

func makeOptions(options []Option) opts.Options {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}
	return o
}

// AnalyzeAliases computes the last-store state of every plain load in fn.
// The CFG is computed from fn, which must not be modified while the result is
// in use. It panics if fn is malformed.
func AnalyzeAliases(fn *ir.Function, options ...Option) *alias.Analysis {
	o := makeOptions(options)
	return alias.NewWithConfig(fn, ir.ComputeCFG(fn), alias.Config{
		Logger:    trace.Logger(o.Trace),
		MaxRounds: o.MaxFixpointRounds,
	})
}

// VerifyAliases checks a previous result of AnalyzeAliases on fn against the
// dominator tree of fn, and returns every inconsistency found.
func VerifyAliases(fn *ir.Function, a *alias.Analysis) error {
	return alias.Verify(fn, ir.ComputeCFG(fn), a)
}

// LoadCostModel returns the cost model selected by the options. Without a
// cost table it is the built-in heuristic model.
func LoadCostModel(options ...Option) (*cost.Model, error) {
	o := makeOptions(options)
	if o.CostTable == "" {
		return cost.DefaultModel(), nil
	}

	/* load the overrides */
	m, err := cost.LoadModel(o.CostTable)
	if err != nil {
		return nil, ConfigError{Key: "cost_table", Value: o.CostTable, Err: err}
	} else {
		return m, nil
	}
}

// NewExprCost starts a cost accumulator with the single instruction inst. A
// nil model means the built-in heuristic model.
func NewExprCost(m *cost.Model, dfg *ir.DataFlowGraph, inst ir.Inst) *cost.ExprCost {
	if m == nil {
		return cost.ForInst(dfg, inst)
	} else {
		return m.ForInst(dfg, inst)
	}
}
