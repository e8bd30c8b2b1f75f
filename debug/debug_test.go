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

package debug

import (
	"testing"

	"github.com/cloudwego/egopt/alias"
	"github.com/cloudwego/egopt/cost"
	"github.com/cloudwego/egopt/ir"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	b := ir.CreateBuilder("stats")
	b.SwitchToBlock(b.CreateBlock())
	p := b.Param(ir.I64)
	v := b.Load(ir.I64, ir.HeapFlags, p, 0)
	b.Return(v)
	fn := b.Build()

	/* run both analyses once */
	old := GetStats()
	alias.New(fn, ir.ComputeCFG(fn))
	ins, _ := fn.DFG.ValueInst(v)
	e := cost.ZeroExpr()
	e.Add(cost.ForInst(fn.DFG, ins))
	cost.Cheapest([]*cost.ExprCost{e})

	/* every counter moved forward */
	st := GetStats()
	require.Equal(t, old.Alias.Runs+1, st.Alias.Runs)
	require.Equal(t, old.Alias.Rounds+1, st.Alias.Rounds)
	require.Equal(t, old.Alias.Loads+1, st.Alias.Loads)
	require.Equal(t, old.Cost.Adds+1, st.Cost.Adds)
	require.Equal(t, old.Cost.Selects+1, st.Cost.Selects)
	require.Equal(t, old.Cost.Candidates+1, st.Cost.Candidates)
}
