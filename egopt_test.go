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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/egopt/alias"
	"github.com/cloudwego/egopt/cost"
	"github.com/cloudwego/egopt/ir"
	"github.com/stretchr/testify/require"
)

func buildForward() (*ir.Function, ir.Inst, ir.Value, ir.Value) {
	b := ir.CreateBuilder("forward")
	b.SwitchToBlock(b.CreateBlock())
	p := b.Param(ir.I64)
	v := b.Iconst(ir.I64, 7)
	s := b.Store(ir.HeapFlags, v, p, 0)
	l := b.Load(ir.I64, ir.HeapFlags, p, 0)
	b.Return(l)
	return b.Build(), s, v, l
}

func TestAnalyzeAliases(t *testing.T) {
	fn, s, _, l := buildForward()
	a := AnalyzeAliases(fn, WithTrace(true), WithMaxFixpointRounds(8))
	ins, _ := fn.DFG.ValueInst(l)
	st, ok := a.StateForLoad(ins)
	require.True(t, ok)
	require.Equal(t, alias.StoreState(s), st)
	require.NoError(t, VerifyAliases(fn, a))
}

func TestOptions(t *testing.T) {
	require.Panics(t, func() { WithMaxFixpointRounds(-1) })
	require.Panics(t, func() { SetMaxFixpointRounds(-1) })
	old := SetMaxFixpointRounds(100)
	require.Equal(t, 100, makeOptions(nil).MaxFixpointRounds)
	require.Equal(t, 3, makeOptions([]Option{WithMaxFixpointRounds(3)}).MaxFixpointRounds)
	require.Equal(t, 100, SetMaxFixpointRounds(old))
}

func TestLoadCostModel(t *testing.T) {
	m, err := LoadCostModel(WithCostTable(""))
	require.NoError(t, err)
	require.Same(t, cost.DefaultModel(), m)

	/* a valid table */
	fp := filepath.Join(t.TempDir(), "costs.toml")
	require.NoError(t, os.WriteFile(fp, []byte("[opcodes]\niconst = 2\n"), 0644))
	m, err = LoadCostModel(WithCostTable(fp))
	require.NoError(t, err)
	fn, _, v, l := buildForward()
	ins, _ := fn.DFG.ValueInst(l)
	def, _ := fn.DFG.ValueInst(v)
	require.Equal(t, cost.OfOpcode(ir.OpLoad), NewExprCost(nil, fn.DFG, ins).Total())
	require.Equal(t, cost.New(1, 0), NewExprCost(nil, fn.DFG, def).Total())
	require.Equal(t, cost.New(2, 0), NewExprCost(m, fn.DFG, def).Total())

	/* an invalid one */
	require.NoError(t, os.WriteFile(fp, []byte("[opcodes]\nnope = 2\n"), 0644))
	_, err = LoadCostModel(WithCostTable(fp))
	var ce ConfigError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "cost_table", ce.Key)
	require.Equal(t, fp, ce.Value)
	require.Contains(t, err.Error(), "nope")
}
