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

package alias

import (
    `github.com/cloudwego/egopt/internal/opts`
    `github.com/cloudwego/egopt/internal/trace`
    `github.com/cloudwego/egopt/ir`
    `go.uber.org/zap`
    `go.uber.org/zap/zapcore`
)

// Config tunes a single analysis run.
type Config struct {
    // Logger receives debug traces of the fixpoint iteration, nil means
    // the logger selected by the EGOPT_TRACE environment variable.
    Logger *zap.Logger

    // MaxRounds aborts the analysis with a panic once the fixpoint has
    // processed that many blocks, 0 means no limit.
    MaxRounds int
}

// DefaultConfig returns the configuration derived from the environment.
func DefaultConfig() Config {
    o := opts.GetDefaultOptions()
    return Config {
        Logger    : trace.Logger(o.Trace),
        MaxRounds : o.MaxFixpointRounds,
    }
}

func (self Config) logger() *zap.Logger {
    if self.Logger == nil {
        return trace.Logger(opts.Trace).Named("alias")
    } else {
        return self.Logger.Named("alias")
    }
}

// Analysis is the result of the alias analysis on one function. It is valid
// only for the exact function and CFG it was computed from.
type Analysis struct {
    input  []*LastStores
    loads  map[ir.Inst]MemoryState
    rounds int
}

// New runs the alias analysis on fn with the default configuration. It always
// terminates, and panics only on malformed input.
func New(fn *ir.Function, cfg *ir.ControlFlowGraph) *Analysis {
    return NewWithConfig(fn, cfg, DefaultConfig())
}

func NewWithConfig(fn *ir.Function, cfg *ir.ControlFlowGraph, conf Config) *Analysis {
    tr := newLastStoreTracker(fn, cfg, conf)
    tr.solve()

    /* replay every block with the converged entry states */
    ret := &Analysis {
        input  : tr.input,
        loads  : make(map[ir.Inst]MemoryState),
        rounds : tr.rounds,
    }

    /* record the load states */
    ret.replay(fn)
    ret.dump(fn, cfg, tr.log)

    /* update the statistics */
    RunCount.Inc()
    RoundCount.Add(int64(tr.rounds))
    LoadCount.Add(int64(len(ret.loads)))
    return ret
}

func (self *Analysis) replay(fn *ir.Function) {
    for _, bb := range fn.Layout.Blocks() {
        var st LastStores
        var in *LastStores

        /* unreachable blocks have no entry state, and their loads get no answer */
        if in = self.input[bb]; in == nil {
            continue
        }

        /* walk the block with the same transfer function */
        st = *in
        for _, ins := range fn.Layout.BlockInsts(bb) {
            p := fn.DFG.Inst(ins)

            /* record the state visible to plain loads */
            if isPlainLoad(p.Op) {
                fl, _ := p.MemFlags()
                self.loads[ins] = st.Get(RegionOf(fl))
            }

            /* apply the effect afterwards */
            st.update(fn.DFG, ins)
        }
    }
}

func (self *Analysis) dump(fn *ir.Function, cfg *ir.ControlFlowGraph, log *zap.Logger) {
    if log.Core().Enabled(zapcore.DebugLevel) {
        log.Debug("alias analysis converged",
            zap.String("func", fn.Name),
            zap.Int("rounds", self.rounds),
            zap.Int("loads", len(self.loads)),
            zap.String("cfg", ir.Dot(fn, cfg, self.annotate)),
        )
    }
}

func (self *Analysis) annotate(bb ir.Block) []string {
    if in := self.input[bb]; in == nil {
        return []string { "unreachable" }
    } else {
        return []string { "entry = " + in.String() }
    }
}

// StateForLoad returns the last-write state observed by inst. The answer is
// only available for plain loads in reachable blocks, atomics, stack loads,
// calls and everything else always yield false.
func (self *Analysis) StateForLoad(inst ir.Inst) (MemoryState, bool) {
    st, ok := self.loads[inst]
    return st, ok
}

// BlockEntry returns the converged summary at the entry of bb.
func (self *Analysis) BlockEntry(bb ir.Block) (LastStores, bool) {
    if int(bb) >= len(self.input) || self.input[bb] == nil {
        return LastStores{}, false
    } else {
        return *self.input[bb], true
    }
}

// Rounds returns the number of blocks the fixpoint iteration processed.
func (self *Analysis) Rounds() int {
    return self.rounds
}

// NumLoads returns the number of loads with a recorded state.
func (self *Analysis) NumLoads() int {
    return len(self.loads)
}
