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
	"fmt"

	"github.com/cloudwego/egopt/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithTrace turns the debug tracing of the analyses on or off.
//
// The default value is taken from the `EGOPT_TRACE` environment variable.
func WithTrace(v bool) Option {
	return func(o *opts.Options) { o.Trace = v }
}

// WithCostTable selects a TOML file with per-opcode cost overrides, see
// cost.ParseModel for the format. An empty path means no overrides.
//
// The default value is taken from the `EGOPT_COST_TABLE` environment variable.
func WithCostTable(path string) Option {
	return func(o *opts.Options) { o.CostTable = path }
}

// WithMaxFixpointRounds limits the number of blocks the alias analysis may
// process before giving up with a panic. The iteration always terminates, so
// this only guards against malformed input.
//
// Set this option to "0" disables this limit, which is also the default.
func WithMaxFixpointRounds(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("egopt: invalid fixpoint round limit: %d", n))
	} else {
		return func(o *opts.Options) { o.MaxFixpointRounds = n }
	}
}

// SetMaxFixpointRounds sets the default round limit for all analyses from now
// on, and returns the old value.
//
// This value can also be configured with the `EGOPT_MAX_FIXPOINT_ROUNDS`
// environment variable.
func SetMaxFixpointRounds(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("egopt: invalid fixpoint round limit: %d", n))
	}
	n, opts.MaxFixpointRounds = opts.MaxFixpointRounds, n
	return n
}
