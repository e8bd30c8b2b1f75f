/*
 * Copyright 2022 CloudWeGo Authors
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

package opts

import (
	"os"
	"strconv"
)

const (
	_DefaultTrace             = 0 // tracing is off
	_DefaultMaxFixpointRounds = 0 // no limit, the lattice guarantees termination
)

var (
	Trace             = parseOrDefault("EGOPT_TRACE", _DefaultTrace, 0, 1) != 0
	MaxFixpointRounds = parseOrDefault("EGOPT_MAX_FIXPOINT_ROUNDS", _DefaultMaxFixpointRounds, 0, -1)
	CostTable         = os.Getenv("EGOPT_COST_TABLE")
)

func parseOrDefault(key string, def int, min int, max int) int {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
		panic("egopt: invalid value for " + key)
	} else if ret := int(val); ret < min {
		panic("egopt: value too small for " + key)
	} else if max >= 0 && ret > max {
		panic("egopt: value too large for " + key)
	} else {
		return ret
	}
}
