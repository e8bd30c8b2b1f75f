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
	"strings"

	"github.com/cloudwego/egopt/ir"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	InstSet map[ir.Inst]Cost
)

func (self InstSet) add(i ir.Inst, c Cost) bool {
	if _, ok := self[i]; ok {
		return false
	} else {
		self[i] = c
		return true
	}
}

func (self InstSet) clone() InstSet {
	if self == nil {
		return make(InstSet)
	} else {
		return maps.Clone(self)
	}
}

// Contains reports whether the cost of i has already been counted.
func (self InstSet) Contains(i ir.Inst) bool {
	_, ok := self[i]
	return ok
}

// Insts returns the counted instructions in ascending order.
func (self InstSet) Insts() []ir.Inst {
	rr := maps.Keys(self)
	slices.Sort(rr)
	return rr
}

func (self InstSet) String() string {
	rr := self.Insts()
	rs := make([]string, 0, len(rr))

	/* convert every instruction */
	for _, r := range rr {
		rs = append(rs, fmt.Sprintf("%s: %s", r, self[r]))
	}

	/* join them together */
	return fmt.Sprintf(
		"{%s}",
		strings.Join(rs, ", "),
	)
}
