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
	"github.com/cloudwego/egopt/alias"
	"github.com/cloudwego/egopt/cost"
)

// A Stats records statistics about the analyses.
type Stats struct {
	Alias AliasStats
	Cost  CostStats
}

// An AliasStats records statistics about the alias analysis.
type AliasStats struct {
	Runs   int
	Rounds int
	Loads  int
}

// A CostStats records statistics about the extraction cost model.
type CostStats struct {
	Adds       int
	Selects    int
	Candidates int
}

// GetStats returns statistics of the analyses since the process started.
func GetStats() Stats {
	return Stats{
		Alias: AliasStats{
			Runs:   int(alias.RunCount.Load()),
			Rounds: int(alias.RoundCount.Load()),
			Loads:  int(alias.LoadCount.Load()),
		},
		Cost: CostStats{
			Adds:       int(cost.ExprAddCount.Load()),
			Selects:    int(cost.SelectCount.Load()),
			Candidates: int(cost.CandidateCount.Load()),
		},
	}
}
