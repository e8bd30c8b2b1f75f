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

package ir

import (
    `fmt`
    `strings`
)

// Function is a single function body: the data flow graph plus its layout.
type Function struct {
    Name   string
    DFG    *DataFlowGraph
    Layout *Layout
}

func NewFunction(name string) *Function {
    return &Function {
        Name   : name,
        DFG    : NewDataFlowGraph(),
        Layout : NewLayout(),
    }
}

func (self *Function) String() string {
    buf := []string {
        fmt.Sprintf("function %%%s {", self.Name),
    }

    /* dump every block in layout order */
    for _, bb := range self.Layout.Blocks() {
        var params []string
        for _, v := range self.DFG.BlockParams(bb) {
            params = append(params, fmt.Sprintf("%s: %s", v, self.DFG.ValueType(v)))
        }

        /* block header */
        if len(params) == 0 {
            buf = append(buf, fmt.Sprintf("%s:", bb))
        } else {
            buf = append(buf, fmt.Sprintf("%s(%s):", bb, strings.Join(params, ", ")))
        }

        /* block body */
        for _, ins := range self.Layout.BlockInsts(bb) {
            buf = append(buf, fmt.Sprintf("    %s: %s", ins, self.DFG.DisplayInst(ins)))
        }
    }

    /* join them together */
    buf = append(buf, "}")
    return strings.Join(buf, "\n")
}
