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
    `math`
)

// Inst is an opaque handle of an instruction inside a DataFlowGraph.
type Inst uint32

// Block is an opaque handle of a basic block inside a DataFlowGraph.
type Block uint32

// Value is an opaque handle of an SSA value inside a DataFlowGraph.
type Value uint32

const (
    ValueNone Value = math.MaxUint32
)

func (self Inst) String() string {
    return fmt.Sprintf("inst%d", uint32(self))
}

func (self Block) String() string {
    return fmt.Sprintf("block%d", uint32(self))
}

func (self Value) String() string {
    if self == ValueNone {
        return "v?"
    } else {
        return fmt.Sprintf("v%d", uint32(self))
    }
}

type Type uint8

const (
    TypeInvalid Type = iota
    I8
    I16
    I32
    I64
    F32
    F64
)

var _TypeNames = [...]string {
    TypeInvalid : "",
    I8          : "i8",
    I16         : "i16",
    I32         : "i32",
    I64         : "i64",
    F32         : "f32",
    F64         : "f64",
}

var _TypeSizes = [...]int {
    TypeInvalid : 0,
    I8          : 1,
    I16         : 2,
    I32         : 4,
    I64         : 8,
    F32         : 4,
    F64         : 8,
}

func (self Type) String() string {
    if int(self) < len(_TypeNames) {
        return _TypeNames[self]
    } else {
        panic(fmt.Sprintf("ir: invalid type %d", uint8(self)))
    }
}

// Bytes returns the width of the type in bytes.
func (self Type) Bytes() int {
    return _TypeSizes[self]
}
