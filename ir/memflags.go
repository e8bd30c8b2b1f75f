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
    `strings`
)

// AliasRegion is the abstract memory category attached to a memory access.
// Accesses tagged with different regions never alias each other, accesses with
// no region at all fall into the catch-all "other" category.
type AliasRegion uint8

const (
    RegionNone AliasRegion = iota
    RegionHeap
    RegionTable
    RegionVmctx
)

const (
    _B_region = 3
)

const (
    _MF_notrap   = 1 << 0
    _MF_aligned  = 1 << 1
    _MF_readonly = 1 << 2
    _MF_region   = 3 << _B_region
)

// MemFlags carries the properties of a memory access.
type MemFlags uint8

var (
    HeapFlags  = TrustedFlags().WithRegion(RegionHeap)
    TableFlags = TrustedFlags().WithRegion(RegionTable)
    VmctxFlags = TrustedFlags().WithRegion(RegionVmctx)
    OtherFlags = TrustedFlags()
)

func NewMemFlags() MemFlags {
    return 0
}

// TrustedFlags returns flags for an access that is known to be aligned and
// to never trap.
func TrustedFlags() MemFlags {
    return _MF_notrap | _MF_aligned
}

func (self MemFlags) WithRegion(r AliasRegion) MemFlags {
    return (self &^ _MF_region) | (MemFlags(r & 3) << _B_region)
}

func (self MemFlags) WithNotrap() MemFlags   { return self | _MF_notrap }
func (self MemFlags) WithAligned() MemFlags  { return self | _MF_aligned }
func (self MemFlags) WithReadonly() MemFlags { return self | _MF_readonly }

func (self MemFlags) Notrap() bool   { return self & _MF_notrap != 0 }
func (self MemFlags) Aligned() bool  { return self & _MF_aligned != 0 }
func (self MemFlags) Readonly() bool { return self & _MF_readonly != 0 }

func (self MemFlags) Region() AliasRegion {
    return AliasRegion((self & _MF_region) >> _B_region)
}

func (self MemFlags) Heap() bool  { return self.Region() == RegionHeap }
func (self MemFlags) Table() bool { return self.Region() == RegionTable }
func (self MemFlags) VmCtx() bool { return self.Region() == RegionVmctx }
func (self MemFlags) Other() bool { return self.Region() == RegionNone }

func (self MemFlags) String() string {
    var buf []string
    if self.Notrap()   { buf = append(buf, "notrap") }
    if self.Aligned()  { buf = append(buf, "aligned") }
    if self.Readonly() { buf = append(buf, "readonly") }

    /* region tag, if any */
    switch self.Region() {
        case RegionHeap  : buf = append(buf, "heap")
        case RegionTable : buf = append(buf, "table")
        case RegionVmctx : buf = append(buf, "vmctx")
    }

    /* join them together */
    return strings.Join(buf, " ")
}
