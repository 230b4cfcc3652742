// Copyright 2026 The EdgeRules Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import "strings"

// Range is an inclusive-start/exclusive-end integer range [start, end)
// (spec §3.1). for/return over a Range produces Numbers (spec §4.E).
type Range struct {
	Start, End int64
}

func NewRange(start, end int64) Range { return Range{Start: start, End: end} }

func (Range) Kind() Kind           { return RangeKind }
func (Range) Type() Type           { return RangeT }
func (Range) SV() (SVKind, string) { return NotSV, "" }
func (r Range) String() string {
	var b strings.Builder
	b.WriteString(formatInt(r.Start))
	b.WriteString("..")
	b.WriteString(formatInt(r.End))
	return b.String()
}

// Len reports the number of integers the range yields.
func (r Range) Len() int64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

func formatInt(i int64) string {
	return NewInt(i).String()
}

// Array is the List runtime value (spec §3.1): either the distinguished
// empty-untyped variant, a homogeneous primitives array, or an objects
// array of References sharing one schema. All three are represented
// uniformly here; EmptyUntyped distinguishes the first from a
// zero-length primitives array of a concrete element type (spec's
// invariant that "every Array carries a concrete element type, even
// when empty, unless it is the distinguished empty untyped variant").
type Array struct {
	ElemType     Type
	Items        []Value
	EmptyUntyped bool
}

func NewEmptyUntypedArray() Array {
	return Array{EmptyUntyped: true}
}

func NewArray(elem Type, items []Value) Array {
	return Array{ElemType: elem, Items: items}
}

func (Array) Kind() Kind { return ListKind }
func (a Array) Type() Type {
	if a.EmptyUntyped {
		return ListOfNone()
	}
	return ListOf(a.ElemType)
}
func (Array) SV() (SVKind, string) { return NotSV, "" }

func (a Array) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range a.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteString("]")
	return b.String()
}

// At returns the i-th element, or a Missing SV of the element type for
// an out-of-range or negative index (spec §4.F, §8 boundary behaviour).
func (a Array) At(i int64) Value {
	if i < 0 || i >= int64(len(a.Items)) {
		return MissingOf(a.ElemType, "index out of range")
	}
	return a.Items[i]
}

// MissingOf constructs the Missing SV sentinel appropriate for t.
func MissingOf(t Type, reason string) Value {
	switch t.Kind {
	case NumberKind:
		return NewMissingNumber(reason)
	case StringKind:
		return NewMissingStr(reason)
	case BooleanKind:
		return Bool{B: false} // Boolean has no SV variant in spec §3.1; callers must not rely on this for real missing-bool semantics.
	case DateKind:
		return NewMissingDate(reason)
	case TimeKind:
		return NewMissingTime(reason)
	case DateTimeKind:
		return NewMissingDateTime(reason)
	case DurationKind:
		return NewMissingDuration(reason)
	case PeriodKind:
		return NewMissingPeriod(reason)
	default:
		return NewMissingNumber(reason)
	}
}
