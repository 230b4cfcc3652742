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

// Package value implements the EdgeRules runtime value and type model
// (spec §3.1-3.2, component A): Number/Boolean/String/Date/Time/
// DateTime/Duration/Period/Range/Array/Reference/Type values, their
// arithmetic, and the temporal arithmetic table of spec §4.A.
//
// Unlike the teacher's adt.Kind (a bitmask used to represent a lattice
// of partially-unified types), EdgeRules types form no lattice: a
// field's type is either fully known after linking or the model fails
// to link. A plain closed enum is therefore the simpler, sufficient
// choice here.
package value

import "fmt"

// Kind identifies the shape of a Type or Value.
type Kind int

const (
	Undefined Kind = iota
	NumberKind
	BooleanKind
	StringKind
	DateKind
	TimeKind
	DateTimeKind
	DurationKind
	PeriodKind
	RangeKind
	ListKind
	ObjectKind
	TypeKind
)

var kindNames = [...]string{
	Undefined:   "undefined",
	NumberKind:  "number",
	BooleanKind: "boolean",
	StringKind:  "string",
	DateKind:    "date",
	TimeKind:    "time",
	DateTimeKind: "datetime",
	DurationKind: "duration",
	PeriodKind:   "period",
	RangeKind:    "range",
	ListKind:     "list",
	ObjectKind:   "object",
	TypeKind:     "type",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Type is a first-class EdgeRules type token (spec §3.2).
type Type struct {
	Kind Kind

	// Elem is the element type for ListKind. A nil Elem with
	// ListKind denotes List(none) -- the type of an empty untyped
	// array literal, compatible with any list type only during
	// linking (spec §3.2).
	Elem *Type

	// Schema identifies the object schema this ObjectKind type refers
	// to. It holds the *ast.ContextObject pointer as an opaque
	// interface{} so this package does not need to import ast (which
	// itself imports value for Value/Type). Two ObjectKind types are
	// equal iff Schema is the same pointer identity (spec §3.2).
	Schema interface{}

	// SchemaName is a human-readable label for error rendering only;
	// it plays no role in equality.
	SchemaName string
}

// Undef is the Undefined type singleton.
var Undef = Type{Kind: Undefined}

// Number, Boolean, ... are the singleton primitive type tokens.
var (
	NumberT   = Type{Kind: NumberKind}
	BooleanT  = Type{Kind: BooleanKind}
	StringT   = Type{Kind: StringKind}
	DateT     = Type{Kind: DateKind}
	TimeT     = Type{Kind: TimeKind}
	DateTimeT = Type{Kind: DateTimeKind}
	DurationT = Type{Kind: DurationKind}
	PeriodT   = Type{Kind: PeriodKind}
	RangeT    = Type{Kind: RangeKind}
	TypeT     = Type{Kind: TypeKind}
)

// ListOf returns the List(elem) type.
func ListOf(elem Type) Type {
	e := elem
	return Type{Kind: ListKind, Elem: &e}
}

// ListOfNone returns the List(none) type used for empty array literals.
func ListOfNone() Type {
	return Type{Kind: ListKind, Elem: nil}
}

// ObjectOf returns the Object(schema) type. schema should be the
// *ast.ContextObject pointer; name is used only for rendering.
func ObjectOf(schema interface{}, name string) Type {
	return Type{Kind: ObjectKind, Schema: schema, SchemaName: name}
}

// Equal reports whether t and other denote the same type (spec §3.2).
// List(none) is equal only to itself here; the linker is responsible
// for treating it as compatible-with-anything during empty-literal
// linking (that is a linking-time relaxation, not a general type
// equality).
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ListKind:
		if t.Elem == nil || other.Elem == nil {
			return t.Elem == nil && other.Elem == nil
		}
		return t.Elem.Equal(*other.Elem)
	case ObjectKind:
		return t.Schema == other.Schema
	default:
		return true
	}
}

// AssignableEmptyList reports whether t is List(none), i.e. the
// special empty-literal placeholder that the linker may assign any
// list type to.
func (t Type) AssignableEmptyList() bool {
	return t.Kind == ListKind && t.Elem == nil
}

func (t Type) String() string {
	switch t.Kind {
	case ListKind:
		if t.Elem == nil {
			return "list(none)"
		}
		return fmt.Sprintf("%s[]", t.Elem.String())
	case ObjectKind:
		if t.SchemaName != "" {
			return t.SchemaName
		}
		return "object"
	default:
		return t.Kind.String()
	}
}

// SVKind distinguishes the two special-value sentinels (spec §3.1).
type SVKind int

const (
	NotSV SVKind = iota
	Missing
	NotApplicable
)

func (s SVKind) String() string {
	switch s {
	case Missing:
		return "missing"
	case NotApplicable:
		return "n/a"
	default:
		return ""
	}
}
