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

// Value is the interface implemented by every runtime value variant
// (spec §3.1). Modelled as a closed set of concrete types rather than
// open inheritance, matching the "tagged variant" guidance of spec §9.
type Value interface {
	// Kind reports the value's shape.
	Kind() Kind

	// Type reports the value's full type, including element/schema
	// information for List and Object values.
	Type() Type

	// String renders the canonical form described in spec §6.
	String() string

	// SV reports the special-value sentinel carried by this value, if
	// any, and its optional free-form reason (spec §3.1).
	SV() (SVKind, string)
}

// Bool is the Boolean value (spec §3.1).
type Bool struct {
	B bool
}

func (Bool) Kind() Kind             { return BooleanKind }
func (Bool) Type() Type             { return BooleanT }
func (b Bool) String() string       { return boolString(b.B) }
func (Bool) SV() (SVKind, string)   { return NotSV, "" }

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Str is a String value: variable-length UTF-8 or a single character.
// A Str may also be SV.
type Str struct {
	S      string
	sv     SVKind
	reason string
}

func NewStr(s string) Str                     { return Str{S: s} }
func NewMissingStr(reason string) Str         { return Str{sv: Missing, reason: reason} }
func NewNotApplicableStr(reason string) Str   { return Str{sv: NotApplicable, reason: reason} }

func (Str) Kind() Kind           { return StringKind }
func (Str) Type() Type           { return StringT }
func (s Str) SV() (SVKind, string) { return s.sv, s.reason }
func (s Str) String() string {
	if s.sv != NotSV {
		return svString(s.sv, s.reason)
	}
	return s.S
}

func svString(k SVKind, reason string) string {
	if reason == "" {
		return k.String()
	}
	return k.String() + "(" + reason + ")"
}

// TypeVal wraps a first-class Type token used by cast and type-query
// operations (spec §3.1).
type TypeVal struct {
	T Type
}

func (TypeVal) Kind() Kind             { return TypeKind }
func (t TypeVal) Type() Type           { return TypeT }
func (t TypeVal) String() string       { return t.T.String() }
func (TypeVal) SV() (SVKind, string)   { return NotSV, "" }

// ExecRef is the minimal capability an execution-context handle must
// provide for a Reference value to be useful to the evaluator, without
// this package importing ast (which imports value). ast.ExecutionContext
// implements this interface.
type ExecRef interface {
	// SchemaID returns the identity of the backing ContextObject, used
	// as the Type.Schema of the Reference's Object type.
	SchemaID() interface{}
	// SchemaName is a human-readable label for error rendering.
	SchemaName() string
}

// Ref is a Reference value: a handle to an ExecutionContext, i.e. an
// object value (spec §3.1).
type Ref struct {
	Handle ExecRef
}

func (Ref) Kind() Kind { return ObjectKind }
func (r Ref) Type() Type {
	if r.Handle == nil {
		return ObjectOf(nil, "")
	}
	return ObjectOf(r.Handle.SchemaID(), r.Handle.SchemaName())
}
func (Ref) SV() (SVKind, string) { return NotSV, "" }
func (r Ref) String() string {
	if r.Handle == nil {
		return "{}"
	}
	return "{...}"
}
