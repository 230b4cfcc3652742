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

package ast

import (
	"strings"

	"github.com/rimvydasb/edgerules-sub001/value"
)

// ExpressionEntry pairs a field's expression with its linker-cached
// type (spec §3.3).
type ExpressionEntry struct {
	Expr Expr

	linked  bool
	typ     value.Type
}

func NewExpressionEntry(e Expr) *ExpressionEntry { return &ExpressionEntry{Expr: e} }

func (e *ExpressionEntry) CachedType() (value.Type, bool) { return e.typ, e.linked }
func (e *ExpressionEntry) SetCachedType(t value.Type)       { e.typ, e.linked = t, true }
func (e *ExpressionEntry) ResetCache()                      { e.linked = false }

// FormalParameter is one parameter of a function definition (spec
// §3.3).
type FormalParameter struct {
	Name        string
	Placeholder *TypePlaceholder
}

// Callable is implemented by both FuncDef and DecisionTable (spec
// §4.G, SPEC_FULL.md supplemented feature 1): anything that can be
// invoked as a named function from Call/ObjectLitExpr context.
type Callable interface {
	CallableName() string
	CallableParams() []FormalParameter
}

// FuncDef is a user function definition: `func name(params): body`
// (spec §6). The body is itself a ContextObject (it owns its own
// fields, may declare a distinguished `return` field, and is linked
// and evaluated exactly like any nested context).
type FuncDef struct {
	Name       string
	Params     []FormalParameter
	Body       *ContextObject
	ReturnType TypeExpr // optional explicit annotation (Open Question 2)

	// ReturnsObject is true when the body was written as `{ ... }`
	// without a `return` field (an object the whole function call
	// resolves to, addressed with a further `.field`), and false when
	// it was a bare expression `name(params): expr`, for which the
	// parser synthesises a single "return" field, or a `{ ... }` body
	// declaring its own `return` field; the call then resolves to that
	// field's value directly (spec §6).
	ReturnsObject bool
}

func (f *FuncDef) CallableName() string               { return f.Name }
func (f *FuncDef) CallableParams() []FormalParameter { return f.Params }

// DecisionRow is one row of a DecisionTable (SPEC_FULL.md supplemented
// feature 1): a tuple of input-matching predicates plus an output
// expression, evaluated top-down, first match wins.
type DecisionRow struct {
	Inputs []Expr
	Output Expr
}

// DecisionTable is a function-like metaphor whose body is a collection
// of rows rather than a single expression (SPEC_FULL.md supplemented
// feature 1, grounded in original_source's metaphors/decision_tables.rs).
// Scope is an empty ContextObject carrying only Parameters, giving the
// row expressions somewhere to resolve parameter names against, the
// same role FuncDef.Body plays for an ordinary function.
type DecisionTable struct {
	Name   string
	Params []FormalParameter
	Rows   []DecisionRow
	Scope  *ContextObject
}

func (d *DecisionTable) CallableName() string               { return d.Name }
func (d *DecisionTable) CallableParams() []FormalParameter { return d.Params }

// MethodEntry pairs a Callable definition with its linker-cached
// return type (spec §3.3).
type MethodEntry struct {
	Def Callable

	linked bool
	typ    value.Type
}

func NewMethodEntry(def Callable) *MethodEntry { return &MethodEntry{Def: def} }

func (m *MethodEntry) CachedType() (value.Type, bool) { return m.typ, m.linked }
func (m *MethodEntry) SetCachedType(t value.Type)       { m.typ, m.linked = t, true }

// UserTypeBody is either a type-alias (optionally with a default
// value) or a nested object schema (spec §3.3).
type UserTypeBody struct {
	AliasOf TypeExpr // non-nil for `type Name: SomeType`
	Default Expr     // optional default for an alias

	Object *ContextObject // non-nil for `type Name: { ... }`
}

// SchemaNode discriminates a ContextObject's position in the scope
// graph and holds the per-field lock set used for cycle detection
// (spec §3.3, §4.E, §9). Parent is a plain pointer rather than a weak
// reference: Go's GC handles the cycle this would otherwise require
// weak references to avoid in a manually-managed-memory language, so
// the "store parent as weak" design note (spec §9) has no Go-visible
// consequence beyond documenting intent.
type SchemaNode struct {
	Parent    *ContextObject
	FieldName string // the name under which this object is the child

	locked map[string]bool
}

func (n *SchemaNode) IsRoot() bool { return n.Parent == nil }

// ContextObject is a named-field schema container (spec §3.3): the
// static half of the scope graph, shared by the builder, the linker
// and (via ExpressionEntry.Expr) the evaluator.
type ContextObject struct {
	expressions map[string]*ExpressionEntry
	functions   map[string]*MethodEntry
	children    map[string]*ContextObject
	types       map[string]*UserTypeBody

	// AllFieldNames lists every name across expressions/functions/
	// children exactly once, in declaration order (spec §3.3
	// invariant).
	AllFieldNames []string

	// Parameters is populated only when this ContextObject is a
	// function body (spec §3.3).
	Parameters []FormalParameter

	Node SchemaNode

	// Metadata holds free-form annotations such as decision-table
	// hit-policy hints (spec §4.D set_metadata).
	Metadata map[string]string
}

// NewContextObject creates an empty, detached ContextObject.
func NewContextObject() *ContextObject {
	return &ContextObject{
		expressions: map[string]*ExpressionEntry{},
		functions:   map[string]*MethodEntry{},
		children:    map[string]*ContextObject{},
		types:       map[string]*UserTypeBody{},
		Metadata:    map[string]string{},
	}
}

// NewRootContextObject creates the detached root of a model.
func NewRootContextObject() *ContextObject {
	return NewContextObject()
}

func (c *ContextObject) hasName(name string) bool {
	_, a := c.expressions[name]
	_, b := c.functions[name]
	_, d := c.children[name]
	_, e := c.types[name]
	for _, p := range c.Parameters {
		if p.Name == name {
			return true
		}
	}
	return a || b || d || e
}

// AddExpression inserts a new expression field (spec §4.D). Returns a
// DuplicateName error if name is already used in any namespace.
func (c *ContextObject) AddExpression(name string, e Expr) error {
	if c.hasName(name) {
		return errDuplicateName(name)
	}
	c.expressions[name] = NewExpressionEntry(e)
	c.AllFieldNames = append(c.AllFieldNames, name)
	return nil
}

// AddFunction inserts a user function or decision table definition.
func (c *ContextObject) AddFunction(def Callable) error {
	name := def.CallableName()
	if c.hasName(name) {
		return errDuplicateName(name)
	}
	c.functions[name] = NewMethodEntry(def)
	c.AllFieldNames = append(c.AllFieldNames, name)
	switch fn := def.(type) {
	case *FuncDef:
		if fn.Body != nil {
			fn.Body.Node = SchemaNode{Parent: c, FieldName: name}
		}
	case *DecisionTable:
		if fn.Scope != nil {
			fn.Scope.Node = SchemaNode{Parent: c, FieldName: name}
		}
	}
	return nil
}

// AddChildObject inserts a statically nested context, e.g. `a: { b: 1 }`.
func (c *ContextObject) AddChildObject(name string, child *ContextObject) error {
	if c.hasName(name) {
		return errDuplicateName(name)
	}
	child.Node = SchemaNode{Parent: c, FieldName: name}
	c.children[name] = child
	c.AllFieldNames = append(c.AllFieldNames, name)
	return nil
}

// SetUserTypeDefinition registers a named type within this context.
func (c *ContextObject) SetUserTypeDefinition(name string, body *UserTypeBody) error {
	if _, exists := c.types[name]; exists {
		return errDuplicateName(name)
	}
	if body.Object != nil {
		body.Object.Node = SchemaNode{Parent: c, FieldName: name}
	}
	c.types[name] = body
	return nil
}

// RemoveField removes name from whichever namespace holds it.
func (c *ContextObject) RemoveField(name string) {
	delete(c.expressions, name)
	delete(c.functions, name)
	delete(c.children, name)
	delete(c.types, name)
	for i, n := range c.AllFieldNames {
		if n == name {
			c.AllFieldNames = append(c.AllFieldNames[:i], c.AllFieldNames[i+1:]...)
			break
		}
	}
}

// FieldKind discriminates what Get returns (spec §4.D).
type FieldKind int

const (
	NotFoundField FieldKind = iota
	ExpressionField
	FunctionField
	ChildField
	DefinitionField
	ParameterField
)

// Get resolves name in this context's own namespaces (not its
// ancestors; see the linker's browse() for scope-walking lookup).
//
// Parameters is checked last and only by name, since a function body
// (spec §3.3) is the one ContextObject kind that carries formal
// parameters alongside its ordinary fields; everywhere else the slice
// is empty and this check is a no-op.
func (c *ContextObject) Get(name string) (FieldKind, interface{}) {
	if e, ok := c.expressions[name]; ok {
		return ExpressionField, e
	}
	if m, ok := c.functions[name]; ok {
		return FunctionField, m
	}
	if ch, ok := c.children[name]; ok {
		return ChildField, ch
	}
	if t, ok := c.types[name]; ok {
		return DefinitionField, t
	}
	for _, p := range c.Parameters {
		if p.Name == name {
			return ParameterField, p
		}
	}
	return NotFoundField, nil
}

func (c *ContextObject) Expressions() map[string]*ExpressionEntry { return c.expressions }
func (c *ContextObject) Functions() map[string]*MethodEntry       { return c.functions }
func (c *ContextObject) Children() map[string]*ContextObject      { return c.children }
func (c *ContextObject) Types() map[string]*UserTypeBody           { return c.types }

// MergeFrom shallow-merges other's expressions, functions, children
// and type definitions into c. On a name collision the existing entry
// in c wins and a DuplicateName error is returned for that name; the
// merge still proceeds for every other name (spec §4.D: "idempotent"
// single source of well-formedness truth).
func (c *ContextObject) MergeFrom(other *ContextObject) []error {
	var errs []error
	for name, e := range other.expressions {
		if c.hasName(name) {
			errs = append(errs, errDuplicateName(name))
			continue
		}
		c.expressions[name] = e
		c.AllFieldNames = append(c.AllFieldNames, name)
	}
	for name, m := range other.functions {
		if c.hasName(name) {
			errs = append(errs, errDuplicateName(name))
			continue
		}
		c.functions[name] = m
		c.AllFieldNames = append(c.AllFieldNames, name)
		switch fn := m.Def.(type) {
		case *FuncDef:
			if fn.Body != nil {
				fn.Body.Node = SchemaNode{Parent: c, FieldName: name}
			}
		case *DecisionTable:
			if fn.Scope != nil {
				fn.Scope.Node = SchemaNode{Parent: c, FieldName: name}
			}
		}
	}
	for name, ch := range other.children {
		if c.hasName(name) {
			errs = append(errs, errDuplicateName(name))
			continue
		}
		ch.Node = SchemaNode{Parent: c, FieldName: name}
		c.children[name] = ch
		c.AllFieldNames = append(c.AllFieldNames, name)
	}
	for name, t := range other.types {
		if _, exists := c.types[name]; exists {
			errs = append(errs, errDuplicateName(name))
			continue
		}
		if t.Object != nil {
			t.Object.Node = SchemaNode{Parent: c, FieldName: name}
		}
		c.types[name] = t
	}
	return errs
}

func errDuplicateName(name string) error {
	return &dupNameError{name: name}
}

type dupNameError struct{ name string }

func (e *dupNameError) Error() string { return "duplicate name: " + e.name }
func (e *dupNameError) Name() string  { return e.name }

// Render produces the `{ name: expr; ... }` canonical rendering of
// spec §6, preserving AllFieldNames declaration order.
func (c *ContextObject) Render() string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, name := range c.AllFieldNames {
		if i > 0 {
			b.WriteString("; ")
		}
		kind, v := c.Get(name)
		b.WriteString(name)
		b.WriteString(": ")
		switch kind {
		case ExpressionField:
			b.WriteString(v.(*ExpressionEntry).Expr.Render())
		case ChildField:
			b.WriteString(v.(*ContextObject).Render())
		case FunctionField:
			b.WriteString("func(...)")
		}
	}
	b.WriteString(" }")
	return b.String()
}

// AcquireLock attempts to lock name for the duration of linking or
// evaluating its expression (spec §4.E step 1, §4.F step 2). It
// returns false if the lock is already held, signalling a cyclic
// reference.
func (n *SchemaNode) AcquireLock(name string) bool {
	if n.locked == nil {
		n.locked = map[string]bool{}
	}
	if n.locked[name] {
		return false
	}
	n.locked[name] = true
	return true
}

// ReleaseLock releases a lock acquired by AcquireLock. Called on every
// exit path, including error returns (spec §5).
func (n *SchemaNode) ReleaseLock(name string) {
	delete(n.locked, name)
}
