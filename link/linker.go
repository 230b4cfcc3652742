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

// Package link implements the static half of the two-phase
// link/evaluate pipeline (spec §4.E, component E): it walks ast.Expr
// trees with a type switch and resolves names, assigns a value.Type
// to every field, and reports the first TypesNotCompatible,
// FieldNotFound, FunctionNotFound or CyclicReference error it finds.
//
// This mirrors the teacher's internal/core/compile package: compiler.expr
// is a type switch over ast.Expr that produces adt.Expr; linker.typeOf
// here is the same kind of type switch, producing a value.Type instead.
// Keeping this walk in its own package (rather than as methods on the
// ast nodes) is what avoids the ast<->value<->link import cycle a
// method-based design would need, exactly as compile is kept separate
// from the ast/adt packages it compiles.
package link

import (
	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// Linker threads the single first-error-wins behaviour through a
// single-model link pass (spec §7: "the core itself always surfaces
// only the first error").
type Linker struct {
	err *errors.Error
}

// Link performs linking of every field reachable from root (spec
// §4.E). It returns the first error encountered, or nil if the whole
// model links cleanly.
func Link(root *ast.ContextObject) error {
	l := &Linker{}
	l.linkObject(root)
	if l.err != nil {
		return l.err
	}
	return nil
}

// LinkField links a single field of obj on demand (spec §4.E, lazy
// per-field entry point used by the facade's evaluate-one-field path).
func LinkField(obj *ast.ContextObject, name string) (value.Type, error) {
	l := &Linker{}
	t := l.typeOfField(obj, name, token.NoPos)
	if l.err != nil {
		return value.Undef, l.err
	}
	return t, nil
}

func (l *Linker) fail(err *errors.Error) value.Type {
	if l.err == nil {
		l.err = err
	}
	return value.Undef
}

func (l *Linker) failed() bool { return l.err != nil }

// linkObject links every field of obj, plus every nested child object
// and function body, in declaration order.
func (l *Linker) linkObject(obj *ast.ContextObject) {
	for _, name := range obj.AllFieldNames {
		if l.failed() {
			return
		}
		l.typeOfField(obj, name, token.NoPos)
	}
}

// typeOfField resolves and caches the type of name within obj's own
// namespaces, detecting cycles via the per-field lock (spec §4.E step 1).
func (l *Linker) typeOfField(obj *ast.ContextObject, name string, pos token.Pos) value.Type {
	kind, v := obj.Get(name)
	switch kind {
	case ast.ExpressionField:
		entry := v.(*ast.ExpressionEntry)
		if t, ok := entry.CachedType(); ok {
			return t
		}
		if !obj.Node.AcquireLock(name) {
			return l.fail(errors.New(errors.CyclicReference, pos, "cyclic reference while linking %q", name).WithPathPrefix(name))
		}
		defer obj.Node.ReleaseLock(name)
		t := l.typeOf(obj, entry.Expr)
		if !l.failed() {
			entry.SetCachedType(t)
		}
		return t
	case ast.ChildField:
		child := v.(*ast.ContextObject)
		l.linkObject(child)
		return value.ObjectOf(child, name)
	case ast.FunctionField:
		m := v.(*ast.MethodEntry)
		if t, ok := m.CachedType(); ok {
			return t
		}
		t := l.typeOfCallable(m.Def)
		if !l.failed() {
			m.SetCachedType(t)
		}
		return t
	case ast.DefinitionField:
		return value.Undef
	case ast.ParameterField:
		fp := v.(ast.FormalParameter)
		if fp.Placeholder == nil {
			return value.Undef
		}
		return l.resolveTypeExpr(obj, fp.Placeholder.TypeExpr)
	default:
		return l.fail(errors.New(errors.FieldNotFound, pos, "field %q not found", name).WithPathPrefix(name))
	}
}

func (l *Linker) typeOfCallable(c ast.Callable) value.Type {
	switch fn := c.(type) {
	case *ast.FuncDef:
		l.linkObject(fn.Body)
		if l.failed() {
			return value.Undef
		}
		var t value.Type
		if fn.ReturnsObject {
			// Body written as `{ ... }`: the call resolves to the whole
			// object, addressed afterwards with a further `.field`
			// (spec §6), not to a synthesised "return" field.
			t = value.ObjectOf(fn.Body, fn.Name)
		} else {
			t = l.typeOfField(fn.Body, "return", token.NoPos)
		}
		if fn.ReturnType != nil {
			want := l.resolveTypeExpr(fn.Body, fn.ReturnType)
			if !l.failed() && !want.Equal(t) && !(t.AssignableEmptyList() && want.Kind == value.ListKind) {
				return l.fail(errors.New(errors.TypesNotCompatible, token.NoPos,
					"function %q declared return type %s but body has type %s", fn.Name, want, t))
			}
			return want
		}
		return t
	case *ast.DecisionTable:
		return l.typeOfDecisionTable(fn)
	}
	return value.Undef
}

// typeOfDecisionTable checks every row of a decision table (spec
// SPEC_FULL.md supplemented feature 1): each input cell is checked
// against its column's parameter type, bound as the "it" local the
// same way a filter predicate binds the current element, and every
// row's output must agree on a single result type.
func (l *Linker) typeOfDecisionTable(fn *ast.DecisionTable) value.Type {
	scope := fn.Scope
	if scope == nil {
		scope = ast.NewContextObject()
	}
	paramTypes := make([]value.Type, len(fn.Params))
	for i, p := range fn.Params {
		if p.Placeholder == nil {
			continue
		}
		paramTypes[i] = l.resolveTypeExpr(scope, p.Placeholder.TypeExpr)
		if l.failed() {
			return value.Undef
		}
	}

	var out value.Type
	for i, row := range fn.Rows {
		if len(row.Inputs) != len(paramTypes) {
			return l.fail(errors.New(errors.OtherLinkingError, token.NoPos,
				"decision table %q row %d has %d inputs, expected %d", fn.Name, i, len(row.Inputs), len(paramTypes)))
		}
		for j, cell := range row.Inputs {
			cellT := l.typeOfCtx(scope, map[string]value.Type{"it": paramTypes[j]}, cell)
			if l.failed() {
				return value.Undef
			}
			if cellT.Kind != value.BooleanKind && !cellT.Equal(paramTypes[j]) {
				return l.fail(errors.New(errors.TypesNotCompatible, token.NoPos,
					"decision table %q row %d input %d has type %s, expected boolean or %s",
					fn.Name, i, j, cellT, paramTypes[j]))
			}
		}
		t := l.typeOf(scope, row.Output)
		if l.failed() {
			return value.Undef
		}
		if i == 0 {
			out = t
		} else if !out.Equal(t) {
			return l.fail(errors.New(errors.DifferentTypesDetected, token.NoPos,
				"decision table %q rows have differing output types", fn.Name))
		}
	}
	return out
}

// resolveTypeExpr maps a TypeExpr syntax node to a value.Type, looking
// up user type definitions via scope when the name is not a built-in.
func (l *Linker) resolveTypeExpr(scope *ast.ContextObject, t ast.TypeExpr) value.Type {
	switch tt := t.(type) {
	case ast.ListType:
		elem := l.resolveTypeExpr(scope, tt.Elem)
		return value.ListOf(elem)
	case ast.NamedType:
		if prim, ok := primitiveType(tt.Name); ok {
			return prim
		}
		for cur := scope; cur != nil; cur = cur.Node.Parent {
			if body, ok := cur.Types()[tt.Name]; ok {
				if body.Object != nil {
					return value.ObjectOf(body.Object, tt.Name)
				}
				return l.resolveTypeExpr(cur, body.AliasOf)
			}
		}
		return l.fail(errors.New(errors.FieldNotFound, token.NoPos, "unknown type %q", tt.Name))
	}
	return value.Undef
}

func primitiveType(name string) (value.Type, bool) {
	switch name {
	case "Number":
		return value.NumberT, true
	case "Boolean":
		return value.BooleanT, true
	case "String":
		return value.StringT, true
	case "Date":
		return value.DateT, true
	case "Time":
		return value.TimeT, true
	case "DateTime":
		return value.DateTimeT, true
	case "Duration":
		return value.DurationT, true
	case "Period":
		return value.PeriodT, true
	}
	return value.Undef, false
}
