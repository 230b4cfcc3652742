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

// Package eval implements the dynamic half of the link/evaluate
// pipeline (spec §4.F, component F): a tree-walking evaluator over
// ast.Expr driven by an ast.ExecutionContext scope graph. Like link,
// it is a type-switch walker kept outside the ast package rather than
// a set of Eval methods on the node types, mirroring how the teacher
// keeps internal/core/eval separate from the adt/ast data it walks.
package eval

import (
	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// EvalField realises a single field of ec, caching the outcome (spec
// §4.F). A cached error from a previous attempt is replayed rather
// than re-evaluated.
func EvalField(ec *ast.ExecutionContext, name string) (value.Value, error) {
	if v, err, ok := ec.Cached(name); ok {
		return v, err
	}
	kind, entry := ec.Schema.Get(name)
	switch kind {
	case ast.ExpressionField:
		if !ec.Node.AcquireLock(name) {
			err := errors.New(errors.CyclicReference, token.NoPos, "cyclic reference while evaluating %q", name).WithPathPrefix(name)
			ec.SetCached(name, nil, err)
			return nil, err
		}
		ee := entry.(*ast.ExpressionEntry)
		v, err := Eval(ec, ee.Expr)
		ec.Node.ReleaseLock(name)
		if err != nil {
			err = withPathPrefix(err, name)
		}
		ec.SetCached(name, v, err)
		return v, err
	case ast.ChildField:
		child := entry.(*ast.ContextObject)
		childEc := ec.ChildScope(name, child)
		v := value.Ref{Handle: childEc}
		ec.SetCached(name, v, nil)
		return v, nil
	case ast.FunctionField:
		err := errors.New(errors.EvalError, token.NoPos, "%q is a function; call it instead of referencing it", name)
		return nil, err
	case ast.ParameterField:
		// Reached only if a formal parameter was never bound by its
		// caller (spec §4.F step 2 binds every parameter before the
		// body runs); ordinarily EvalField's cache check above already
		// returns the bound value before the switch is reached.
		err := errors.New(errors.RuntimeFieldNotFound, token.NoPos, "parameter %q was not bound", name).WithPathPrefix(name)
		return nil, err
	default:
		err := errors.New(errors.RuntimeFieldNotFound, token.NoPos, "field %q not found", name).WithPathPrefix(name)
		return nil, err
	}
}

// EvalAll realises every field of ec in declaration order, stopping at
// the first error (spec §8, Open Question 3), and is idempotent once
// it has succeeded once (spec §3.4 PromiseEvalAll).
func EvalAll(ec *ast.ExecutionContext) error {
	if ec.PromiseEvalAll {
		return nil
	}
	for _, name := range ec.FieldNames() {
		if _, err := EvalField(ec, name); err != nil {
			return err
		}
	}
	ec.PromiseEvalAll = true
	return nil
}

func withPathPrefix(err error, name string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithPathPrefix(name)
	}
	return err
}

// Eval is the type-switch walker evaluating e within the lexical and
// dynamic scope of ec (spec §4.F).
func Eval(ec *ast.ExecutionContext, e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Variable:
		return evalVariable(ec, n)

	case *ast.ContextVar:
		if ec.ContextVariable == nil {
			return nil, errors.New(errors.EvalError, n.Pos(), "context variable used outside a filter predicate")
		}
		return ec.ContextVariable, nil

	case *ast.UnaryPredicate:
		if ec.ContextVariable == nil {
			return nil, errors.New(errors.EvalError, n.Pos(), "bare comparator used outside a filter")
		}
		right, err := Eval(ec, n.Right)
		if err != nil {
			return nil, err
		}
		return evalComparator(n.Op, ec.ContextVariable, right, n.Pos())

	case *ast.BinaryOp:
		return evalBinary(ec, n)

	case *ast.UnaryOp:
		return evalUnary(ec, n)

	case *ast.AsCast:
		return evalCast(ec, n)

	case *ast.Call:
		return evalCall(ec, n)

	case *ast.Index:
		return evalIndex(ec, n)

	case *ast.Filter:
		return evalFilter(ec, n)

	case *ast.Select:
		return evalSelect(ec, n)

	case *ast.CollectionLit:
		return evalCollectionLit(ec, n)

	case *ast.RangeExpr:
		return evalRange(ec, n)

	case *ast.IfThenElse:
		return evalIfThenElse(ec, n)

	case *ast.ForReturn:
		return evalForReturn(ec, n)

	case *ast.ObjectLitExpr:
		child := ast.NewEphemeralExecutionContext(n.Object, ec)
		return value.Ref{Handle: child}, nil
	}
	return nil, errors.New(errors.InternalIntegrityError, e.Pos(), "unsupported expression %T", e)
}

// evalVariable resolves a dotted path, special-casing the for/return
// loop variable and the filter "it" binding before falling back to
// ordinary field lookup walking up the scope chain (spec §4.F).
func evalVariable(ec *ast.ExecutionContext, v *ast.Variable) (value.Value, error) {
	head := v.Path[0]
	if lv, ok := ec.Locals[head]; ok {
		return selectChain(lv, v.Path[1:], v.Pos())
	}
	if head == "it" && ec.ContextVariable != nil {
		return selectChain(ec.ContextVariable, v.Path[1:], v.Pos())
	}

	owner, ownerEc := findOwner(ec, head)
	if ownerEc == nil {
		return nil, errors.New(errors.RuntimeFieldNotFound, v.Pos(), "field %q not found", head).WithPathPrefix(head)
	}
	_ = owner
	val, err := EvalField(ownerEc, head)
	if err != nil {
		return nil, err
	}
	return selectChain(val, v.Path[1:], v.Pos())
}

// findOwner climbs ec's parent chain to the first scope whose schema
// declares name (spec §4.E browse()/§4.F mirrored lookup).
func findOwner(ec *ast.ExecutionContext, name string) (*ast.ContextObject, *ast.ExecutionContext) {
	for cur := ec; cur != nil; cur = cur.Node.Parent {
		if kind, _ := cur.Schema.Get(name); kind != ast.NotFoundField {
			return cur.Schema, cur
		}
	}
	return nil, nil
}

func selectChain(v value.Value, segs []string, pos token.Pos) (value.Value, error) {
	for _, seg := range segs {
		nv, err := selectOne(v, seg, pos)
		if err != nil {
			return nil, err
		}
		v = nv
	}
	return v, nil
}

func selectOne(v value.Value, field string, pos token.Pos) (value.Value, error) {
	if ref, ok := v.(value.Ref); ok {
		childEc, ok := ref.Handle.(*ast.ExecutionContext)
		if !ok {
			return nil, errors.New(errors.InternalIntegrityError, pos, "reference handle is not an execution context")
		}
		return EvalField(childEc, field)
	}
	return evalTemporalAccessor(v, field, pos)
}
