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

package link

import (
	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// typeOf infers the type of e within scope with no local bindings in
// effect (spec §4.E).
func (l *Linker) typeOf(scope *ast.ContextObject, e ast.Expr) value.Type {
	return l.typeOfCtx(scope, nil, e)
}

// typeOfCtx is the type-switch walker over ast.Expr that mirrors the
// teacher's compiler.expr dispatch (spec §4.B/§4.E). locals carries
// the name->type bindings introduced by an enclosing filter predicate
// ("it") or for/return loop variable; it is nil outside of either.
func (l *Linker) typeOfCtx(scope *ast.ContextObject, locals map[string]value.Type, e ast.Expr) value.Type {
	if l.failed() {
		return value.Undef
	}
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value.Type()

	case *ast.Variable:
		return l.resolveVariable(scope, locals, n)

	case *ast.ContextVar:
		if t, ok := locals["it"]; ok {
			return t
		}
		return l.fail(errors.New(errors.OperationNotSupported, n.Pos(), "context variable used outside a filter predicate"))

	case *ast.UnaryPredicate:
		it, ok := locals["it"]
		if !ok {
			return l.fail(errors.New(errors.OperationNotSupported, n.Pos(), "bare comparator used outside a filter"))
		}
		rt := l.typeOfCtx(scope, locals, n.Right)
		if l.failed() {
			return value.Undef
		}
		if !comparable(it, rt) {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "cannot compare %s with %s", it, rt))
		}
		return value.BooleanT

	case *ast.BinaryOp:
		if t, ok := n.Cached(); ok {
			return t
		}
		lt := l.typeOfCtx(scope, locals, n.Left)
		rt := l.typeOfCtx(scope, locals, n.Right)
		if l.failed() {
			return value.Undef
		}
		t := l.typeOfBinary(n, lt, rt)
		if !l.failed() {
			n.SetCached(t)
		}
		return t

	case *ast.UnaryOp:
		if t, ok := n.Cached(); ok {
			return t
		}
		xt := l.typeOfCtx(scope, locals, n.X)
		if l.failed() {
			return value.Undef
		}
		var t value.Type
		switch n.Op {
		case ast.OpNeg:
			if xt.Kind != value.NumberKind {
				return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "unary - requires a number, got %s", xt))
			}
			t = value.NumberT
		case ast.OpNot:
			if xt.Kind != value.BooleanKind {
				return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "not requires a boolean, got %s", xt))
			}
			t = value.BooleanT
		}
		if !l.failed() {
			n.SetCached(t)
		}
		return t

	case *ast.AsCast:
		l.typeOfCtx(scope, locals, n.X)
		if l.failed() {
			return value.Undef
		}
		return l.resolveTypeExpr(scope, n.TargetT)

	case *ast.Call:
		return l.typeOfCall(scope, locals, n)

	case *ast.Index:
		xt := l.typeOfCtx(scope, locals, n.X)
		idxT := l.typeOfCtx(scope, locals, n.IndexExpr)
		if l.failed() {
			return value.Undef
		}
		if xt.Kind != value.ListKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "[] index requires a list, got %s", xt))
		}
		if idxT.Kind != value.NumberKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "list index must be a number, got %s", idxT))
		}
		if xt.Elem == nil {
			return value.Undef
		}
		return *xt.Elem

	case *ast.Filter:
		xt := l.typeOfCtx(scope, locals, n.X)
		if l.failed() {
			return value.Undef
		}
		if xt.Kind != value.ListKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "[] filter requires a list, got %s", xt))
		}
		elemT := value.Undef
		if xt.Elem != nil {
			elemT = *xt.Elem
		}
		inner := withLocal(locals, "it", elemT)
		predT := l.typeOfCtx(scope, inner, n.Pred)
		if l.failed() {
			return value.Undef
		}
		if predT.Kind != value.BooleanKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "filter predicate must be boolean, got %s", predT))
		}
		return xt

	case *ast.Select:
		if t, ok := n.Cached(); ok {
			return t
		}
		xt := l.typeOfCtx(scope, locals, n.X)
		if l.failed() {
			return value.Undef
		}
		t := l.selectOne(xt, n.Field, n.Pos())
		if !l.failed() {
			n.SetCached(t)
		}
		return t

	case *ast.CollectionLit:
		if len(n.Elems) == 0 {
			return value.ListOfNone()
		}
		first := l.typeOfCtx(scope, locals, n.Elems[0])
		for _, el := range n.Elems[1:] {
			t := l.typeOfCtx(scope, locals, el)
			if l.failed() {
				return value.Undef
			}
			if !t.Equal(first) {
				return l.fail(errors.New(errors.DifferentTypesDetected, n.Pos(), "list elements have differing types: %s vs %s", first, t))
			}
		}
		if l.failed() {
			return value.Undef
		}
		return value.ListOf(first)

	case *ast.RangeExpr:
		st := l.typeOfCtx(scope, locals, n.Start)
		et := l.typeOfCtx(scope, locals, n.End)
		if l.failed() {
			return value.Undef
		}
		if st.Kind != value.NumberKind || et.Kind != value.NumberKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "range bounds must be numbers"))
		}
		return value.RangeT

	case *ast.IfThenElse:
		condT := l.typeOfCtx(scope, locals, n.Cond)
		if l.failed() {
			return value.Undef
		}
		if condT.Kind != value.BooleanKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "if condition must be boolean, got %s", condT))
		}
		thenT := l.typeOfCtx(scope, locals, n.Then)
		elseT := l.typeOfCtx(scope, locals, n.Else)
		if l.failed() {
			return value.Undef
		}
		switch {
		case thenT.Equal(elseT):
			return thenT
		case thenT.AssignableEmptyList() && elseT.Kind == value.ListKind:
			return elseT
		case elseT.AssignableEmptyList() && thenT.Kind == value.ListKind:
			return thenT
		}
		return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "if branches have differing types: %s vs %s", thenT, elseT))

	case *ast.ForReturn:
		srcT := l.typeOfCtx(scope, locals, n.Source)
		if l.failed() {
			return value.Undef
		}
		var elemT value.Type
		switch srcT.Kind {
		case value.ListKind:
			if srcT.Elem != nil {
				elemT = *srcT.Elem
			}
		case value.RangeKind:
			elemT = value.NumberT
		default:
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "for/in source must be a list or range, got %s", srcT))
		}
		inner := withLocal(locals, n.Var, elemT)
		resT := l.typeOfCtx(scope, inner, n.Result)
		if l.failed() {
			return value.Undef
		}
		return value.ListOf(resT)

	case *ast.ObjectLitExpr:
		l.linkObject(n.Object)
		if l.failed() {
			return value.Undef
		}
		return value.ObjectOf(n.Object, "")

	case *ast.TypePlaceholder:
		return l.resolveTypeExpr(scope, n.TypeExpr)
	}
	return l.fail(errors.New(errors.OtherLinkingError, e.Pos(), "unsupported expression %T", e))
}

func withLocal(locals map[string]value.Type, name string, t value.Type) map[string]value.Type {
	out := make(map[string]value.Type, len(locals)+1)
	for k, v := range locals {
		out[k] = v
	}
	out[name] = t
	return out
}

func (l *Linker) resolveVariable(scope *ast.ContextObject, locals map[string]value.Type, v *ast.Variable) value.Type {
	if len(v.Path) == 0 {
		return l.fail(errors.New(errors.InternalIntegrityError, v.Pos(), "empty variable path"))
	}
	head := v.Path[0]
	if locals != nil {
		if t, ok := locals[head]; ok {
			return l.selectChain(t, v.Path[1:], v.Pos())
		}
	}
	owner := l.findOwner(scope, head)
	if owner == nil {
		return l.fail(errors.New(errors.FieldNotFound, v.Pos(), "field %q not found", head).WithPathPrefix(head))
	}
	t := l.typeOfField(owner, head, v.Pos())
	if l.failed() {
		return value.Undef
	}
	return l.selectChain(t, v.Path[1:], v.Pos())
}

func (l *Linker) findOwner(scope *ast.ContextObject, name string) *ast.ContextObject {
	for cur := scope; cur != nil; cur = cur.Node.Parent {
		if kind, _ := cur.Get(name); kind != ast.NotFoundField {
			return cur
		}
	}
	return nil
}

func (l *Linker) selectChain(t value.Type, segs []string, pos token.Pos) value.Type {
	for _, seg := range segs {
		if l.failed() {
			return value.Undef
		}
		t = l.selectOne(t, seg, pos)
	}
	return t
}

// selectOne implements field selection, used by both Select and
// dotted-path Variable resolution: on an Object it resolves into the
// schema, otherwise it resolves a named temporal component accessor
// (spec §4.B "year/month/day/..." accessors on Date/Time/DateTime/
// Duration/Period).
func (l *Linker) selectOne(t value.Type, field string, pos token.Pos) value.Type {
	if t.Kind == value.ObjectKind {
		childSchema, _ := t.Schema.(*ast.ContextObject)
		if childSchema == nil {
			return l.fail(errors.New(errors.FieldNotFound, pos, "field %q not found", field))
		}
		return l.typeOfField(childSchema, field, pos)
	}
	if rt, ok := temporalAccessorType(t.Kind, field); ok {
		return rt
	}
	return l.fail(errors.New(errors.OperationNotSupported, pos, "cannot select %q on type %s", field, t))
}

// temporalAccessorType maps a named component accessor to its result
// type (spec §4.A named accessors: Year/Month/Day/Weekday/Hour/Minute/
// Second/DateOnly/TimeOnly on Date/Time/DateTime, and Days/HoursPart/
// MinutesPart/SecondsPart/TotalSeconds/TotalMinutes/TotalHours on
// Duration, Years/MonthsPart/TotalMonths/TotalDays on Period).
func temporalAccessorType(k value.Kind, field string) (value.Type, bool) {
	switch k {
	case value.DateKind:
		switch field {
		case "year", "month", "day", "weekday":
			return value.NumberT, true
		}
	case value.TimeKind:
		switch field {
		case "hour", "minute", "second":
			return value.NumberT, true
		}
	case value.DateTimeKind:
		switch field {
		case "year", "month", "day", "hour", "minute", "second", "weekday":
			return value.NumberT, true
		case "dateOnly":
			return value.DateT, true
		case "timeOnly":
			return value.TimeT, true
		}
	case value.DurationKind:
		switch field {
		case "days", "hoursPart", "minutesPart", "secondsPart", "totalSeconds", "totalMinutes", "totalHours":
			return value.NumberT, true
		}
	case value.PeriodKind:
		switch field {
		case "years", "monthsPart", "totalMonths", "totalDays":
			return value.NumberT, true
		}
	}
	return value.Undef, false
}

func (l *Linker) typeOfCall(scope *ast.ContextObject, locals map[string]value.Type, c *ast.Call) value.Type {
	if t, ok := c.Cached(); ok {
		return t
	}
	argTypes := make([]value.Type, len(c.Args))
	for i, a := range c.Args {
		argTypes[i] = l.typeOfCtx(scope, locals, a)
	}
	if l.failed() {
		return value.Undef
	}

	if owner := l.findOwner(scope, c.Name); owner != nil {
		if kind, v := owner.Get(c.Name); kind == ast.FunctionField {
			m := v.(*ast.MethodEntry)
			params := m.Def.CallableParams()
			if len(params) != len(argTypes) {
				return l.fail(errors.New(errors.OtherLinkingError, c.Pos(), "function %q expects %d arguments, got %d", c.Name, len(params), len(argTypes)))
			}
			rt := l.typeOfCallable(m.Def)
			if l.failed() {
				return value.Undef
			}
			c.SetCached(rt)
			return rt
		}
	}

	if bi, ok := builtins[c.Name]; ok {
		rt, err := bi(argTypes, c.Pos())
		if err != nil {
			return l.fail(err)
		}
		c.IsBuiltin = true
		c.SetCached(rt)
		return rt
	}

	return l.fail(errors.New(errors.FunctionNotFound, c.Pos(), "function %q not found", c.Name))
}

// typeOfBinary computes the result type of a math/comparison/logical
// binary operator from its already-typed operands (spec §4.A
// temporal-pairing table, §4.C precedence/operator set).
func (l *Linker) typeOfBinary(n *ast.BinaryOp, lt, rt value.Type) value.Type {
	switch n.Op {
	case ast.OpAdd:
		if lt.Kind == value.StringKind && rt.Kind == value.StringKind {
			return value.StringT
		}
		if t, ok := addResultType(lt, rt); ok {
			return t
		}
		return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "cannot add %s and %s", lt, rt))
	case ast.OpSub:
		if t, ok := subResultType(lt, rt); ok {
			return t
		}
		return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "cannot subtract %s from %s", rt, lt))
	case ast.OpMul, ast.OpQuo, ast.OpRem, ast.OpPow:
		if lt.Kind == value.NumberKind && rt.Kind == value.NumberKind {
			return value.NumberT
		}
		return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "%s requires two numbers, got %s and %s", n.Op, lt, rt))
	case ast.OpEql, ast.OpNeq:
		return value.BooleanT
	case ast.OpLt, ast.OpLeq, ast.OpGt, ast.OpGeq:
		if !orderable(lt, rt) {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "cannot order %s and %s", lt, rt))
		}
		return value.BooleanT
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		if lt.Kind != value.BooleanKind || rt.Kind != value.BooleanKind {
			return l.fail(errors.New(errors.TypesNotCompatible, n.Pos(), "%s requires two booleans, got %s and %s", n.Op, lt, rt))
		}
		return value.BooleanT
	}
	return l.fail(errors.New(errors.OtherLinkingError, n.Pos(), "unsupported operator %s", n.Op))
}

// addResultType and subResultType implement the type-level shadow of
// value.TemporalAdd/TemporalSub's pairing table (spec §4.A) so the
// linker can assign a field's type without evaluating it.
func addResultType(l, r value.Type) (value.Type, bool) {
	k1, k2 := l.Kind, r.Kind
	switch {
	case k1 == value.NumberKind && k2 == value.NumberKind:
		return value.NumberT, true
	case (k1 == value.DateKind && k2 == value.DurationKind) || (k1 == value.DurationKind && k2 == value.DateKind):
		return value.DateTimeT, true
	case (k1 == value.DateTimeKind && k2 == value.DurationKind) || (k1 == value.DurationKind && k2 == value.DateTimeKind):
		return value.DateTimeT, true
	case (k1 == value.TimeKind && k2 == value.DurationKind) || (k1 == value.DurationKind && k2 == value.TimeKind):
		return value.TimeT, true
	case k1 == value.DurationKind && k2 == value.DurationKind:
		return value.DurationT, true
	case k1 == value.PeriodKind && k2 == value.PeriodKind:
		return value.PeriodT, true
	case (k1 == value.DateKind && k2 == value.PeriodKind) || (k1 == value.PeriodKind && k2 == value.DateKind):
		return value.DateT, true
	case (k1 == value.DateTimeKind && k2 == value.PeriodKind) || (k1 == value.PeriodKind && k2 == value.DateTimeKind):
		return value.DateTimeT, true
	}
	return value.Undef, false
}

func subResultType(l, r value.Type) (value.Type, bool) {
	k1, k2 := l.Kind, r.Kind
	switch {
	case k1 == value.NumberKind && k2 == value.NumberKind:
		return value.NumberT, true
	case k1 == value.DateKind && k2 == value.DateKind:
		return value.DurationT, true
	case k1 == value.DateTimeKind && k2 == value.DateTimeKind:
		return value.DurationT, true
	case k1 == value.TimeKind && k2 == value.TimeKind:
		return value.DurationT, true
	case k1 == value.DateKind && k2 == value.DurationKind:
		return value.DateT, true
	case k1 == value.DateTimeKind && k2 == value.DurationKind:
		return value.DateTimeT, true
	case k1 == value.TimeKind && k2 == value.DurationKind:
		return value.TimeT, true
	case k1 == value.DurationKind && k2 == value.DurationKind:
		return value.DurationT, true
	case k1 == value.PeriodKind && k2 == value.PeriodKind:
		return value.PeriodT, true
	case k1 == value.DateKind && k2 == value.PeriodKind:
		return value.DateT, true
	case k1 == value.DateTimeKind && k2 == value.PeriodKind:
		return value.DateTimeT, true
	}
	return value.Undef, false
}

func comparable(a, b value.Type) bool {
	return a.Equal(b)
}

func orderable(a, b value.Type) bool {
	if !a.Equal(b) {
		return false
	}
	switch a.Kind {
	case value.NumberKind, value.DateKind, value.TimeKind, value.DateTimeKind, value.DurationKind, value.PeriodKind, value.StringKind:
		return true
	}
	return false
}
