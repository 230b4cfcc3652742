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

	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// Literal is a literal value (spec §4.B): number, string, boolean,
// or a temporal/duration/period constructed at parse time.
type Literal struct {
	exprBase
	Value value.Value
}

func NewLiteral(pos token.Pos, v value.Value) *Literal {
	return &Literal{exprBase{pos}, v}
}

func (l *Literal) Render() string { return l.Value.String() }

// Variable is a path of dotted identifiers (spec §4.B), e.g. `a.b.c`.
type Variable struct {
	exprBase
	Path []string

	// FindRoot marks a variable whose first segment is to be resolved
	// from the model root rather than the current lexical scope. The
	// parser never sets it, CloneExpr copies it, and neither the linker
	// nor the evaluator reads it: no pass rewrites self-qualified paths
	// into root lookups.
	FindRoot bool
}

func NewVariable(pos token.Pos, path []string) *Variable {
	return &Variable{exprBase: exprBase{pos}, Path: path}
}

func (v *Variable) Render() string { return strings.Join(v.Path, ".") }

// Op identifies a binary or unary operator (spec §4.A, §4.C).
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpQuo
	OpRem
	OpPow
	OpNeg // unary -

	OpEql
	OpNeq
	OpLt
	OpLeq
	OpGt
	OpGeq

	OpAnd
	OpOr
	OpXor
	OpNot // unary
)

var opSymbols = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpQuo: "/", OpRem: "%", OpPow: "^", OpNeg: "-",
	OpEql: "=", OpNeq: "<>", OpLt: "<", OpLeq: "<=", OpGt: ">", OpGeq: ">=",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
}

func (op Op) String() string { return opSymbols[op] }

// BinaryOp is a binary math/logical/comparator expression (spec §4.B).
type BinaryOp struct {
	exprBase
	Op          Op
	Left, Right Expr

	// linked caches the result of the most recent successful link, per
	// spec §4.B ("Linking is memoised per node via a cached type
	// slot").
	linked    bool
	cachedTyp value.Type
}

func NewBinaryOp(pos token.Pos, op Op, left, right Expr) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{pos}, Op: op, Left: left, Right: right}
}

func (b *BinaryOp) Render() string {
	return "(" + b.Left.Render() + " " + b.Op.String() + " " + b.Right.Render() + ")"
}

func (b *BinaryOp) Cached() (value.Type, bool) { return b.cachedTyp, b.linked }
func (b *BinaryOp) SetCached(t value.Type)      { b.cachedTyp, b.linked = t, true }

// UnaryOp is a unary math/logical expression: -x or not x.
type UnaryOp struct {
	exprBase
	Op   Op
	X    Expr

	linked    bool
	cachedTyp value.Type
}

func NewUnaryOp(pos token.Pos, op Op, x Expr) *UnaryOp {
	return &UnaryOp{exprBase: exprBase{pos}, Op: op, X: x}
}

func (u *UnaryOp) Render() string { return "(" + u.Op.String() + " " + u.X.Render() + ")" }
func (u *UnaryOp) Cached() (value.Type, bool) { return u.cachedTyp, u.linked }
func (u *UnaryOp) SetCached(t value.Type)      { u.cachedTyp, u.linked = t, true }

// AsCast is the `expr as Type` cast operator (spec §4.C, §6).
type AsCast struct {
	exprBase
	X        Expr
	TargetT  TypeExpr
}

func NewAsCast(pos token.Pos, x Expr, target TypeExpr) *AsCast {
	return &AsCast{exprBase: exprBase{pos}, X: x, TargetT: target}
}

func (a *AsCast) Render() string { return a.X.Render() + " as " + a.TargetT.Render() }

// Call is an invocation: either a built-in unary/binary/multi-arg
// function, or a call to a user-defined function (spec §4.B). Which
// one it is is decided at link time by name resolution, so the parser
// always produces a plain Call with the unresolved Name.
type Call struct {
	exprBase
	Name string
	Args []Expr

	linked     bool
	cachedTyp  value.Type
	IsBuiltin  bool // set by the linker once resolved
}

func NewCall(pos token.Pos, name string, args []Expr) *Call {
	return &Call{exprBase: exprBase{pos}, Name: name, Args: args}
}

func (c *Call) Render() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Render()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (c *Call) Cached() (value.Type, bool) { return c.cachedTyp, c.linked }
func (c *Call) SetCached(t value.Type)      { c.cachedTyp, c.linked = t, true }

// Index selects the n-th element of a list: `e[n]` (spec §4.B, §4.F).
type Index struct {
	exprBase
	X     Expr
	IndexExpr Expr
}

func NewIndex(pos token.Pos, x, idx Expr) *Index {
	return &Index{exprBase: exprBase{pos}, X: x, IndexExpr: idx}
}

func (i *Index) Render() string { return i.X.Render() + "[" + i.IndexExpr.Render() + "]" }

// Filter selects the elements of a list matching a boolean predicate:
// `e[pred]` (spec §4.B, §4.F). Inside Pred, the current element is
// addressable via the context variable ("...", "it", or a bare unary
// comparator).
type Filter struct {
	exprBase
	X    Expr
	Pred Expr
}

func NewFilter(pos token.Pos, x, pred Expr) *Filter {
	return &Filter{exprBase: exprBase{pos}, X: x, Pred: pred}
}

func (f *Filter) Render() string { return f.X.Render() + "[" + f.Pred.Render() + "]" }

// ContextVar is the implicit element binding inside a filter predicate
// or unary-comparator cell, spelled "..." or "…" in source (spec §9
// GLOSSARY: "Context variable"). The identifier "it" is parsed as an
// ordinary Variable, which link and eval resolve to the same binding.
type ContextVar struct {
	exprBase
}

func NewContextVar(pos token.Pos) *ContextVar { return &ContextVar{exprBase{pos}} }
func (*ContextVar) Render() string            { return "it" }

// UnaryPredicate is a bare comparator inside a filter, e.g. `[> 10]`,
// sugar for `[it > 10]` (spec §4.F).
type UnaryPredicate struct {
	exprBase
	Op    Op
	Right Expr
}

func NewUnaryPredicate(pos token.Pos, op Op, right Expr) *UnaryPredicate {
	return &UnaryPredicate{exprBase: exprBase{pos}, Op: op, Right: right}
}

func (u *UnaryPredicate) Render() string { return u.Op.String() + " " + u.Right.Render() }

// Select is field selection on an expression result: `e.f` (spec
// §4.B), used for both object field access and named temporal
// components (year, month, days, ...).
type Select struct {
	exprBase
	X     Expr
	Field string

	linked    bool
	cachedTyp value.Type
}

func NewSelect(pos token.Pos, x Expr, field string) *Select {
	return &Select{exprBase: exprBase{pos}, X: x, Field: field}
}

func (s *Select) Render() string { return s.X.Render() + "." + s.Field }
func (s *Select) Cached() (value.Type, bool) { return s.cachedTyp, s.linked }
func (s *Select) SetCached(t value.Type)      { s.cachedTyp, s.linked = t, true }

// CollectionLit is a list literal: `[a, b, c]` (spec §4.B).
type CollectionLit struct {
	exprBase
	Elems []Expr
}

func NewCollectionLit(pos token.Pos, elems []Expr) *CollectionLit {
	return &CollectionLit{exprBase: exprBase{pos}, Elems: elems}
}

func (c *CollectionLit) Render() string {
	parts := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		parts[i] = e.Render()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RangeExpr is `a..b` (spec §4.B).
type RangeExpr struct {
	exprBase
	Start, End Expr
}

func NewRangeExpr(pos token.Pos, start, end Expr) *RangeExpr {
	return &RangeExpr{exprBase: exprBase{pos}, Start: start, End: end}
}

func (r *RangeExpr) Render() string { return r.Start.Render() + ".." + r.End.Render() }

// IfThenElse is `if cond then a else b` (spec §4.B).
type IfThenElse struct {
	exprBase
	Cond, Then, Else Expr
}

func NewIfThenElse(pos token.Pos, cond, then, els Expr) *IfThenElse {
	return &IfThenElse{exprBase: exprBase{pos}, Cond: cond, Then: then, Else: els}
}

func (i *IfThenElse) Render() string {
	return "if " + i.Cond.Render() + " then " + i.Then.Render() + " else " + i.Else.Render()
}

// ForReturn is `for v in e return r` (spec §4.B).
type ForReturn struct {
	exprBase
	Var    string
	Source Expr
	Result Expr
}

func NewForReturn(pos token.Pos, v string, source, result Expr) *ForReturn {
	return &ForReturn{exprBase: exprBase{pos}, Var: v, Source: source, Result: result}
}

func (f *ForReturn) Render() string {
	return "for " + f.Var + " in " + f.Source.Render() + " return " + f.Result.Render()
}

// ObjectLitExpr wraps a ContextObject used in expression position, e.g.
// an inline object literal `{ a: 1 }` passed as a function argument
// (spec §4.B, §9 "Deferred linking inside unattached inline objects").
// Such a ContextObject starts out detached from the schema tree.
type ObjectLitExpr struct {
	exprBase
	Object *ContextObject
}

func NewObjectLitExpr(pos token.Pos, obj *ContextObject) *ObjectLitExpr {
	return &ObjectLitExpr{exprBase: exprBase{pos}, Object: obj}
}

func (o *ObjectLitExpr) Render() string { return o.Object.Render() }

// TypeExpr is implemented by type-placeholder syntax: `<T>`, `<T,
// default>`, `T[]`, or a bare type name (spec §4.B, §4.C). It is not
// an Expr: it appears in cast position and in parameter/field-type
// declarations, never evaluated directly.
type TypeExpr interface {
	Render() string
}

// NamedType refers to a primitive or user-defined type by name.
type NamedType struct {
	Name string
}

func (n NamedType) Render() string { return n.Name }

// ListType is `T[]`.
type ListType struct {
	Elem TypeExpr
}

func (l ListType) Render() string { return l.Elem.Render() + "[]" }

// TypePlaceholder is `<T>` or `<T, default>` (spec §4.B, §4.C): a
// formal-parameter or field-type declaration with an optional default
// value expression.
type TypePlaceholder struct {
	exprBase
	TypeExpr TypeExpr
	Default  Expr // nil if no default given
}

func NewTypePlaceholder(pos token.Pos, t TypeExpr, def Expr) *TypePlaceholder {
	return &TypePlaceholder{exprBase: exprBase{pos}, TypeExpr: t, Default: def}
}

func (t *TypePlaceholder) Render() string {
	if t.Default == nil {
		return "<" + t.TypeExpr.Render() + ">"
	}
	return "<" + t.TypeExpr.Render() + ", " + t.Default.Render() + ">"
}
