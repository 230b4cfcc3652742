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

// Clone produces an independent copy of c: fresh ContextObjects,
// ExpressionEntry/MethodEntry wrappers and expression trees, none of
// which share a linker-cached type slot or lock set with c (spec §4.G
// to_runtime_snapshot: "clones the current builder ... leaves the
// builder open for further edits"). Nodes without any linker-mutated
// state (Literal, Variable, CollectionLit, ...) are still rebuilt
// rather than shared, since the Expr-tree walk has no cheap way to
// tell which node kinds need a fresh cache slot and which do not.
func (c *ContextObject) Clone() *ContextObject {
	clone := NewContextObject()
	clone.Parameters = append([]FormalParameter(nil), c.Parameters...)
	for k, v := range c.Metadata {
		clone.Metadata[k] = v
	}
	for _, name := range c.AllFieldNames {
		kind, v := c.Get(name)
		switch kind {
		case ExpressionField:
			e := v.(*ExpressionEntry)
			_ = clone.AddExpression(name, CloneExpr(e.Expr))
		case FunctionField:
			m := v.(*MethodEntry)
			_ = clone.AddFunction(cloneCallable(m.Def))
		case ChildField:
			_ = clone.AddChildObject(name, v.(*ContextObject).Clone())
		}
	}
	// Type definitions are kept outside AllFieldNames.
	for name, t := range c.types {
		body := &UserTypeBody{AliasOf: t.AliasOf}
		if t.Default != nil {
			body.Default = CloneExpr(t.Default)
		}
		if t.Object != nil {
			body.Object = t.Object.Clone()
		}
		_ = clone.SetUserTypeDefinition(name, body)
	}
	return clone
}

func cloneCallable(c Callable) Callable {
	switch fn := c.(type) {
	case *FuncDef:
		return &FuncDef{
			Name:          fn.Name,
			Params:        append([]FormalParameter(nil), fn.Params...),
			Body:          fn.Body.Clone(),
			ReturnType:    fn.ReturnType,
			ReturnsObject: fn.ReturnsObject,
		}
	case *DecisionTable:
		rows := make([]DecisionRow, len(fn.Rows))
		for i, r := range fn.Rows {
			inputs := make([]Expr, len(r.Inputs))
			for j, in := range r.Inputs {
				inputs[j] = CloneExpr(in)
			}
			rows[i] = DecisionRow{Inputs: inputs, Output: CloneExpr(r.Output)}
		}
		var scope *ContextObject
		if fn.Scope != nil {
			scope = fn.Scope.Clone()
		}
		return &DecisionTable{
			Name:   fn.Name,
			Params: append([]FormalParameter(nil), fn.Params...),
			Rows:   rows,
			Scope:  scope,
		}
	}
	return c
}

// CloneExpr deep-copies an expression tree, the same type-switch walk
// link.typeOf and eval.Eval use, rebuilding every node through its
// constructor so no cached type or lock state is shared with the
// original (spec §4.B per-node caching).
func CloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *Literal:
		return NewLiteral(n.Pos(), n.Value)
	case *Variable:
		v := NewVariable(n.Pos(), append([]string(nil), n.Path...))
		v.FindRoot = n.FindRoot
		return v
	case *ContextVar:
		return NewContextVar(n.Pos())
	case *UnaryPredicate:
		return NewUnaryPredicate(n.Pos(), n.Op, CloneExpr(n.Right))
	case *BinaryOp:
		return NewBinaryOp(n.Pos(), n.Op, CloneExpr(n.Left), CloneExpr(n.Right))
	case *UnaryOp:
		return NewUnaryOp(n.Pos(), n.Op, CloneExpr(n.X))
	case *AsCast:
		return NewAsCast(n.Pos(), CloneExpr(n.X), n.TargetT)
	case *Call:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = CloneExpr(a)
		}
		return NewCall(n.Pos(), n.Name, args)
	case *Index:
		return NewIndex(n.Pos(), CloneExpr(n.X), CloneExpr(n.IndexExpr))
	case *Filter:
		return NewFilter(n.Pos(), CloneExpr(n.X), CloneExpr(n.Pred))
	case *Select:
		return NewSelect(n.Pos(), CloneExpr(n.X), n.Field)
	case *CollectionLit:
		elems := make([]Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = CloneExpr(el)
		}
		return NewCollectionLit(n.Pos(), elems)
	case *RangeExpr:
		return NewRangeExpr(n.Pos(), CloneExpr(n.Start), CloneExpr(n.End))
	case *IfThenElse:
		return NewIfThenElse(n.Pos(), CloneExpr(n.Cond), CloneExpr(n.Then), CloneExpr(n.Else))
	case *ForReturn:
		return NewForReturn(n.Pos(), n.Var, CloneExpr(n.Source), CloneExpr(n.Result))
	case *ObjectLitExpr:
		return NewObjectLitExpr(n.Pos(), n.Object.Clone())
	case *TypePlaceholder:
		return NewTypePlaceholder(n.Pos(), n.TypeExpr, CloneExpr(n.Default))
	}
	return e
}
