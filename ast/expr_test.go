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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

func TestLiteralRender(t *testing.T) {
	l := ast.NewLiteral(token.NoPos, value.NewInt(42))
	assert.Equal(t, "42", l.Render())
}

func TestVariableRenderJoinsPath(t *testing.T) {
	v := ast.NewVariable(token.NoPos, []string{"a", "b", "c"})
	assert.Equal(t, "a.b.c", v.Render())
}

func TestBinaryOpRenderAndCache(t *testing.T) {
	b := ast.NewBinaryOp(token.NoPos, ast.OpAdd,
		ast.NewLiteral(token.NoPos, value.NewInt(1)),
		ast.NewLiteral(token.NoPos, value.NewInt(2)))
	assert.Equal(t, "(1 + 2)", b.Render())

	_, ok := b.Cached()
	assert.False(t, ok)
	b.SetCached(value.NumberT)
	got, ok := b.Cached()
	assert.True(t, ok)
	assert.Equal(t, value.NumberT, got)
}

func TestUnaryOpRenderNeg(t *testing.T) {
	u := ast.NewUnaryOp(token.NoPos, ast.OpNeg, ast.NewLiteral(token.NoPos, value.NewInt(5)))
	assert.Equal(t, "(- 5)", u.Render())
}

func TestUnaryOpRenderNot(t *testing.T) {
	u := ast.NewUnaryOp(token.NoPos, ast.OpNot, ast.NewLiteral(token.NoPos, value.Bool{B: true}))
	assert.Equal(t, "(not true)", u.Render())
}

func TestAsCastRender(t *testing.T) {
	c := ast.NewAsCast(token.NoPos, ast.NewVariable(token.NoPos, []string{"x"}), ast.NamedType{Name: "Number"})
	assert.Equal(t, "x as Number", c.Render())
}

func TestCallRenderAndCache(t *testing.T) {
	c := ast.NewCall(token.NoPos, "sum", []ast.Expr{
		ast.NewLiteral(token.NoPos, value.NewInt(1)),
		ast.NewLiteral(token.NoPos, value.NewInt(2)),
	})
	assert.Equal(t, "sum(1, 2)", c.Render())
	assert.False(t, c.IsBuiltin)

	_, ok := c.Cached()
	assert.False(t, ok)
	c.SetCached(value.NumberT)
	_, ok = c.Cached()
	assert.True(t, ok)
}

func TestIndexRender(t *testing.T) {
	i := ast.NewIndex(token.NoPos, ast.NewVariable(token.NoPos, []string{"xs"}), ast.NewLiteral(token.NoPos, value.NewInt(1)))
	assert.Equal(t, "xs[1]", i.Render())
}

func TestFilterRender(t *testing.T) {
	f := ast.NewFilter(token.NoPos, ast.NewVariable(token.NoPos, []string{"xs"}),
		ast.NewUnaryPredicate(token.NoPos, ast.OpGt, ast.NewLiteral(token.NoPos, value.NewInt(10))))
	assert.Equal(t, "xs[> 10]", f.Render())
}

func TestContextVarRender(t *testing.T) {
	assert.Equal(t, "it", ast.NewContextVar(token.NoPos).Render())
}

func TestSelectRenderAndCache(t *testing.T) {
	s := ast.NewSelect(token.NoPos, ast.NewVariable(token.NoPos, []string{"a"}), "field")
	assert.Equal(t, "a.field", s.Render())

	_, ok := s.Cached()
	assert.False(t, ok)
	s.SetCached(value.NumberT)
	got, ok := s.Cached()
	assert.True(t, ok)
	assert.Equal(t, value.NumberT, got)
}

func TestCollectionLitRender(t *testing.T) {
	c := ast.NewCollectionLit(token.NoPos, []ast.Expr{
		ast.NewLiteral(token.NoPos, value.NewInt(1)),
		ast.NewLiteral(token.NoPos, value.NewInt(2)),
	})
	assert.Equal(t, "[1, 2]", c.Render())
}

func TestRangeExprRender(t *testing.T) {
	r := ast.NewRangeExpr(token.NoPos, ast.NewLiteral(token.NoPos, value.NewInt(1)), ast.NewLiteral(token.NoPos, value.NewInt(5)))
	assert.Equal(t, "1..5", r.Render())
}

func TestIfThenElseRender(t *testing.T) {
	i := ast.NewIfThenElse(token.NoPos,
		ast.NewLiteral(token.NoPos, value.Bool{B: true}),
		ast.NewLiteral(token.NoPos, value.NewInt(1)),
		ast.NewLiteral(token.NoPos, value.NewInt(2)))
	assert.Equal(t, "if true then 1 else 2", i.Render())
}

func TestForReturnRender(t *testing.T) {
	f := ast.NewForReturn(token.NoPos, "x", ast.NewVariable(token.NoPos, []string{"xs"}),
		ast.NewBinaryOp(token.NoPos, ast.OpMul, ast.NewVariable(token.NoPos, []string{"x"}), ast.NewLiteral(token.NoPos, value.NewInt(2))))
	assert.Equal(t, "for x in xs return (x * 2)", f.Render())
}

func TestObjectLitExprRenderDelegatesToObject(t *testing.T) {
	obj := ast.NewContextObject()
	_ = obj.AddExpression("a", ast.NewLiteral(token.NoPos, value.NewInt(1)))
	o := ast.NewObjectLitExpr(token.NoPos, obj)
	assert.Equal(t, obj.Render(), o.Render())
}

func TestNamedTypeRender(t *testing.T) {
	assert.Equal(t, "Number", ast.NamedType{Name: "Number"}.Render())
}

func TestListTypeRender(t *testing.T) {
	lt := ast.ListType{Elem: ast.NamedType{Name: "String"}}
	assert.Equal(t, "String[]", lt.Render())
}

func TestTypePlaceholderRenderWithAndWithoutDefault(t *testing.T) {
	noDefault := ast.NewTypePlaceholder(token.NoPos, ast.NamedType{Name: "Number"}, nil)
	assert.Equal(t, "<Number>", noDefault.Render())

	withDefault := ast.NewTypePlaceholder(token.NoPos, ast.NamedType{Name: "Number"}, ast.NewLiteral(token.NoPos, value.NewInt(0)))
	assert.Equal(t, "<Number, 0>", withDefault.Render())
}
