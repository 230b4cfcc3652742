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
	"github.com/stretchr/testify/require"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

func TestCloneExprRebuildsIndependentTree(t *testing.T) {
	orig := ast.NewBinaryOp(token.NoPos, ast.OpAdd,
		ast.NewVariable(token.NoPos, []string{"a"}),
		ast.NewLiteral(token.NoPos, value.NewInt(1)))
	orig.SetCached(value.NumberT)

	clone := ast.CloneExpr(orig).(*ast.BinaryOp)
	assert.Equal(t, orig.Render(), clone.Render())
	assert.NotSame(t, orig, clone)

	_, ok := clone.Cached()
	assert.False(t, ok, "clone must not inherit the original's cached link state")
}

func TestCloneExprNilIsNil(t *testing.T) {
	assert.Nil(t, ast.CloneExpr(nil))
}

func TestContextObjectCloneIsIndependent(t *testing.T) {
	orig := ast.NewContextObject()
	require.NoError(t, orig.AddExpression("a", ast.NewLiteral(token.NoPos, value.NewInt(1))))

	clone := orig.Clone()
	require.NoError(t, clone.AddExpression("b", ast.NewLiteral(token.NoPos, value.NewInt(2))))

	kind, _ := orig.Get("b")
	assert.Equal(t, ast.NotFoundField, kind, "mutating the clone must not affect the original")

	kind, _ = clone.Get("a")
	assert.Equal(t, ast.ExpressionField, kind)
}

func TestContextObjectCloneCopiesChildObjectsDeeply(t *testing.T) {
	orig := ast.NewContextObject()
	child := ast.NewContextObject()
	require.NoError(t, child.AddExpression("x", ast.NewLiteral(token.NoPos, value.NewInt(1))))
	require.NoError(t, orig.AddChildObject("nested", child))

	clone := orig.Clone()
	kind, v := clone.Get("nested")
	require.Equal(t, ast.ChildField, kind)
	clonedChild := v.(*ast.ContextObject)
	assert.NotSame(t, child, clonedChild)
	assert.Same(t, clone, clonedChild.Node.Parent)
}

func TestContextObjectCloneFunctionBodySurvivesIntact(t *testing.T) {
	orig := ast.NewContextObject()
	body := ast.NewContextObject()
	body.Parameters = []ast.FormalParameter{{Name: "input"}}
	require.NoError(t, body.AddExpression("value", ast.NewBinaryOp(token.NoPos, ast.OpMul,
		ast.NewVariable(token.NoPos, []string{"input"}), ast.NewLiteral(token.NoPos, value.NewInt(2)))))
	def := &ast.FuncDef{Name: "doubled", Params: body.Parameters, Body: body, ReturnsObject: true}
	require.NoError(t, orig.AddFunction(def))

	clone := orig.Clone()
	kind, v := clone.Get("doubled")
	require.Equal(t, ast.FunctionField, kind)
	clonedDef := v.(*ast.MethodEntry).Def.(*ast.FuncDef)

	assert.NotSame(t, def, clonedDef)
	assert.NotSame(t, body, clonedDef.Body)
	assert.True(t, clonedDef.ReturnsObject, "ReturnsObject must survive cloning")
	assert.Same(t, clone, clonedDef.Body.Node.Parent)
}

func TestContextObjectCloneDecisionTableSurvivesIntact(t *testing.T) {
	orig := ast.NewContextObject()
	table := &ast.DecisionTable{
		Name:   "grade",
		Params: []ast.FormalParameter{{Name: "score"}},
		Rows: []ast.DecisionRow{
			{
				Inputs: []ast.Expr{ast.NewUnaryPredicate(token.NoPos, ast.OpGeq, ast.NewLiteral(token.NoPos, value.NewInt(90)))},
				Output: ast.NewLiteral(token.NoPos, value.NewStr("A")),
			},
		},
	}
	require.NoError(t, orig.AddFunction(table))

	clone := orig.Clone()
	kind, v := clone.Get("grade")
	require.Equal(t, ast.FunctionField, kind)
	clonedTable := v.(*ast.MethodEntry).Def.(*ast.DecisionTable)

	assert.NotSame(t, table, clonedTable)
	require.Len(t, clonedTable.Rows, 1)
	assert.NotSame(t, table.Rows[0].Output, clonedTable.Rows[0].Output)
	assert.Equal(t, table.Rows[0].Output.Render(), clonedTable.Rows[0].Output.Render())
}
