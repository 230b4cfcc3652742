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

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
)

func TestKindFamilies(t *testing.T) {
	assert.True(t, errors.FieldNotFound.IsLinkingKind())
	assert.False(t, errors.FieldNotFound.IsRuntimeKind())

	assert.True(t, errors.DivisionByZero.IsRuntimeKind())
	assert.False(t, errors.DivisionByZero.IsLinkingKind())

	assert.False(t, errors.ParseError.IsLinkingKind())
	assert.False(t, errors.ParseError.IsRuntimeKind())
}

func TestErrorMessageRendering(t *testing.T) {
	e := errors.New(errors.TypesNotCompatible, token.Pos{Line: 3, Column: 5}, "expected %s, got %s", "Number", "String")
	e = e.WithPathPrefix("amount")
	e = e.WithExpr("a + b")

	msg := e.Error()
	assert.Contains(t, msg, "amount:")
	assert.Contains(t, msg, "expected Number, got String")
	assert.Contains(t, msg, "(in a + b)")
	assert.Contains(t, msg, "at 3:5")
}

func TestWithPathPrefixPrepends(t *testing.T) {
	e := errors.New(errors.FieldNotFound, token.NoPos, "not found")
	e = e.WithPathPrefix("inner")
	e = e.WithPathPrefix("outer")
	assert.Equal(t, []string{"outer", "inner"}, e.Path)
}

func TestWithExprKeepsInnermost(t *testing.T) {
	e := errors.New(errors.EvalError, token.NoPos, "boom")
	e = e.WithExpr("x")
	e = e.WithExpr("y")
	assert.Equal(t, "x", e.Expr)
}

func TestWrapPreservesInnerPathAndExpr(t *testing.T) {
	inner := errors.New(errors.DivisionByZero, token.NoPos, "div by zero").WithPathPrefix("b").WithExpr("1 / 0")
	outer := errors.Wrap(errors.EvalError, token.NoPos, inner, "evaluation failed")

	assert.Equal(t, []string{"b"}, outer.Path)
	assert.Equal(t, "1 / 0", outer.Expr)

	kind, ok := errors.KindOf(outer)
	require := assert.New(t)
	require.True(ok)
	require.Equal(errors.DivisionByZero, kind)
}

func TestKindOfPlainErrorIsFalse(t *testing.T) {
	_, ok := errors.KindOf(assert.AnError)
	assert.False(t, ok)
}

func TestListErrorJoinsMessages(t *testing.T) {
	var l errors.List
	l = l.Append(errors.New(errors.ParseError, token.NoPos, "first"))
	l = l.Append(errors.New(errors.ParseError, token.NoPos, "second"))

	msg := l.Error()
	assert.Contains(t, msg, "first")
	assert.Contains(t, msg, "second")
}
