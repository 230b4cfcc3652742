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

// Package ast declares the syntax tree for EdgeRules source (spec
// §4.B, component B) together with the ContextObject schema and
// ExecutionContext scope graph (spec §3.3-3.4, §4.D, component D).
//
// These live in one package, following the same layering the teacher
// uses for its internal/core/adt package: adt there combines
// expression nodes (Num, BinaryExpr, ...) with the runtime composite
// graph (Vertex, Environment) because the two are structurally
// inseparable -- a ContextObject's ExpressionEntry literally holds an
// Expr, and an ExecutionContext must be able to look one up by name.
// Splitting them into separate packages would force either a Node
// interface with callback-style Link/Eval methods or an import cycle;
// neither buys anything a reader wouldn't have to see through anyway.
//
// This package holds DATA ONLY: node struct types and the schema/scope
// graph, all fields exported. The actual linking algorithm lives in
// the link package and the evaluation algorithm lives in the eval
// package, each implemented as a type switch over these node types --
// the same structure the teacher uses to keep internal/core/compile
// and internal/core/eval as walkers over adt's data (see
// compile.go's compiler.expr, a switch on ast.Expr concrete types).
package ast

import "github.com/rimvydasb/edgerules-sub001/token"

// Expr is implemented by every expression-position AST node (spec
// §4.B). It carries no behaviour of its own; link and eval dispatch on
// the concrete type.
type Expr interface {
	Pos() token.Pos
	// Render returns the textual form of the expression, with explicit
	// parentheses reflecting the precedence it was parsed with (spec
	// §4.C, "Rendering value preserves grouping"). Used both for the
	// canonical source round-trip and for error location rendering
	// (spec §4.E, §7).
	Render() string
}

// exprBase is embedded by every concrete Expr to supply its position.
type exprBase struct {
	pos token.Pos
}

func (e exprBase) Pos() token.Pos { return e.pos }
