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

package model

import (
	"fmt"
	"strings"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/eval"
	"github.com/rimvydasb/edgerules-sub001/parser"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// Runtime is the linked, evaluable half of the façade (spec §4.G),
// produced by Model.ToRuntime or Model.ToRuntimeSnapshot. A Runtime
// from ToRuntimeSnapshot owns a cloned schema and never observes later
// edits to the Model it came from; one from ToRuntime shares the
// Model's tree.
type Runtime struct {
	schema *ast.ContextObject
	ec     *ast.ExecutionContext
}

// EvaluateField realises the field at the dotted path name_or_path,
// relative to the runtime's root (spec §4.G evaluate_field). Dotted
// segments walk through child objects exactly as a Variable reference
// inside the source language would.
func (r *Runtime) EvaluateField(path string) (value.Value, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return eval.Eval(r.ec, ast.NewVariable(token.NoPos, segs))
}

// CallMethod invokes the user function or decision table at the
// dotted path with already-evaluated args (spec §4.G call_method). A
// dotted prefix addresses the object the function is declared on; the
// final segment is the function's own name.
func (r *Runtime) CallMethod(path string, args []value.Value) (value.Value, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	ec := r.ec
	if len(segs) > 1 {
		parent, err := eval.Eval(ec, ast.NewVariable(token.NoPos, segs[:len(segs)-1]))
		if err != nil {
			return nil, err
		}
		ref, ok := parent.(value.Ref)
		if !ok {
			return nil, fmt.Errorf("%q is not an object", strings.Join(segs[:len(segs)-1], "."))
		}
		ec, ok = ref.Handle.(*ast.ExecutionContext)
		if !ok {
			return nil, fmt.Errorf("%q does not resolve to a runtime scope", strings.Join(segs[:len(segs)-1], "."))
		}
	}
	return eval.CallFunction(ec, segs[len(segs)-1], args)
}

// EvaluateExpression evaluates an already-parsed expression in the
// runtime's root scope (spec §4.G evaluate_expression). The expression
// is not linked first: a malformed or ill-typed expression surfaces as
// a runtime error rather than a linking error, since it was never part
// of the linked schema.
func (r *Runtime) EvaluateExpression(e ast.Expr) (value.Value, error) {
	return eval.Eval(r.ec, e)
}

// EvaluateExpressionStr parses code as a standalone expression and
// evaluates it in the runtime's root scope (spec §4.G
// evaluate_expression_str).
func (r *Runtime) EvaluateExpressionStr(code string) (value.Value, error) {
	e, errs := parser.ParseExpr([]byte(code))
	if len(errs) > 0 {
		return nil, errs
	}
	return r.EvaluateExpression(e)
}

// EvalAll realises every root-level field in declaration order,
// stopping at the first error (spec §4.G eval_all, §5 ordering
// guarantees).
func (r *Runtime) EvalAll() error {
	return eval.EvalAll(r.ec)
}
