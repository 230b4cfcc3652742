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

package eval

import (
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// builtinFn is the runtime counterpart of link.builtinSig: it receives
// already-evaluated argument values and returns the call's result
// (spec §4.D built-in catalogue). Keyed by the same name the linker
// validated against, so a successfully linked Call can never reach an
// unknown name here.
type builtinFn func(args []value.Value, pos token.Pos) (value.Value, error)

var builtins map[string]builtinFn

func init() {
	builtins = map[string]builtinFn{
		"count": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			return value.NewInt(int64(len(arr.Items))), nil
		},
		"sum": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			total := value.NewInt(0)
			for _, it := range arr.Items {
				n := it.(value.Number)
				out, derr := total.Add(n)
				if derr != nil {
					return nil, errors.New(errors.TypeNotSupported, pos, "%s", derr)
				}
				total = out
			}
			return total, nil
		},
		"avg": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			if len(arr.Items) == 0 {
				return value.NewMissingNumber("avg of empty list"), nil
			}
			total := value.NewInt(0)
			for _, it := range arr.Items {
				n := it.(value.Number)
				out, derr := total.Add(n)
				if derr != nil {
					return nil, errors.New(errors.TypeNotSupported, pos, "%s", derr)
				}
				total = out
			}
			out, derr := total.Div(value.NewInt(int64(len(arr.Items))))
			if derr != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "%s", derr)
			}
			return out, nil
		},
		"min": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			if len(arr.Items) == 0 {
				return nil, errors.New(errors.RuntimeFieldNotFound, pos, "min of empty list")
			}
			best := arr.Items[0]
			for _, it := range arr.Items[1:] {
				c, err := value.Compare(it, best)
				if err != nil {
					return nil, errors.New(errors.TypeNotSupported, pos, "%s", err)
				}
				if c < 0 {
					best = it
				}
			}
			return best, nil
		},
		"max": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			if len(arr.Items) == 0 {
				return nil, errors.New(errors.RuntimeFieldNotFound, pos, "max of empty list")
			}
			best := arr.Items[0]
			for _, it := range arr.Items[1:] {
				c, err := value.Compare(it, best)
				if err != nil {
					return nil, errors.New(errors.TypeNotSupported, pos, "%s", err)
				}
				if c > 0 {
					best = it
				}
			}
			return best, nil
		},
		"abs": func(a []value.Value, pos token.Pos) (value.Value, error) {
			n := a[0].(value.Number)
			if n.Cmp(value.NewInt(0)) < 0 {
				return n.Neg(), nil
			}
			return n, nil
		},
		"floor": decimalRound("floor", apd.RoundFloor),
		"ceil":  decimalRound("ceil", apd.RoundCeiling),
		"round": decimalRound("round", apd.RoundHalfUp),
		"sqrt": func(a []value.Value, pos token.Pos) (value.Value, error) {
			n := a[0].(value.Number)
			dec := n.Decimal()
			var out apd.Decimal
			ctx := apd.BaseContext
			ctx.Precision = 34
			if _, err := ctx.Sqrt(&out, &dec); err != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "sqrt: %s", err)
			}
			return value.NewDecimal(out, true), nil
		},
		"upper": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			return value.NewStr(strings.ToUpper(s.S)), nil
		},
		"lower": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			return value.NewStr(strings.ToLower(s.S)), nil
		},
		"length": func(a []value.Value, pos token.Pos) (value.Value, error) {
			switch v := a[0].(type) {
			case value.Str:
				return value.NewInt(int64(len([]rune(v.S)))), nil
			case value.Array:
				return value.NewInt(int64(len(v.Items))), nil
			}
			return nil, errors.New(errors.TypeNotSupported, pos, "length expects a string or list")
		},
		"contains": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			for _, it := range arr.Items {
				if value.Equal(it, a[1]) {
					return value.Bool{B: true}, nil
				}
			}
			return value.Bool{B: false}, nil
		},
		"exists": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			return value.Bool{B: len(arr.Items) > 0}, nil
		},
		"isEmpty": func(a []value.Value, pos token.Pos) (value.Value, error) {
			arr := a[0].(value.Array)
			return value.Bool{B: len(arr.Items) == 0}, nil
		},
		"today": func(a []value.Value, pos token.Pos) (value.Value, error) {
			y, m, d := Now().Date()
			return value.NewDate(y, int(m), d), nil
		},
		"now": func(a []value.Value, pos token.Pos) (value.Value, error) {
			n := Now()
			y, m, d := n.Date()
			return value.NewDateTime(y, int(m), d, n.Hour(), n.Minute(), n.Second(), n.Nanosecond()), nil
		},
		"date": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			d, perr := value.ParseDate(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "cannot parse %q as Date", s.S)
			}
			return d, nil
		},
		"time": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			t, perr := value.ParseTime(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "cannot parse %q as Time", s.S)
			}
			return t, nil
		},
		"datetime": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			dt, perr := value.ParseDateTime(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "cannot parse %q as DateTime", s.S)
			}
			return dt, nil
		},
		"duration": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			d, perr := value.ParseDuration(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "cannot parse %q as Duration", s.S)
			}
			return d, nil
		},
		"period": func(a []value.Value, pos token.Pos) (value.Value, error) {
			s := a[0].(value.Str)
			p, perr := value.ParsePeriod(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, pos, "cannot parse %q as Period", s.S)
			}
			return p, nil
		},
	}
}

func decimalRound(name string, mode apd.Rounder) builtinFn {
	return func(a []value.Value, pos token.Pos) (value.Value, error) {
		n := a[0].(value.Number)
		dec := n.Decimal()
		ctx := apd.BaseContext
		ctx.Precision = 34
		ctx.Rounding = mode
		var out apd.Decimal
		if _, err := ctx.RoundToIntegralValue(&out, &dec); err != nil {
			return nil, errors.New(errors.TypeNotSupported, pos, "%s: %s", name, err)
		}
		return value.NewDecimal(out, false), nil
	}
}

// Now is a package variable so tests can pin the clock, the same
// seam pattern the teacher uses for anything that would otherwise make
// evaluation non-deterministic.
var Now = func() time.Time { return time.Now().UTC() }

// CallFunction invokes the user function or decision table named name,
// found by walking ec's lexical scope chain, with already-evaluated
// args (spec §4.G call_method). Builtins are not reachable through
// this entry point since call_method only ever names a user-defined
// field.
func CallFunction(ec *ast.ExecutionContext, name string, args []value.Value) (value.Value, error) {
	ownerSchema, ownerEc := findOwner(ec, name)
	if ownerEc == nil {
		return nil, errors.New(errors.FunctionNotFound, token.NoPos, "function %q not found", name)
	}
	kind, v := ownerSchema.Get(name)
	if kind != ast.FunctionField {
		return nil, errors.New(errors.FunctionNotFound, token.NoPos, "%q is not a function", name)
	}
	m := v.(*ast.MethodEntry)
	return callCallable(ec, m.Def, args, token.NoPos)
}

func evalCall(ec *ast.ExecutionContext, n *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(ec, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if n.IsBuiltin {
		fn, ok := builtins[n.Name]
		if !ok {
			return nil, errors.New(errors.FunctionNotFound, n.Pos(), "built-in %q not implemented", n.Name)
		}
		return fn(args, n.Pos())
	}

	ownerSchema, ownerEc := findOwner(ec, n.Name)
	if ownerEc == nil {
		return nil, errors.New(errors.FunctionNotFound, n.Pos(), "function %q not found", n.Name)
	}
	kind, v := ownerSchema.Get(n.Name)
	if kind != ast.FunctionField {
		return nil, errors.New(errors.FunctionNotFound, n.Pos(), "%q is not a function", n.Name)
	}
	m := v.(*ast.MethodEntry)
	return callCallable(ec, m.Def, args, n.Pos())
}

func callCallable(outer *ast.ExecutionContext, def ast.Callable, args []value.Value, pos token.Pos) (value.Value, error) {
	switch fn := def.(type) {
	case *ast.FuncDef:
		params := fn.Params
		if len(args) != len(params) {
			return nil, errors.New(errors.EvalError, pos, "function %q expects %d arguments, got %d", fn.Name, len(params), len(args))
		}
		callEc := ast.NewEphemeralExecutionContext(fn.Body, outer)
		for i, p := range params {
			callEc.Bind(p.Name, args[i])
		}
		if fn.ReturnsObject {
			return value.Ref{Handle: callEc}, nil
		}
		return EvalField(callEc, "return")
	case *ast.DecisionTable:
		return evalDecisionTable(outer, fn, args, pos)
	}
	return nil, errors.New(errors.InternalIntegrityError, pos, "unsupported callable %T", def)
}

// evalDecisionTable evaluates rows top-down and returns the first
// match's output (SPEC_FULL.md supplemented feature 1, first-match-wins
// hit policy grounded in original_source's decision_tables.rs).
func evalDecisionTable(outer *ast.ExecutionContext, dt *ast.DecisionTable, args []value.Value, pos token.Pos) (value.Value, error) {
	scope := dt.Scope
	if scope == nil {
		scope = ast.NewContextObject()
	}
	for _, row := range dt.Rows {
		if len(row.Inputs) != len(args) {
			return nil, errors.New(errors.EvalError, pos, "decision table %q row has %d inputs, expected %d", dt.Name, len(row.Inputs), len(args))
		}
		rowEc := ast.NewEphemeralExecutionContext(scope, outer)
		for i, p := range dt.Params {
			rowEc.Bind(p.Name, args[i])
		}
		matched := true
		for i, predExpr := range row.Inputs {
			// Each input cell is evaluated with the context variable
			// bound to the corresponding argument, so a cell can be
			// either a bare comparator (`>= 90`, sugar for `it >= 90`)
			// or a plain value compared for equality against it.
			rowEc.ContextVariable = args[i]
			pv, err := Eval(rowEc, predExpr)
			if err != nil {
				return nil, err
			}
			if b, ok := pv.(value.Bool); ok {
				if !b.B {
					matched = false
					break
				}
				continue
			}
			if !value.Equal(pv, args[i]) {
				matched = false
				break
			}
		}
		if matched {
			return Eval(rowEc, row.Output)
		}
	}
	return nil, errors.New(errors.EvalError, pos, "decision table %q: no row matched", dt.Name)
}
