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
	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

func evalBinary(ec *ast.ExecutionContext, n *ast.BinaryOp) (value.Value, error) {
	l, err := Eval(ec, n.Left)
	if err != nil {
		return nil, err
	}
	r, err := Eval(ec, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		if ls, ok := l.(value.Str); ok {
			if rs, ok := r.(value.Str); ok {
				return value.NewStr(ls.S + rs.S), nil
			}
		}
		if ln, ok := l.(value.Number); ok {
			if rn, ok := r.(value.Number); ok {
				out, derr := ln.Add(rn)
				if derr != nil {
					return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s", derr)
				}
				return out, nil
			}
		}
		out, terr := value.TemporalAdd(l, r)
		if terr != nil {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s", terr)
		}
		return out, nil

	case ast.OpSub:
		if ln, ok := l.(value.Number); ok {
			if rn, ok := r.(value.Number); ok {
				out, derr := ln.Sub(rn)
				if derr != nil {
					return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s", derr)
				}
				return out, nil
			}
		}
		out, terr := value.TemporalSub(l, r)
		if terr != nil {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s", terr)
		}
		return out, nil

	case ast.OpMul, ast.OpQuo, ast.OpRem, ast.OpPow:
		ln, ok1 := l.(value.Number)
		rn, ok2 := r.(value.Number)
		if !ok1 || !ok2 {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s requires two numbers", n.Op)
		}
		switch n.Op {
		case ast.OpMul:
			out, derr := ln.Mul(rn)
			if derr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s", derr)
			}
			return out, nil
		case ast.OpQuo:
			out, derr := ln.Div(rn)
			if derr != nil {
				return nil, divOrType(n.Pos(), derr)
			}
			return out, nil
		case ast.OpRem:
			out, derr := ln.Mod(rn)
			if derr != nil {
				return nil, divOrType(n.Pos(), derr)
			}
			return out, nil
		case ast.OpPow:
			out, derr := ln.Pow(rn)
			if derr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s", derr)
			}
			return out, nil
		}
	case ast.OpEql:
		return value.Bool{B: value.Equal(l, r)}, nil
	case ast.OpNeq:
		return value.Bool{B: !value.Equal(l, r)}, nil
	case ast.OpLt, ast.OpLeq, ast.OpGt, ast.OpGeq:
		return evalComparator(n.Op, l, r, n.Pos())
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		lb, ok1 := l.(value.Bool)
		rb, ok2 := r.(value.Bool)
		if !ok1 || !ok2 {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "%s requires two booleans", n.Op)
		}
		switch n.Op {
		case ast.OpAnd:
			return value.Bool{B: lb.B && rb.B}, nil
		case ast.OpOr:
			return value.Bool{B: lb.B || rb.B}, nil
		case ast.OpXor:
			return value.Bool{B: lb.B != rb.B}, nil
		}
	}
	return nil, errors.New(errors.InternalIntegrityError, n.Pos(), "unsupported operator %s", n.Op)
}

func divOrType(pos token.Pos, err error) error {
	if value.IsDivByZero(err) {
		return errors.New(errors.DivisionByZero, pos, "division by zero")
	}
	return errors.New(errors.TypeNotSupported, pos, "%s", err)
}

func evalComparator(op ast.Op, l, r value.Value, pos token.Pos) (value.Value, error) {
	c, err := value.Compare(l, r)
	if err != nil {
		return nil, errors.New(errors.TypeNotSupported, pos, "%s", err)
	}
	switch op {
	case ast.OpLt:
		return value.Bool{B: c < 0}, nil
	case ast.OpLeq:
		return value.Bool{B: c <= 0}, nil
	case ast.OpGt:
		return value.Bool{B: c > 0}, nil
	case ast.OpGeq:
		return value.Bool{B: c >= 0}, nil
	}
	return nil, errors.New(errors.InternalIntegrityError, pos, "unsupported comparator %s", op)
}

func evalUnary(ec *ast.ExecutionContext, n *ast.UnaryOp) (value.Value, error) {
	x, err := Eval(ec, n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		num, ok := x.(value.Number)
		if !ok {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "unary - requires a number")
		}
		return num.Neg(), nil
	case ast.OpNot:
		b, ok := x.(value.Bool)
		if !ok {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "not requires a boolean")
		}
		return value.Bool{B: !b.B}, nil
	}
	return nil, errors.New(errors.InternalIntegrityError, n.Pos(), "unsupported unary operator %s", n.Op)
}

// evalCast implements `expr as Type` (spec §4.C, §6). Any value casts
// to String, and a String parses to the primitive kind named by the
// target; a malformed String is a RuntimeError. Any other cast,
// including one to a user-defined alias, returns the operand unchanged.
func evalCast(ec *ast.ExecutionContext, n *ast.AsCast) (value.Value, error) {
	x, err := Eval(ec, n.X)
	if err != nil {
		return nil, err
	}
	name, ok := n.TargetT.(ast.NamedType)
	if !ok {
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast to %s", n.TargetT.Render())
	}
	switch name.Name {
	case "String":
		return value.NewStr(x.String()), nil
	case "Number":
		if s, ok := x.(value.Str); ok {
			num, perr := value.ParseNumberLiteral(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast %q to Number", s.S)
			}
			return num, nil
		}
	case "Date":
		if s, ok := x.(value.Str); ok {
			d, perr := value.ParseDate(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast %q to Date", s.S)
			}
			return d, nil
		}
	case "Time":
		if s, ok := x.(value.Str); ok {
			t, perr := value.ParseTime(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast %q to Time", s.S)
			}
			return t, nil
		}
	case "DateTime":
		if s, ok := x.(value.Str); ok {
			dt, perr := value.ParseDateTime(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast %q to DateTime", s.S)
			}
			return dt, nil
		}
	case "Duration":
		if s, ok := x.(value.Str); ok {
			d, perr := value.ParseDuration(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast %q to Duration", s.S)
			}
			return d, nil
		}
	case "Period":
		if s, ok := x.(value.Str); ok {
			p, perr := value.ParsePeriod(s.S)
			if perr != nil {
				return nil, errors.New(errors.TypeNotSupported, n.Pos(), "cannot cast %q to Period", s.S)
			}
			return p, nil
		}
	}
	return x, nil
}

func evalIndex(ec *ast.ExecutionContext, n *ast.Index) (value.Value, error) {
	xv, err := Eval(ec, n.X)
	if err != nil {
		return nil, err
	}
	arr, ok := xv.(value.Array)
	if !ok {
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "[] requires a list")
	}
	iv, err := Eval(ec, n.IndexExpr)
	if err != nil {
		return nil, err
	}
	num, ok := iv.(value.Number)
	if !ok {
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "list index must be a number")
	}
	return arr.At(num.Int64()), nil
}

func evalFilter(ec *ast.ExecutionContext, n *ast.Filter) (value.Value, error) {
	xv, err := Eval(ec, n.X)
	if err != nil {
		return nil, err
	}
	arr, ok := xv.(value.Array)
	if !ok {
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "[] filter requires a list")
	}
	var out []value.Value
	saved := ec.ContextVariable
	defer func() { ec.ContextVariable = saved }()
	for _, item := range arr.Items {
		ec.ContextVariable = item
		mv, err := Eval(ec, n.Pred)
		if err != nil {
			return nil, err
		}
		b, ok := mv.(value.Bool)
		if !ok {
			return nil, errors.New(errors.TypeNotSupported, n.Pos(), "filter predicate must evaluate to a boolean")
		}
		if b.B {
			out = append(out, item)
		}
	}
	return value.NewArray(arr.ElemType, out), nil
}

func evalSelect(ec *ast.ExecutionContext, n *ast.Select) (value.Value, error) {
	xv, err := Eval(ec, n.X)
	if err != nil {
		return nil, err
	}
	return selectOne(xv, n.Field, n.Pos())
}

func evalTemporalAccessor(v value.Value, field string, pos token.Pos) (value.Value, error) {
	switch x := v.(type) {
	case value.Date:
		switch field {
		case "year":
			return value.NewInt(int64(x.Year())), nil
		case "month":
			return value.NewInt(int64(x.Month())), nil
		case "day":
			return value.NewInt(int64(x.Day())), nil
		case "weekday":
			return value.NewInt(int64(x.Weekday())), nil
		}
	case value.Time:
		switch field {
		case "hour":
			return value.NewInt(int64(x.Hour())), nil
		case "minute":
			return value.NewInt(int64(x.Minute())), nil
		case "second":
			return value.NewInt(int64(x.Second())), nil
		}
	case value.DateTime:
		switch field {
		case "year":
			return value.NewInt(int64(x.Year())), nil
		case "month":
			return value.NewInt(int64(x.Month())), nil
		case "day":
			return value.NewInt(int64(x.Day())), nil
		case "hour":
			return value.NewInt(int64(x.Hour())), nil
		case "minute":
			return value.NewInt(int64(x.Minute())), nil
		case "second":
			return value.NewInt(int64(x.Second())), nil
		case "weekday":
			return value.NewInt(int64(x.Weekday())), nil
		case "dateOnly":
			return x.DateOnly(), nil
		case "timeOnly":
			return x.TimeOnly(), nil
		}
	case value.Duration:
		switch field {
		case "days":
			return value.NewInt(x.Days()), nil
		case "hoursPart":
			return value.NewInt(x.HoursPart()), nil
		case "minutesPart":
			return value.NewInt(x.MinutesPart()), nil
		case "secondsPart":
			return value.NewInt(x.SecondsPart()), nil
		case "totalSeconds":
			return value.NewInt(x.TotalSeconds()), nil
		case "totalMinutes":
			return value.NewInt(x.TotalMinutes()), nil
		case "totalHours":
			return value.NewInt(x.TotalHours()), nil
		}
	case value.Period:
		switch field {
		case "years":
			return value.NewInt(int64(x.Years())), nil
		case "monthsPart":
			return value.NewInt(int64(x.MonthsPart())), nil
		case "totalMonths":
			return value.NewInt(int64(x.TotalMonths())), nil
		case "totalDays":
			return value.NewInt(int64(x.TotalDays())), nil
		}
	}
	return nil, errors.New(errors.RuntimeFieldNotFound, pos, "field %q not found on %s", field, v.Kind())
}

func evalCollectionLit(ec *ast.ExecutionContext, n *ast.CollectionLit) (value.Value, error) {
	if len(n.Elems) == 0 {
		return value.NewEmptyUntypedArray(), nil
	}
	items := make([]value.Value, len(n.Elems))
	for i, e := range n.Elems {
		v, err := Eval(ec, e)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.NewArray(items[0].Type(), items), nil
}

func evalRange(ec *ast.ExecutionContext, n *ast.RangeExpr) (value.Value, error) {
	sv, err := Eval(ec, n.Start)
	if err != nil {
		return nil, err
	}
	ev, err := Eval(ec, n.End)
	if err != nil {
		return nil, err
	}
	sn, ok1 := sv.(value.Number)
	en, ok2 := ev.(value.Number)
	if !ok1 || !ok2 {
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "range bounds must be numbers")
	}
	return value.NewRange(sn.Int64(), en.Int64()), nil
}

func evalIfThenElse(ec *ast.ExecutionContext, n *ast.IfThenElse) (value.Value, error) {
	cv, err := Eval(ec, n.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := cv.(value.Bool)
	if !ok {
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "if condition must be a boolean")
	}
	if b.B {
		return Eval(ec, n.Then)
	}
	return Eval(ec, n.Else)
}

func evalForReturn(ec *ast.ExecutionContext, n *ast.ForReturn) (value.Value, error) {
	sv, err := Eval(ec, n.Source)
	if err != nil {
		return nil, err
	}

	var items []value.Value
	switch src := sv.(type) {
	case value.Array:
		items = src.Items
	case value.Range:
		for i := src.Start; i < src.End; i++ {
			items = append(items, value.NewInt(i))
		}
	default:
		return nil, errors.New(errors.TypeNotSupported, n.Pos(), "for/in source must be a list or range")
	}

	if ec.Locals == nil {
		ec.Locals = map[string]value.Value{}
	}
	saved, had := ec.Locals[n.Var]
	defer func() {
		if had {
			ec.Locals[n.Var] = saved
		} else {
			delete(ec.Locals, n.Var)
		}
	}()

	out := make([]value.Value, 0, len(items))
	var elemType value.Type
	for i, item := range items {
		ec.Locals[n.Var] = item
		rv, err := Eval(ec, n.Result)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elemType = rv.Type()
		}
		out = append(out, rv)
	}
	if len(out) == 0 {
		return value.NewEmptyUntypedArray(), nil
	}
	return value.NewArray(elemType, out), nil
}
