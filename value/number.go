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

package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// apdCtx is the shared decimal context used for all Number arithmetic,
// the same role as the package-level apdCtx in the teacher's
// internal/core/adt/binop.go.
var apdCtx apd.Context

func init() {
	apdCtx = apd.BaseContext
	apdCtx.Precision = 34
}

// Number is a tagged union of a signed 64-bit-range integer, a real
// number, or a special-value sentinel (spec §3.1). Both integers and
// reals are stored as an apd.Decimal -- the same representation the
// teacher's adt.Num uses -- which sidesteps float precision surprises
// in business-decision arithmetic and keeps Int/Real promotion a
// matter of a single IsReal bit rather than two code paths.
type Number struct {
	dec    apd.Decimal
	IsReal bool
	sv     SVKind
	reason string
}

func (Number) Kind() Kind { return NumberKind }
func (Number) Type() Type { return NumberT }

func (n Number) SV() (SVKind, string) { return n.sv, n.reason }

// IsSV reports whether n is a special value.
func (n Number) IsSV() bool { return n.sv != NotSV }

// NewInt constructs an integer Number.
func NewInt(i int64) Number {
	var n Number
	n.dec.SetInt64(i)
	return n
}

// NewReal constructs a real Number from a float64.
func NewReal(f float64) Number {
	var n Number
	n.dec.SetFloat64(f)
	n.IsReal = true
	return n
}

// NewDecimal constructs a Number directly from a decimal, e.g. as
// produced by the tokenizer's literal scanner (spec §4.C: "Numbers are
// decimal with one optional dot").
func NewDecimal(dec apd.Decimal, isReal bool) Number {
	return Number{dec: dec, IsReal: isReal}
}

// NewMissingNumber / NewNotApplicableNumber construct SV sentinels
// (spec §3.1), optionally carrying a free-form reason.
func NewMissingNumber(reason string) Number {
	return Number{sv: Missing, reason: reason}
}

func NewNotApplicableNumber(reason string) Number {
	return Number{sv: NotApplicable, reason: reason}
}

// Decimal exposes the backing decimal for callers (e.g. the evaluator
// needs it to drive loop ranges and list indices).
func (n Number) Decimal() apd.Decimal { return n.dec }

// Int64 truncates n to an int64. Callers must check !n.IsSV() and
// !n.IsReal first if exactness matters.
func (n Number) Int64() int64 {
	i, _ := n.dec.Int64()
	return i
}

// Float64 converts n to a float64.
func (n Number) Float64() float64 {
	f, _ := n.dec.Float64()
	return f
}

func (n Number) String() string {
	if n.sv != NotSV {
		return svString(n.sv, n.reason)
	}
	if !n.IsReal {
		return n.dec.Text('f')
	}
	// Shortest round-trip decimal with a dot (spec §6).
	s := n.dec.Text('f')
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// arith applies op's apd decimal function to two non-SV numbers,
// promoting the result to Real if either operand is Real (spec §4.A).
func arith(op func(d, x, y *apd.Decimal) (apd.Condition, error), a, b Number) (Number, *DomainError) {
	var out apd.Decimal
	_, err := op(&out, &a.dec, &b.dec)
	if err != nil {
		return Number{}, &DomainError{Err: err}
	}
	return Number{dec: out, IsReal: a.IsReal || b.IsReal}, nil
}

// DomainError signals an arithmetic failure that the evaluator turns
// into a RuntimeError (e.g. division by zero), as opposed to an SV,
// which is returned as a normal Number value (spec §4.F).
type DomainError struct {
	Err error
}

func (e *DomainError) Error() string { return e.Err.Error() }

// Add implements Number + Number with SV propagation (spec §4.A, §3.1).
func (n Number) Add(o Number) (Number, *DomainError) {
	if sv, ok := combineSV(n, o); ok {
		return sv, nil
	}
	return arith(func(d, x, y *apd.Decimal) (apd.Condition, error) { return apdCtx.Add(d, x, y) }, n, o)
}

func (n Number) Sub(o Number) (Number, *DomainError) {
	if sv, ok := combineSV(n, o); ok {
		return sv, nil
	}
	return arith(func(d, x, y *apd.Decimal) (apd.Condition, error) { return apdCtx.Sub(d, x, y) }, n, o)
}

func (n Number) Mul(o Number) (Number, *DomainError) {
	if sv, ok := combineSV(n, o); ok {
		return sv, nil
	}
	return arith(func(d, x, y *apd.Decimal) (apd.Condition, error) { return apdCtx.Mul(d, x, y) }, n, o)
}

// Div implements Number / Number. Division by zero is a RuntimeError
// for both Int and Real operands (spec §4.A, §8 boundary behaviours),
// signalled by a non-nil error distinct from DomainError so the
// evaluator can map it straight to errors.DivisionByZero rather than
// an SV.
func (n Number) Div(o Number) (Number, error) {
	if sv, ok := combineSV(n, o); ok {
		return sv, nil
	}
	if o.dec.IsZero() {
		return Number{}, errDivByZero
	}
	isReal := n.IsReal || o.IsReal
	var out apd.Decimal
	if _, err := apdCtx.Quo(&out, &n.dec, &o.dec); err != nil {
		return Number{}, &DomainError{Err: err}
	}
	if !isReal {
		// Integer division truncates toward zero.
		var q apd.Decimal
		if _, err := apdCtx.QuoInteger(&q, &n.dec, &o.dec); err != nil {
			return Number{}, &DomainError{Err: err}
		}
		return Number{dec: q}, nil
	}
	return Number{dec: out, IsReal: true}, nil
}

// Mod implements the % operator. Modulo by zero is a RuntimeError
// (spec §8).
func (n Number) Mod(o Number) (Number, error) {
	if sv, ok := combineSV(n, o); ok {
		return sv, nil
	}
	if o.dec.IsZero() {
		return Number{}, errDivByZero
	}
	var out apd.Decimal
	if _, err := apdCtx.Rem(&out, &n.dec, &o.dec); err != nil {
		return Number{}, &DomainError{Err: err}
	}
	return Number{dec: out, IsReal: n.IsReal || o.IsReal}, nil
}

// Pow implements the ^ operator.
func (n Number) Pow(o Number) (Number, *DomainError) {
	if sv, ok := combineSV(n, o); ok {
		return sv, nil
	}
	return arith(func(d, x, y *apd.Decimal) (apd.Condition, error) { return apdCtx.Pow(d, x, y) }, n, o)
}

// Neg implements unary minus.
func (n Number) Neg() Number {
	if n.IsSV() {
		return n
	}
	var out apd.Decimal
	out.Neg(&n.dec)
	return Number{dec: out, IsReal: n.IsReal}
}

// Cmp compares two non-SV numbers; callers must check IsSV() first.
func (n Number) Cmp(o Number) int {
	return n.dec.Cmp(&o.dec)
}

func combineSV(a, b Number) (Number, bool) {
	if a.sv != NotSV {
		return a, true
	}
	if b.sv != NotSV {
		return b, true
	}
	return Number{}, false
}

// errDivByZero is a sentinel distinguishing division-by-zero from
// other DomainErrors; the evaluator maps it to errors.DivisionByZero.
var errDivByZero = fmt.Errorf("division by zero")

// IsDivByZero reports whether err is the division-by-zero sentinel.
func IsDivByZero(err error) bool {
	return err == errDivByZero
}

// ParseNumberLiteral parses a decimal literal exactly as the
// tokenizer's number scanner hands it over: digits with at most one
// dot (spec §4.C). No locale-sensitive parsing is performed (spec §1
// non-goals).
func ParseNumberLiteral(lit string) (Number, error) {
	isReal := strings.Contains(lit, ".")
	var dec apd.Decimal
	if _, _, err := dec.SetString(lit); err != nil {
		return Number{}, fmt.Errorf("invalid number literal %q: %w", lit, err)
	}
	return Number{dec: dec, IsReal: isReal}, nil
}

// MustInt is a test/builder convenience equivalent to strconv.Itoa's
// inverse for Number.
func MustInt(s string) Number {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		panic(err)
	}
	return NewInt(i)
}
