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

// Package errors defines the structured error type shared by the
// tokenizer, linker and evaluator.
//
// The pivotal type is the Error struct. Every error the core
// produces keeps a Kind, the field-name Path from the model root, and
// the rendered Expr of the offending sub-expression, so a host can
// report failures without re-walking the AST (spec §7, §9).
package errors

import (
	"fmt"
	"strings"

	"github.com/rimvydasb/edgerules-sub001/token"
)

// Kind enumerates the closed set of error categories from spec §7.
type Kind int

const (
	_ Kind = iota
	ParseError
	DuplicateName

	// LinkingError sub-kinds.
	FieldNotFound
	FunctionNotFound
	CyclicReference
	TypesNotCompatible
	DifferentTypesDetected
	OperationNotSupported
	OtherLinkingError
	NotLinkedYet // internal sentinel, never surfaced to a host

	// RuntimeError sub-kinds.
	DivisionByZero
	TypeNotSupported
	RuntimeFieldNotFound
	EvalError
	InternalIntegrityError
)

var kindNames = map[Kind]string{
	ParseError:              "ParseError",
	DuplicateName:           "DuplicateName",
	FieldNotFound:           "FieldNotFound",
	FunctionNotFound:        "FunctionNotFound",
	CyclicReference:         "CyclicReference",
	TypesNotCompatible:      "TypesNotCompatible",
	DifferentTypesDetected:  "DifferentTypesDetected",
	OperationNotSupported:   "OperationNotSupported",
	OtherLinkingError:       "OtherLinkingError",
	NotLinkedYet:            "NotLinkedYet",
	DivisionByZero:          "DivisionByZero",
	TypeNotSupported:        "TypeNotSupported",
	RuntimeFieldNotFound:    "FieldNotFound",
	EvalError:               "EvalError",
	InternalIntegrityError:  "InternalIntegrityError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownError"
}

// IsLinkingKind reports whether k belongs to the LinkingError family.
func (k Kind) IsLinkingKind() bool {
	switch k {
	case FieldNotFound, FunctionNotFound, CyclicReference, TypesNotCompatible,
		DifferentTypesDetected, OperationNotSupported, OtherLinkingError, NotLinkedYet:
		return true
	}
	return false
}

// IsRuntimeKind reports whether k belongs to the RuntimeError family.
func (k Kind) IsRuntimeKind() bool {
	switch k {
	case DivisionByZero, TypeNotSupported, RuntimeFieldNotFound, EvalError, InternalIntegrityError:
		return true
	}
	return false
}

// Error is the common error type produced by the tokenizer, linker and
// evaluator. It mirrors cue/errors.Error's shape: a message plus
// positional and path context that a host can render without
// re-deriving it from the AST.
type Error struct {
	Kind Kind

	// Path is the vector of field names from the model root to the
	// container in which the error occurred.
	Path []string

	// Expr is the textual rendering of the offending sub-expression,
	// filled in as the error is wrapped on its way up the tree.
	Expr string

	// Pos is the source position of the offending token, when known.
	Pos token.Pos

	// message is the innermost human-readable description.
	message string

	// wrapped is the lower-level error this one adds context to, if any.
	wrapped error
}

// New creates a new Error of the given kind with a formatted message.
func New(kind Kind, pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if len(e.Path) > 0 {
		b.WriteString(strings.Join(e.Path, "."))
		b.WriteString(": ")
	}
	b.WriteString(e.message)
	if e.Expr != "" {
		fmt.Fprintf(&b, " (in %s)", e.Expr)
	}
	if e.Pos.IsValid() {
		fmt.Fprintf(&b, " at %s", e.Pos)
	}
	return b.String()
}

// Unwrap returns the lower-level error this one wraps, if any.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// Message returns the innermost human-readable text, without path or
// position decoration.
func (e *Error) Message() string {
	return e.message
}

// WithPathPrefix returns a copy of e with name prepended to its Path.
// Used by containers as the error propagates up the scope graph.
func (e *Error) WithPathPrefix(name string) *Error {
	cp := *e
	cp.Path = append([]string{name}, e.Path...)
	return &cp
}

// WithExpr returns a copy of e with Expr set, if it is not already set.
// The innermost failure keeps the most specific rendering.
func (e *Error) WithExpr(expr string) *Error {
	if e.Expr != "" {
		return e
	}
	cp := *e
	cp.Expr = expr
	return &cp
}

// Wrap creates a new Error of kind that adds context to cause, without
// discarding cause's kind from the chain (Unwrap still reaches it).
func Wrap(kind Kind, pos token.Pos, cause error, format string, args ...interface{}) *Error {
	e := New(kind, pos, format, args...)
	e.wrapped = cause
	if inner, ok := cause.(*Error); ok {
		e.Path = inner.Path
		e.Expr = inner.Expr
	}
	return e
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and
// false otherwise. Matches the innermost Error in the chain so that
// "the innermost kind is preserved" (spec §7).
func KindOf(err error) (Kind, bool) {
	type unwrapper interface{ Unwrap() error }
	var last *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			last = e
			if e.wrapped == nil {
				break
			}
			err = e.wrapped
			continue
		}
		u, ok := err.(unwrapper)
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if last == nil {
		return 0, false
	}
	return last.Kind, true
}

// List is an ordered collection of errors, used where a caller wants
// to collect more than the first failure (e.g. host-side batch
// linting); the core itself always surfaces only the first (spec §7).
type List []*Error

func (l List) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Append adds err to the end of the list.
func (l List) Append(err *Error) List {
	return append(l, err)
}
