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

import (
	"github.com/google/uuid"

	"github.com/rimvydasb/edgerules-sub001/value"
)

// stackEntry is a realised field value, cached once computed (spec
// §3.4: "stack: mapping from a field name to its realised
// value-or-error").
type stackEntry struct {
	val value.Value
	err error
}

// ExecNode mirrors SchemaNode on the dynamic side: parent/child links
// plus the per-field lock set guarding re-entrant evaluation (spec
// §3.4, §4.F, §9).
type ExecNode struct {
	Parent    *ExecutionContext
	FieldName string

	locked map[string]bool
}

func (n *ExecNode) IsRoot() bool { return n.Parent == nil }

func (n *ExecNode) AcquireLock(name string) bool {
	if n.locked == nil {
		n.locked = map[string]bool{}
	}
	if n.locked[name] {
		return false
	}
	n.locked[name] = true
	return true
}

func (n *ExecNode) ReleaseLock(name string) {
	delete(n.locked, name)
}

// ExecutionContext wraps one ContextObject with a stack of realised
// values (spec §3.4, component D dynamic side).
type ExecutionContext struct {
	Schema *ContextObject
	Node   ExecNode

	stack map[string]*stackEntry

	// children holds explicitly-attached addressable child scopes
	// (object-valued fields), created lazily on
	// first access and held with a strong reference (spec §5).
	children map[string]*ExecutionContext

	// ContextVariable is the optional "it" binding used inside a
	// filter predicate or unary-comparator cell (spec §3.4, §4.F).
	ContextVariable value.Value

	// Locals holds for/return loop-variable bindings, keyed by the
	// loop variable's declared name (spec §4.F). It is distinct from
	// the field stack so a loop variable can never shadow a real
	// field by colliding with its cache entry.
	Locals map[string]value.Value

	// PromiseEvalAll is set once EvalAll has completed successfully,
	// to make a repeated EvalAll idempotent (spec §3.4, §8).
	PromiseEvalAll bool

	// id tags ephemeral (function-call, decision-table-row and
	// inline-object) scopes, which have no field name
	// of their own, for debug rendering and cyclic-reference traces
	// (SPEC_FULL.md domain-stack: github.com/google/uuid). Explicitly
	// attached scopes are identified by their field path instead and
	// never need this.
	id uuid.UUID
}

// NewExecutionContext creates a fresh, addressable execution scope
// over schema.
func NewExecutionContext(schema *ContextObject) *ExecutionContext {
	return &ExecutionContext{
		Schema: schema,
		stack:  map[string]*stackEntry{},
	}
}

// NewEphemeralExecutionContext creates a temporary child scope of
// parent (spec §3.4), tagged with a fresh UUID since it has no field
// name of its own. The evaluator creates one per user-function call,
// per decision-table row and per inline object literal. Filter
// predicates and for/return bodies do not get one: they evaluate in
// the enclosing scope, with the element or loop variable bound on that
// scope while they run.
func NewEphemeralExecutionContext(schema *ContextObject, parent *ExecutionContext) *ExecutionContext {
	ec := NewExecutionContext(schema)
	ec.Node = ExecNode{Parent: parent}
	ec.id = uuid.New()
	return ec
}

// SchemaID implements value.ExecRef.
func (e *ExecutionContext) SchemaID() interface{} { return e.Schema }

// SchemaName implements value.ExecRef.
func (e *ExecutionContext) SchemaName() string {
	if e.Node.FieldName != "" {
		return e.Node.FieldName
	}
	return e.id.String()
}

// Cached returns the cached value/error for name, if any field has
// already been evaluated successfully or has a cached error.
func (e *ExecutionContext) Cached(name string) (value.Value, error, bool) {
	se, ok := e.stack[name]
	if !ok {
		return nil, nil, false
	}
	return se.val, se.err, true
}

// SetCached stores the realised value or error for name (spec §4.F
// step 4: "Cache the result (success or error) in the stack").
func (e *ExecutionContext) SetCached(name string, v value.Value, err error) {
	e.stack[name] = &stackEntry{val: v, err: err}
}

// Bind inserts a value into the stack directly, used for function and
// decision-table parameter binding (spec §4.F). for/return loop
// variables are held in Locals instead.
func (e *ExecutionContext) Bind(name string, v value.Value) {
	e.stack[name] = &stackEntry{val: v}
}

// ChildScope returns the addressable child execution context for
// field name, creating it on first access (spec §3.4 lifecycle).
func (e *ExecutionContext) ChildScope(name string, schema *ContextObject) *ExecutionContext {
	if e.children == nil {
		e.children = map[string]*ExecutionContext{}
	}
	if c, ok := e.children[name]; ok {
		return c
	}
	c := NewExecutionContext(schema)
	c.Node = ExecNode{Parent: e, FieldName: name}
	e.children[name] = c
	return c
}

// FieldNames exposes the declaration-order field list for EvalAll.
func (e *ExecutionContext) FieldNames() []string { return e.Schema.AllFieldNames }
