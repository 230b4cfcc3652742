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

// Package model is the public façade of the embeddable evaluator
// (spec §4.G, component G): a Model builder that accumulates a schema
// by parsing source text or by direct mutation, and a Runtime produced
// by linking a (possibly cloned) Model that can be evaluated.
//
// This mirrors the shape of the teacher's own public entry points
// (cue/cuecontext.Context producing cue.Value, itself wrapping a
// compile+eval pipeline): a small, stateful façade in front of the
// internal ast/parser/link/eval packages, none of which a host needs
// to import directly.
package model

import (
	"fmt"
	"strings"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/link"
	"github.com/rimvydasb/edgerules-sub001/parser"
	"github.com/rimvydasb/edgerules-sub001/token"
)

// Model is the mutable builder half of the façade (spec §4.G). The
// zero value is not usable; construct one with New.
type Model struct {
	root *ast.ContextObject
}

// New returns an empty model.
func New() *Model {
	return &Model{root: ast.NewRootContextObject()}
}

// AppendSource tokenizes and parses code as a top-level model and
// merges the result into the current builder root, honouring
// duplicate-name rules (spec §4.G, §4.D).
func (m *Model) AppendSource(code string) error {
	parsed, errs := parser.ParseModel([]byte(code))
	if len(errs) > 0 {
		return errs
	}
	if mergeErrs := m.root.MergeFrom(parsed); len(mergeErrs) > 0 {
		return joinErrors(mergeErrs)
	}
	return nil
}

// SetExpression stores expr (parsed as a standalone expression) as the
// field named by the final segment of path, creating any intermediate
// container objects named by path's earlier segments that do not yet
// exist (spec §4.G).
func (m *Model) SetExpression(path, expr string) error {
	parent, name, err := m.splitForWrite(path)
	if err != nil {
		return err
	}
	e, errs := parser.ParseExpr([]byte(expr))
	if len(errs) > 0 {
		return errs
	}
	return parent.AddExpression(name, e)
}

// SetUserFunction parses def as a single `func name(params): body`
// declaration and attaches it under containerPath (the empty string
// means the model root), keeping the name def itself declares rather
// than taking one from containerPath (spec §4.G, grounded in
// original_source's set_user_function(definition, path) split between
// the definition's own name and where it is mounted).
func (m *Model) SetUserFunction(containerPath, def string) error {
	container, err := m.resolveContainer(containerPath, true)
	if err != nil {
		return err
	}
	_, entry, err := parseSingleDecl(def, ast.FunctionField)
	if err != nil {
		return err
	}
	return container.AddFunction(entry.(*ast.MethodEntry).Def)
}

// SetUserType parses def as a single `type Name: ...` declaration and
// attaches it under containerPath (spec §4.G).
func (m *Model) SetUserType(containerPath, def string) error {
	container, err := m.resolveContainer(containerPath, true)
	if err != nil {
		return err
	}
	name, body, err := parseSingleDecl(def, ast.DefinitionField)
	if err != nil {
		return err
	}
	return container.SetUserTypeDefinition(name, body.(*ast.UserTypeBody))
}

// SetDecisionTable attaches a decision table definition under
// containerPath (spec §4.G set_user_function, SPEC_FULL.md
// supplemented feature 1). Decision tables have no surface syntax
// (spec §6 describes only func/type declarations), so unlike
// SetUserFunction this is a direct builder call rather than a parser
// entry point: the caller constructs dt with ast.DecisionTable and its
// Scope.Parameters set to dt.Params.
func (m *Model) SetDecisionTable(containerPath string, dt *ast.DecisionTable) error {
	container, err := m.resolveContainer(containerPath, true)
	if err != nil {
		return err
	}
	return container.AddFunction(dt)
}

// SetInvocation is shorthand for recording a call to an already
// defined user function as the expression at path (spec §4.G
// set_invocation: "a shorthand that records a user-function call as
// an expression").
func (m *Model) SetInvocation(path, methodPath string, args []ast.Expr) error {
	parent, name, err := m.splitForWrite(path)
	if err != nil {
		return err
	}
	return parent.AddExpression(name, ast.NewCall(token.NoPos, methodPath, args))
}

// RemoveExpression deletes the expression field at path.
func (m *Model) RemoveExpression(path string) error { return m.remove(path, ast.ExpressionField) }

// RemoveUserFunction deletes the function or decision-table field at path.
func (m *Model) RemoveUserFunction(path string) error { return m.remove(path, ast.FunctionField) }

// RemoveUserType deletes the type definition at path.
func (m *Model) RemoveUserType(path string) error { return m.remove(path, ast.DefinitionField) }

func (m *Model) remove(path string, want ast.FieldKind) error {
	obj, name, err := m.resolveExisting(path)
	if err != nil {
		return err
	}
	if kind, _ := obj.Get(name); kind != want {
		return fmt.Errorf("%q is not a %s", path, fieldKindName(want))
	}
	obj.RemoveField(name)
	return nil
}

// GetExpression returns the stored expression at path without
// linking it (spec §4.G: "return the stored entry without linking").
func (m *Model) GetExpression(path string) (ast.Expr, error) {
	obj, name, err := m.resolveExisting(path)
	if err != nil {
		return nil, err
	}
	kind, v := obj.Get(name)
	if kind != ast.ExpressionField {
		return nil, fmt.Errorf("%q is not an expression", path)
	}
	return v.(*ast.ExpressionEntry).Expr, nil
}

// GetUserFunction returns the stored function or decision-table
// definition at path without linking it.
func (m *Model) GetUserFunction(path string) (ast.Callable, error) {
	obj, name, err := m.resolveExisting(path)
	if err != nil {
		return nil, err
	}
	kind, v := obj.Get(name)
	if kind != ast.FunctionField {
		return nil, fmt.Errorf("%q is not a function", path)
	}
	return v.(*ast.MethodEntry).Def, nil
}

// GetUserType returns the stored type definition at path without
// linking it.
func (m *Model) GetUserType(path string) (*ast.UserTypeBody, error) {
	obj, name, err := m.resolveExisting(path)
	if err != nil {
		return nil, err
	}
	kind, v := obj.Get(name)
	if kind != ast.DefinitionField {
		return nil, fmt.Errorf("%q is not a type definition", path)
	}
	return v.(*ast.UserTypeBody), nil
}

// ToRuntime links the builder's own tree and returns a Runtime bound
// to that tree and a root execution context (spec §4.G). The tree is
// not copied: the Model remains usable afterwards, and later edits to
// it are visible through the returned Runtime. ToRuntimeSnapshot links
// an independent copy instead.
func (m *Model) ToRuntime() (*Runtime, error) {
	if err := link.Link(m.root); err != nil {
		return nil, err
	}
	return &Runtime{schema: m.root, ec: ast.NewExecutionContext(m.root)}, nil
}

// ToRuntimeSnapshot clones the current builder, links the clone, and
// returns a Runtime bound to it, leaving this Model open for further
// edits unaffected by anything the Runtime does (spec §4.G).
func (m *Model) ToRuntimeSnapshot() (*Runtime, error) {
	clone := m.root.Clone()
	if err := link.Link(clone); err != nil {
		return nil, err
	}
	return &Runtime{schema: clone, ec: ast.NewExecutionContext(clone)}, nil
}

// splitPath trims and validates a dotted path, requiring every segment
// to be non-empty after trimming (spec §4.G: "every segment must be
// non-empty after trimming").
func splitPath(path string) ([]string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("path must not be empty")
	}
	segs := strings.Split(trimmed, ".")
	for i, s := range segs {
		segs[i] = strings.TrimSpace(s)
		if segs[i] == "" {
			return nil, fmt.Errorf("path %q has an empty segment", path)
		}
	}
	return segs, nil
}

// resolveContainer walks path from the root, optionally creating
// missing intermediate child objects. An empty path resolves to the
// root itself.
func (m *Model) resolveContainer(path string, create bool) (*ast.ContextObject, error) {
	if strings.TrimSpace(path) == "" {
		return m.root, nil
	}
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return m.walk(segs, create)
}

func (m *Model) walk(segs []string, create bool) (*ast.ContextObject, error) {
	cur := m.root
	for _, seg := range segs {
		kind, v := cur.Get(seg)
		switch kind {
		case ast.ChildField:
			cur = v.(*ast.ContextObject)
		case ast.NotFoundField:
			if !create {
				return nil, fmt.Errorf("path segment %q not found", seg)
			}
			child := ast.NewContextObject()
			if err := cur.AddChildObject(seg, child); err != nil {
				return nil, err
			}
			cur = child
		default:
			return nil, fmt.Errorf("path segment %q is not a nested object", seg)
		}
	}
	return cur, nil
}

// splitForWrite splits path into its parent container (created on
// demand) and final segment.
func (m *Model) splitForWrite(path string) (*ast.ContextObject, string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, "", err
	}
	parent, err := m.walk(segs[:len(segs)-1], true)
	if err != nil {
		return nil, "", err
	}
	return parent, segs[len(segs)-1], nil
}

// resolveExisting splits path into its parent container (never
// created) and final segment, for read and remove operations.
func (m *Model) resolveExisting(path string) (*ast.ContextObject, string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, "", err
	}
	parent, err := m.walk(segs[:len(segs)-1], false)
	if err != nil {
		return nil, "", err
	}
	return parent, segs[len(segs)-1], nil
}

// parseSingleDecl parses def as a one-declaration model and extracts
// the single field it produced, verifying it has the expected kind.
// Used by SetUserFunction/SetUserType so they share the ordinary model
// grammar (func/type declarations) instead of a bespoke parser entry.
func parseSingleDecl(def string, want ast.FieldKind) (string, interface{}, error) {
	parsed, errs := parser.ParseModel([]byte(def))
	if len(errs) > 0 {
		return "", nil, errs
	}
	if want == ast.DefinitionField {
		// Type definitions live outside AllFieldNames.
		types := parsed.Types()
		if len(types) != 1 || len(parsed.AllFieldNames) != 0 {
			return "", nil, fmt.Errorf("expected exactly one type declaration, got %d declarations", len(types)+len(parsed.AllFieldNames))
		}
		for name, body := range types {
			return name, body, nil
		}
	}
	if len(parsed.AllFieldNames) != 1 {
		return "", nil, fmt.Errorf("expected exactly one declaration, got %d", len(parsed.AllFieldNames))
	}
	name := parsed.AllFieldNames[0]
	kind, v := parsed.Get(name)
	if kind != want {
		return "", nil, fmt.Errorf("%q is not a %s declaration", name, fieldKindName(want))
	}
	return name, v, nil
}

func fieldKindName(k ast.FieldKind) string {
	switch k {
	case ast.ExpressionField:
		return "expression"
	case ast.FunctionField:
		return "function"
	case ast.ChildField:
		return "child object"
	case ast.DefinitionField:
		return "type"
	}
	return "field"
}

// joinErrors flattens the duplicate-name errors ContextObject.MergeFrom
// reports into an errors.List, so a host sees the same error shape
// AppendSource's own parse path produces.
func joinErrors(errs []error) errors.List {
	var list errors.List
	for _, e := range errs {
		list = list.Append(errors.New(errors.DuplicateName, token.NoPos, "%s", e))
	}
	return list
}
