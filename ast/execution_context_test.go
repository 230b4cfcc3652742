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
	"github.com/rimvydasb/edgerules-sub001/value"
)

func TestCachedReflectsSetCached(t *testing.T) {
	schema := ast.NewContextObject()
	ec := ast.NewExecutionContext(schema)

	_, _, ok := ec.Cached("a")
	assert.False(t, ok)

	ec.SetCached("a", value.NewInt(5), nil)
	v, err, ok := ec.Cached("a")
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, 0, v.(value.Number).Cmp(value.NewInt(5)))
}

func TestBindStoresValueWithoutError(t *testing.T) {
	schema := ast.NewContextObject()
	ec := ast.NewExecutionContext(schema)
	ec.Bind("x", value.NewInt(7))

	v, err, ok := ec.Cached("x")
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, 0, v.(value.Number).Cmp(value.NewInt(7)))
}

func TestChildScopeIsMemoized(t *testing.T) {
	parentSchema := ast.NewContextObject()
	childSchema := ast.NewContextObject()
	parent := ast.NewExecutionContext(parentSchema)

	c1 := parent.ChildScope("nested", childSchema)
	c2 := parent.ChildScope("nested", childSchema)
	assert.Same(t, c1, c2)
	assert.Same(t, parent, c1.Node.Parent)
	assert.Equal(t, "nested", c1.Node.FieldName)
}

func TestEphemeralExecutionContextHasUniqueSchemaName(t *testing.T) {
	schema := ast.NewContextObject()
	parent := ast.NewExecutionContext(ast.NewContextObject())
	a := ast.NewEphemeralExecutionContext(schema, parent)
	b := ast.NewEphemeralExecutionContext(schema, parent)

	assert.NotEqual(t, a.SchemaName(), b.SchemaName())
}

func TestFieldNamesMirrorsSchema(t *testing.T) {
	schema := ast.NewContextObject()
	require.NoError(t, schema.AddExpression("a", nil))
	require.NoError(t, schema.AddExpression("b", nil))
	ec := ast.NewExecutionContext(schema)

	assert.Equal(t, []string{"a", "b"}, ec.FieldNames())
}

func TestExecNodeAcquireReleaseLock(t *testing.T) {
	var n ast.ExecNode
	assert.True(t, n.AcquireLock("f"))
	assert.False(t, n.AcquireLock("f"))
	n.ReleaseLock("f")
	assert.True(t, n.AcquireLock("f"))
}

func TestRootClimbsToTopLevelExecutionContext(t *testing.T) {
	rootEc := ast.NewExecutionContext(ast.NewContextObject())
	child := ast.NewEphemeralExecutionContext(ast.NewContextObject(), rootEc)

	assert.Same(t, rootEc, child.Root())
	assert.Same(t, rootEc, rootEc.Root())
}
