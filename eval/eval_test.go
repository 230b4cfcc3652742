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

package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/eval"
	"github.com/rimvydasb/edgerules-sub001/link"
	"github.com/rimvydasb/edgerules-sub001/parser"
	"github.com/rimvydasb/edgerules-sub001/value"
)

func linkedModel(t *testing.T, src string) *ast.ExecutionContext {
	t.Helper()
	root, errs := parser.ParseModel([]byte(src))
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	require.NoError(t, link.Link(root))
	return ast.NewExecutionContext(root)
}

func TestEvalFieldArithmetic(t *testing.T) {
	ec := linkedModel(t, "a: 1 + 2 * 3;")
	v, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	n := v.(value.Number)
	assert.Equal(t, 0, n.Cmp(value.NewInt(7)))
}

func TestEvalFieldCachesResult(t *testing.T) {
	ec := linkedModel(t, "a: 1 + 1;")
	v1, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	v2, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestEvalFieldCyclicReferenceReplaysCachedError(t *testing.T) {
	// link.Link rejects this model, so evaluate the unlinked tree to
	// exercise the evaluator's own cycle guard.
	root, errs := parser.ParseModel([]byte("a: b; b: a;"))
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	ec := ast.NewExecutionContext(root)
	_, err := eval.EvalField(ec, "a")
	require.Error(t, err)
	kind, ok := errors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.CyclicReference, kind)

	_, err = eval.EvalField(ec, "a")
	require.Error(t, err)
	kind, ok = errors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.CyclicReference, kind)
}

func TestEvalAllStopsAtFirstError(t *testing.T) {
	ec := linkedModel(t, `
a: 1;
b: 1 / 0;
c: 3;
`)
	err := eval.EvalAll(ec)
	assert.Error(t, err)
}

func TestEvalChildObjectYieldsReference(t *testing.T) {
	ec := linkedModel(t, `
customer: {
  age: 30;
};
out: customer.age;
`)
	v, err := eval.EvalField(ec, "out")
	require.NoError(t, err)
	n := v.(value.Number)
	assert.Equal(t, 0, n.Cmp(value.NewInt(30)))
}

func TestEvalFunctionReturningObjectThenSelectField(t *testing.T) {
	ec := linkedModel(t, `
func doubled(input: <Number>): { value: input * 2 };
result: doubled(7);
out: result.value;
`)
	v, err := eval.EvalField(ec, "out")
	require.NoError(t, err)
	n := v.(value.Number)
	assert.Equal(t, 0, n.Cmp(value.NewInt(14)))
}

func TestEvalFunctionBareExpressionReturn(t *testing.T) {
	ec := linkedModel(t, `
func tripled(input: <Number>): input * 3;
out: tripled(5);
`)
	v, err := eval.EvalField(ec, "out")
	require.NoError(t, err)
	n := v.(value.Number)
	assert.Equal(t, 0, n.Cmp(value.NewInt(15)))
}

func TestEvalIfThenElse(t *testing.T) {
	ec := linkedModel(t, `a: if 1 > 0 then "yes" else "no";`)
	v, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	assert.Equal(t, "yes", v.(value.Str).S)
}

func TestEvalFilterSelectsMatchingElements(t *testing.T) {
	ec := linkedModel(t, `
xs: [1, 2, 3, 4, 5];
evens: xs[it > 2];
`)
	v, err := eval.EvalField(ec, "evens")
	require.NoError(t, err)
	arr := v.(value.Array)
	require.Len(t, arr.Items, 3)
}

func TestEvalIndexOutOfRangeReturnsMissing(t *testing.T) {
	ec := linkedModel(t, `
xs: [1, 2];
a: xs[5];
`)
	v, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	sv, reason := v.SV()
	assert.Equal(t, value.Missing, sv)
	assert.NotEmpty(t, reason)
}

func TestEvalForReturnProducesMappedList(t *testing.T) {
	ec := linkedModel(t, `
xs: [1, 2, 3];
doubled: for x in xs return x * 2;
`)
	v, err := eval.EvalField(ec, "doubled")
	require.NoError(t, err)
	arr := v.(value.Array)
	require.Len(t, arr.Items, 3)
	assert.Equal(t, 0, arr.Items[2].(value.Number).Cmp(value.NewInt(6)))
}

func TestEvalRangeProducesRangeValue(t *testing.T) {
	ec := linkedModel(t, `a: 1..4;`)
	v, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	r := v.(value.Range)
	assert.Equal(t, int64(1), r.Start)
	assert.Equal(t, int64(4), r.End)
}

func TestEvalDivisionByZeroReportsRuntimeError(t *testing.T) {
	ec := linkedModel(t, `a: 1 / 0;`)
	_, err := eval.EvalField(ec, "a")
	require.Error(t, err)
	kind, ok := errors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.DivisionByZero, kind)
}

func TestEvalFilterWithEllipsisContextVariable(t *testing.T) {
	ec := linkedModel(t, `value: [1, 2, 3][... > 1];`)
	v, err := eval.EvalField(ec, "value")
	require.NoError(t, err)
	arr := v.(value.Array)
	require.Len(t, arr.Items, 2)
	assert.Equal(t, 0, arr.Items[0].(value.Number).Cmp(value.NewInt(2)))
	assert.Equal(t, 0, arr.Items[1].(value.Number).Cmp(value.NewInt(3)))
}

func TestEvalTemporalConstructorFunctions(t *testing.T) {
	ec := linkedModel(t, `value: date('2020-01-31') + period('P1M');`)
	v, err := eval.EvalField(ec, "value")
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29", v.(value.Date).String())
}

func TestEvalDateTimeConstructorSubtractionYieldsDuration(t *testing.T) {
	ec := linkedModel(t, `value: datetime('2020-01-02T00:00:00') - datetime('2020-01-01T08:00:00');`)
	v, err := eval.EvalField(ec, "value")
	require.NoError(t, err)
	assert.Equal(t, "PT16H", v.(value.Duration).String())
}

func TestEvalTemporalAccessorOnDateSelect(t *testing.T) {
	ec := linkedModel(t, `a: ("2024-03-15" as Date).month;`)
	v, err := eval.EvalField(ec, "a")
	require.NoError(t, err)
	n := v.(value.Number)
	assert.Equal(t, 0, n.Cmp(value.NewInt(3)))
}

func TestCallFunctionEntryPointFindsFunctionAcrossScope(t *testing.T) {
	ec := linkedModel(t, `func tripled(input: <Number>): input * 3;`)
	v, err := eval.CallFunction(ec, "tripled", []value.Value{value.NewInt(4)})
	require.NoError(t, err)
	n := v.(value.Number)
	assert.Equal(t, 0, n.Cmp(value.NewInt(12)))
}

func TestCallFunctionUnknownNameIsFunctionNotFound(t *testing.T) {
	ec := linkedModel(t, `a: 1;`)
	_, err := eval.CallFunction(ec, "missing", nil)
	require.Error(t, err)
	kind, ok := errors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.FunctionNotFound, kind)
}
