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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rimvydasb/edgerules-sub001/value"
)

func TestRangeLenAndString(t *testing.T) {
	r := value.NewRange(1, 5)
	assert.Equal(t, int64(4), r.Len())
	assert.Equal(t, "1..5", r.String())
}

func TestRangeEmptyWhenEndBeforeStart(t *testing.T) {
	r := value.NewRange(5, 1)
	assert.Equal(t, int64(0), r.Len())
}

func TestArrayString(t *testing.T) {
	a := value.NewArray(value.NumberT, []value.Value{value.NewInt(1), value.NewInt(2)})
	assert.Equal(t, "[1, 2]", a.String())
	assert.Equal(t, value.ListOf(value.NumberT), a.Type())
}

func TestEmptyUntypedArrayType(t *testing.T) {
	a := value.NewEmptyUntypedArray()
	assert.True(t, a.Type().AssignableEmptyList())
}

func TestArrayAtOutOfRangeReturnsMissing(t *testing.T) {
	a := value.NewArray(value.NumberT, []value.Value{value.NewInt(1)})
	v := a.At(5)
	n, ok := v.(value.Number)
	assert.True(t, ok)
	assert.True(t, n.IsSV())

	neg := a.At(-1)
	n2, ok := neg.(value.Number)
	assert.True(t, ok)
	assert.True(t, n2.IsSV())
}

func TestArrayAtInRange(t *testing.T) {
	a := value.NewArray(value.NumberT, []value.Value{value.NewInt(7), value.NewInt(8)})
	assert.Equal(t, 0, a.At(1).(value.Number).Cmp(value.NewInt(8)))
}

func TestMissingOfString(t *testing.T) {
	v := value.MissingOf(value.StringT, "why")
	s, ok := v.(value.Str)
	assert.True(t, ok)
	kind, reason := s.SV()
	assert.Equal(t, value.Missing, kind)
	assert.Equal(t, "why", reason)
}
