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
	"github.com/stretchr/testify/require"

	"github.com/rimvydasb/edgerules-sub001/value"
)

func TestEqualPrimitives(t *testing.T) {
	assert.True(t, value.Equal(value.NewInt(1), value.NewInt(1)))
	assert.False(t, value.Equal(value.NewInt(1), value.NewInt(2)))
	assert.True(t, value.Equal(value.NewStr("a"), value.NewStr("a")))
	assert.True(t, value.Equal(value.Bool{B: true}, value.Bool{B: true}))
}

func TestEqualArrays(t *testing.T) {
	a := value.NewArray(value.NumberT, []value.Value{value.NewInt(1), value.NewInt(2)})
	b := value.NewArray(value.NumberT, []value.Value{value.NewInt(1), value.NewInt(2)})
	c := value.NewArray(value.NumberT, []value.Value{value.NewInt(1), value.NewInt(3)})
	assert.True(t, value.Equal(a, b))
	assert.False(t, value.Equal(a, c))
}

func TestEqualSVSentinels(t *testing.T) {
	a := value.NewMissingNumber("x")
	b := value.NewMissingNumber("x")
	c := value.NewMissingNumber("y")
	assert.True(t, value.Equal(a, b))
	assert.False(t, value.Equal(a, c))
	assert.False(t, value.Equal(a, value.NewInt(0)))
}

func TestEqualMismatchedKinds(t *testing.T) {
	assert.False(t, value.Equal(value.NewInt(1), value.NewStr("1")))
}

func TestCompareNumbers(t *testing.T) {
	c, err := value.Compare(value.NewInt(1), value.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareDates(t *testing.T) {
	a := value.NewDate(2024, 1, 1)
	b := value.NewDate(2024, 6, 1)
	c, err := value.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareIncompatibleKinds(t *testing.T) {
	_, err := value.Compare(value.NewInt(1), value.NewStr("x"))
	assert.Error(t, err)
}

func TestCompareSVIsError(t *testing.T) {
	_, err := value.Compare(value.NewMissingNumber(""), value.NewInt(1))
	assert.Error(t, err)
}
