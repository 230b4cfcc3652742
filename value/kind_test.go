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

func TestTypeEqualPrimitives(t *testing.T) {
	assert.True(t, value.NumberT.Equal(value.NumberT))
	assert.False(t, value.NumberT.Equal(value.StringT))
}

func TestTypeEqualList(t *testing.T) {
	a := value.ListOf(value.NumberT)
	b := value.ListOf(value.NumberT)
	c := value.ListOf(value.StringT)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestListOfNoneEqualsOnlyItself(t *testing.T) {
	none1 := value.ListOfNone()
	none2 := value.ListOfNone()
	assert.True(t, none1.Equal(none2))
	assert.False(t, none1.Equal(value.ListOf(value.NumberT)))
	assert.True(t, none1.AssignableEmptyList())
	assert.False(t, value.ListOf(value.NumberT).AssignableEmptyList())
}

func TestTypeEqualObjectByIdentity(t *testing.T) {
	s1, s2 := new(int), new(int)
	a := value.ObjectOf(s1, "A")
	b := value.ObjectOf(s1, "A")
	c := value.ObjectOf(s2, "A")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "number", value.NumberT.String())
	assert.Equal(t, "number[]", value.ListOf(value.NumberT).String())
	assert.Equal(t, "list(none)", value.ListOfNone().String())
	assert.Equal(t, "Applicant", value.ObjectOf(nil, "Applicant").String())
	assert.Equal(t, "object", value.ObjectOf(nil, "").String())
}

func TestSVKindString(t *testing.T) {
	assert.Equal(t, "missing", value.Missing.String())
	assert.Equal(t, "n/a", value.NotApplicable.String())
	assert.Equal(t, "", value.NotSV.String())
}
