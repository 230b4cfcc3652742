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

func TestNumberArithmetic(t *testing.T) {
	sum, err := value.NewInt(2).Add(value.NewInt(3))
	require.Nil(t, err)
	assert.Equal(t, 0, sum.Cmp(value.NewInt(5)))

	diff, err := value.NewInt(5).Sub(value.NewInt(3))
	require.Nil(t, err)
	assert.Equal(t, 0, diff.Cmp(value.NewInt(2)))

	prod, err := value.NewInt(4).Mul(value.NewInt(3))
	require.Nil(t, err)
	assert.Equal(t, 0, prod.Cmp(value.NewInt(12)))
}

func TestNumberIntDivisionTruncates(t *testing.T) {
	q, err := value.NewInt(7).Div(value.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "3", q.String())
	assert.False(t, q.IsReal)
}

func TestNumberRealDivisionPromotes(t *testing.T) {
	q, err := value.NewReal(7).Div(value.NewInt(2))
	require.NoError(t, err)
	assert.True(t, q.IsReal)
}

func TestNumberDivByZero(t *testing.T) {
	_, err := value.NewInt(1).Div(value.NewInt(0))
	require.Error(t, err)
	assert.True(t, value.IsDivByZero(err))
}

func TestNumberModByZero(t *testing.T) {
	_, err := value.NewInt(1).Mod(value.NewInt(0))
	require.Error(t, err)
	assert.True(t, value.IsDivByZero(err))
}

func TestNumberSVPropagates(t *testing.T) {
	m := value.NewMissingNumber("no data")
	sum, err := m.Add(value.NewInt(1))
	require.Nil(t, err)
	assert.True(t, sum.IsSV())
	sv, reason := sum.SV()
	assert.Equal(t, value.Missing, sv)
	assert.Equal(t, "no data", reason)
}

func TestNumberNeg(t *testing.T) {
	assert.Equal(t, 0, value.NewInt(-5).Cmp(value.NewInt(5).Neg()))
}

func TestNumberCmp(t *testing.T) {
	assert.Equal(t, 0, value.NewInt(3).Cmp(value.NewInt(3)))
	assert.Equal(t, -1, value.NewInt(2).Cmp(value.NewInt(3)))
	assert.Equal(t, 1, value.NewInt(3).Cmp(value.NewInt(2)))
}

func TestNumberStringFormatting(t *testing.T) {
	assert.Equal(t, "5", value.NewInt(5).String())
	assert.Equal(t, "5.0", value.NewReal(5).String())
	assert.Equal(t, "2.5", value.NewReal(2.5).String())
}

func TestParseNumberLiteral(t *testing.T) {
	n, err := value.ParseNumberLiteral("42")
	require.NoError(t, err)
	assert.False(t, n.IsReal)
	assert.Equal(t, int64(42), n.Int64())

	f, err := value.ParseNumberLiteral("3.14")
	require.NoError(t, err)
	assert.True(t, f.IsReal)

	_, err = value.ParseNumberLiteral("not-a-number")
	assert.Error(t, err)
}
