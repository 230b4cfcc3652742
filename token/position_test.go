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

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rimvydasb/edgerules-sub001/token"
)

func TestNoPosIsInvalid(t *testing.T) {
	assert.False(t, token.NoPos.IsValid())
	assert.Equal(t, "-", token.NoPos.String())
}

func TestPosIsValidWhenLinePositive(t *testing.T) {
	p := token.Pos{Offset: 5, Line: 1, Column: 6}
	assert.True(t, p.IsValid())
	assert.Equal(t, "1:6", p.String())
}

func TestPosAdd(t *testing.T) {
	p := token.Pos{Offset: 3, Line: 2, Column: 4}
	got := p.Add(5)
	assert.Equal(t, token.Pos{Offset: 8, Line: 2, Column: 9}, got)
}
