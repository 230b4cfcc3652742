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

func TestLookupKeywords(t *testing.T) {
	cases := map[string]token.Kind{
		"true":   token.TRUE,
		"false":  token.FALSE,
		"and":    token.AND,
		"or":     token.OR,
		"xor":    token.XOR,
		"not":    token.NOT,
		"as":     token.AS,
		"if":     token.IF,
		"then":   token.THEN,
		"else":   token.ELSE,
		"for":    token.FOR,
		"in":     token.IN,
		"return": token.RETURN,
		"func":   token.FUNC,
		"type":   token.TYPE,
	}
	for ident, want := range cases {
		assert.Equal(t, want, token.Lookup(ident), ident)
	}
}

func TestLookupNonKeywordIsIdent(t *testing.T) {
	assert.Equal(t, token.IDENT, token.Lookup("amount"))
	assert.Equal(t, token.IDENT, token.Lookup("Return")) // case-sensitive
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "func", token.FUNC.String())
	assert.Equal(t, "+", token.ADD.String())
	assert.Equal(t, "UNKNOWN", token.Kind(9999).String())
}

func TestPriorityOrdering(t *testing.T) {
	assert.Less(t, token.OR.Priority(), token.AND.Priority())
	assert.Less(t, token.AND.Priority(), token.EQL.Priority())
	assert.Less(t, token.ADD.Priority(), token.MUL.Priority())
	assert.Less(t, token.MUL.Priority(), token.POW.Priority())
	assert.Less(t, token.POW.Priority(), token.DOT.Priority())
}

func TestPriorityZeroForNonOperators(t *testing.T) {
	assert.Equal(t, 0, token.IDENT.Priority())
	assert.Equal(t, 0, token.EOF.Priority())
}
