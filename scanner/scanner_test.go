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

package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimvydasb/edgerules-sub001/scanner"
	"github.com/rimvydasb/edgerules-sub001/token"
)

func scanAll(t *testing.T, src string) []scanner.Token {
	t.Helper()
	var errs []string
	var s scanner.Scanner
	s.Init([]byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	var toks []scanner.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	require.Empty(t, errs, "unexpected scan errors: %v", errs)
	return toks
}

func kinds(toks []scanner.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := scanAll(t, "amount and true")
	assert.Equal(t, []token.Kind{token.IDENT, token.AND, token.TRUE, token.EOF}, kinds(toks))
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "42 3.14")
	require.Len(t, toks, 3)
	assert.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Lit)
	assert.Equal(t, token.FLOAT, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Lit)
}

func TestScanRangeOperatorNotDecimalPoint(t *testing.T) {
	toks := scanAll(t, "1..5")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, "1", toks[0].Lit)
	assert.Equal(t, token.DOTDOT, toks[1].Kind)
	assert.Equal(t, token.INT, toks[2].Kind)
	assert.Equal(t, "5", toks[2].Lit)
}

func TestScanEllipsisBothSpellings(t *testing.T) {
	toks := scanAll(t, "xs[... > 1]")
	kindsOnly := kinds(toks)
	require.Contains(t, kindsOnly, token.ELLIPSIS)

	toks = scanAll(t, "xs[… > 1]")
	require.Contains(t, kinds(toks), token.ELLIPSIS)
}

func TestScanStringLiteralBothQuoteStyles(t *testing.T) {
	toks := scanAll(t, `"hello" 'world'`)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Lit)
	assert.Equal(t, token.STRING, toks[1].Kind)
	assert.Equal(t, "world", toks[1].Lit)
}

func TestScanOperators(t *testing.T) {
	toks := scanAll(t, "<= >= <> <")
	assert.Equal(t, []token.Kind{token.LEQ, token.GEQ, token.NEQ, token.LT, token.EOF}, kinds(toks))
}

func TestScanLineCommentSkipped(t *testing.T) {
	toks := scanAll(t, "a // a comment\nb")
	var filtered []token.Kind
	for _, k := range kinds(toks) {
		if k != token.SEMI {
			filtered = append(filtered, k)
		}
	}
	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.EOF}, filtered)
}

func TestScanAutomaticSemicolonInsertionAfterNewline(t *testing.T) {
	toks := scanAll(t, "a\nb")
	assert.Equal(t, []token.Kind{token.IDENT, token.SEMI, token.IDENT, token.EOF}, kinds(toks))
}

func TestScanNoSemicolonInsertedAfterOperator(t *testing.T) {
	toks := scanAll(t, "a +\nb")
	assert.Equal(t, []token.Kind{token.IDENT, token.ADD, token.IDENT, token.EOF}, kinds(toks))
}

func TestScanIllegalCharacterReportsError(t *testing.T) {
	var errs []string
	var s scanner.Scanner
	s.Init([]byte("a $ b"), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	for {
		tok := s.Scan()
		if tok.Kind == token.EOF {
			break
		}
	}
	assert.NotEmpty(t, errs)
}

func TestScanPositionsTrackLineAndColumn(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte("a\nbb"), func(token.Pos, string) {})
	first := s.Scan() // "a"
	assert.Equal(t, 1, first.Pos.Line)
	assert.Equal(t, 1, first.Pos.Column)

	_ = s.Scan() // inserted SEMI
	third := s.Scan()
	assert.Equal(t, token.IDENT, third.Kind)
	assert.Equal(t, 2, third.Pos.Line)
}
