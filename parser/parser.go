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

// Package parser turns a token stream into the ast package's data
// types (spec §4.C, component C). It is a precedence-climbing
// recursive-descent parser rather than a literal shunting-yard
// machine: this is the same transliteration the teacher itself made
// of the underlying grammar (cue/parser.parseBinaryExpr climbs
// token.Precedence() instead of running an explicit operator stack),
// and token.Kind.Priority() already gives it the precedence table it
// needs (spec §4.C).
package parser

import (
	"fmt"

	"github.com/rimvydasb/edgerules-sub001/ast"
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/scanner"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// Parser holds the mutable state of a single parse (spec §1: no
// concurrent reuse of one Parser across sources).
type Parser struct {
	sc   scanner.Scanner
	tok  scanner.Token
	errs errors.List
}

// ParseModel parses src as a top-level EdgeRules model: a sequence of
// field declarations, function definitions and type definitions, either
// bare or enclosed in a single `{ ... }` object literal (spec §4.C,
// §6). It always returns a ContextObject, even on error, so a
// caller can inspect however much was recovered.
func ParseModel(src []byte) (*ast.ContextObject, errors.List) {
	p := &Parser{}
	p.sc.Init(src, func(pos token.Pos, msg string) {
		p.errs = p.errs.Append(errors.New(errors.ParseError, pos, "%s", msg))
	})
	p.next()

	root := ast.NewRootContextObject()
	p.skipSemis()
	if p.tok.Kind == token.LBRACE {
		p.next()
		p.parseFieldList(root, token.RBRACE)
		p.expect(token.RBRACE)
		p.skipSemis()
		if p.tok.Kind != token.EOF {
			p.errorf("unexpected trailing token %s %q after model", p.tok.Kind, p.tok.Lit)
		}
	} else {
		p.parseFieldList(root, token.EOF)
	}
	return root, p.errs
}

// ParseExpr parses src as a single standalone expression (spec §4.G
// set_expression/set_invocation/evaluate_expression_str), with no
// surrounding field declaration. Unlike ParseModel it returns nil on
// error rather than a partial node, since there is no containing
// object to attach a partial expression to.
func ParseExpr(src []byte) (ast.Expr, errors.List) {
	p := &Parser{}
	p.sc.Init(src, func(pos token.Pos, msg string) {
		p.errs = p.errs.Append(errors.New(errors.ParseError, pos, "%s", msg))
	})
	p.next()

	e := p.parseExpr(0)
	p.skipSemis()
	if p.tok.Kind != token.EOF {
		p.errorf("unexpected trailing token %s %q after expression", p.tok.Kind, p.tok.Lit)
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return e, nil
}

func (p *Parser) next() {
	p.tok = p.sc.Scan()
	for p.tok.Kind == token.SEMI && p.tok.Lit == "\n" {
		// Treat a lone inserted semicolon like any explicit one; the
		// field-list parser collapses consecutive separators.
		break
	}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = p.errs.Append(errors.New(errors.ParseError, p.tok.Pos, format, args...))
}

func (p *Parser) expect(k token.Kind) token.Pos {
	pos := p.tok.Pos
	if p.tok.Kind != k {
		p.errorf("expected %s, got %s %q", k, p.tok.Kind, p.tok.Lit)
	} else {
		p.next()
	}
	return pos
}

func (p *Parser) skipSemis() {
	for p.tok.Kind == token.SEMI {
		p.next()
	}
}

// parseFieldList parses field/func/type declarations separated by
// SEMI until it reaches end, which is either token.EOF (model root) or
// token.RBRACE (nested object literal, spec §6 `{ ... }`).
func (p *Parser) parseFieldList(obj *ast.ContextObject, end token.Kind) {
	p.skipSemis()
	for p.tok.Kind != end && p.tok.Kind != token.EOF {
		p.parseFieldDecl(obj)
		if p.tok.Kind != end {
			if p.tok.Kind != token.SEMI {
				p.errorf("expected ';' or %s after declaration, got %s", end, p.tok.Kind)
				p.next()
				continue
			}
			p.skipSemis()
		}
	}
}

// parseFieldDecl parses one of:
//
//	name: expr
//	name: { ... }
//	func name(params): expr
//	func name(params): { ... }
//	type name: TypeExpr
//	type name: { ... }
func (p *Parser) parseFieldDecl(obj *ast.ContextObject) {
	switch p.tok.Kind {
	case token.FUNC:
		p.parseFuncDecl(obj)
	case token.TYPE:
		p.parseTypeDecl(obj)
	case token.IDENT:
		p.parseExprOrChildDecl(obj)
	case token.RETURN:
		// `return` is reserved for for/return loops but is also the
		// conventional field name for a function's result expression
		// (spec §6), so a function body may declare it as a field.
		p.tok.Kind = token.IDENT
		p.parseExprOrChildDecl(obj)
	default:
		p.errorf("unexpected token %s %q in field list", p.tok.Kind, p.tok.Lit)
		p.next()
	}
}

func (p *Parser) parseExprOrChildDecl(obj *ast.ContextObject) {
	name := p.tok.Lit
	namePos := p.tok.Pos
	p.next()
	p.expect(token.COLON)

	if p.tok.Kind == token.LBRACE {
		child := ast.NewContextObject()
		p.next()
		p.parseFieldList(child, token.RBRACE)
		p.expect(token.RBRACE)
		if err := obj.AddChildObject(name, child); err != nil {
			p.errorf("%s", err)
		}
		return
	}

	e := p.parseExpr(0)
	if err := obj.AddExpression(name, e); err != nil {
		p.errs = p.errs.Append(errors.New(errors.DuplicateName, namePos, "duplicate name %q", name))
	}
}

// parseFuncDecl parses `func name(params)[: TypeExpr]: body`.
func (p *Parser) parseFuncDecl(obj *ast.ContextObject) {
	p.next() // consume 'func'
	name := p.tok.Lit
	p.expect(token.IDENT)

	p.expect(token.LPAREN)
	var params []ast.FormalParameter
	for p.tok.Kind != token.RPAREN && p.tok.Kind != token.EOF {
		params = append(params, p.parseParam())
		if p.tok.Kind == token.COMMA {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)

	var retType ast.TypeExpr
	if p.tok.Kind == token.COLON {
		// Lookahead: a bare type name/list-type followed directly by
		// another COLON is the optional explicit return-type
		// annotation (spec §6, Open Question 2); otherwise this COLON
		// introduces the body directly.
		save := *p
		p.next()
		if t, ok := p.tryParseTypeExpr(); ok && p.tok.Kind == token.COLON {
			retType = t
		} else {
			*p = save
		}
	}
	p.expect(token.COLON)

	body := ast.NewContextObject()
	returnsObject := false
	if p.tok.Kind == token.LBRACE {
		p.next()
		p.parseFieldList(body, token.RBRACE)
		p.expect(token.RBRACE)
		// A braced body that declares its own `return` field resolves
		// to that field's value, like a bare-expression body.
		kind, _ := body.Get("return")
		returnsObject = kind != ast.ExpressionField
	} else {
		e := p.parseExpr(0)
		_ = body.AddExpression("return", e)
	}
	body.Parameters = params

	def := &ast.FuncDef{Name: name, Params: params, Body: body, ReturnType: retType, ReturnsObject: returnsObject}
	if err := obj.AddFunction(def); err != nil {
		p.errorf("%s", err)
	}
}

func (p *Parser) parseParam() ast.FormalParameter {
	name := p.tok.Lit
	nameP := p.tok.Pos
	p.expect(token.IDENT)
	p.expect(token.COLON)
	ph := p.parseTypePlaceholder()
	_ = nameP
	return ast.FormalParameter{Name: name, Placeholder: ph}
}

// parseTypePlaceholder parses `<TypeExpr>` or `<TypeExpr, default>`.
func (p *Parser) parseTypePlaceholder() *ast.TypePlaceholder {
	pos := p.tok.Pos
	p.expect(token.LT)
	t := p.parseTypeExpr()
	var def ast.Expr
	if p.tok.Kind == token.COMMA {
		p.next()
		def = p.parseExpr(0)
	}
	p.expect(token.GT)
	return ast.NewTypePlaceholder(pos, t, def)
}

func (p *Parser) parseTypeDecl(obj *ast.ContextObject) {
	p.next() // 'type'
	name := p.tok.Lit
	p.expect(token.IDENT)
	p.expect(token.COLON)

	var body ast.UserTypeBody
	if p.tok.Kind == token.LBRACE {
		p.next()
		child := ast.NewContextObject()
		p.parseFieldList(child, token.RBRACE)
		p.expect(token.RBRACE)
		body.Object = child
	} else {
		body.AliasOf = p.parseTypeExpr()
		if p.tok.Kind == token.EQL {
			p.next()
			body.Default = p.parseExpr(0)
		}
	}
	if err := obj.SetUserTypeDefinition(name, &body); err != nil {
		p.errorf("%s", err)
	}
}

// parseTypeExpr parses a bare type name or `T[]` list type (spec §4.B/§4.C).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	t, ok := p.tryParseTypeExpr()
	if !ok {
		p.errorf("expected type name, got %s %q", p.tok.Kind, p.tok.Lit)
		return ast.NamedType{Name: "Unknown"}
	}
	return t
}

func (p *Parser) tryParseTypeExpr() (ast.TypeExpr, bool) {
	if p.tok.Kind != token.IDENT {
		return nil, false
	}
	var t ast.TypeExpr = ast.NamedType{Name: p.tok.Lit}
	p.next()
	for p.tok.Kind == token.LBRACK {
		p.next()
		if p.tok.Kind != token.RBRACK {
			return t, true
		}
		p.next()
		t = ast.ListType{Elem: t}
	}
	return t, true
}

// --- Expressions -----------------------------------------------------

// binPriority returns the infix binary priority of k, or 0 if k is not
// a binary operator token (spec §4.C precedence table).
func binPriority(k token.Kind) int {
	switch k {
	case token.OR, token.XOR, token.AND,
		token.EQL, token.NEQ, token.LT, token.GT, token.LEQ, token.GEQ,
		token.AS,
		token.ADD, token.SUB, token.MUL, token.QUO, token.REM, token.POW,
		token.DOTDOT:
		return k.Priority()
	}
	return 0
}

func kindToOp(k token.Kind) ast.Op {
	switch k {
	case token.ADD:
		return ast.OpAdd
	case token.SUB:
		return ast.OpSub
	case token.MUL:
		return ast.OpMul
	case token.QUO:
		return ast.OpQuo
	case token.REM:
		return ast.OpRem
	case token.POW:
		return ast.OpPow
	case token.EQL:
		return ast.OpEql
	case token.NEQ:
		return ast.OpNeq
	case token.LT:
		return ast.OpLt
	case token.LEQ:
		return ast.OpLeq
	case token.GT:
		return ast.OpGt
	case token.GEQ:
		return ast.OpGeq
	case token.AND:
		return ast.OpAnd
	case token.OR:
		return ast.OpOr
	case token.XOR:
		return ast.OpXor
	}
	panic(fmt.Sprintf("kindToOp: not a binary operator: %s", k))
}

func isComparator(op ast.Op) bool {
	switch op {
	case ast.OpEql, ast.OpNeq, ast.OpLt, ast.OpLeq, ast.OpGt, ast.OpGeq:
		return true
	}
	return false
}

// parseExpr parses a full expression at or above minPrec (spec §4.C).
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		prec := binPriority(p.tok.Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		if p.tok.Kind == token.AS {
			p.next()
			t := p.parseTypeExpr()
			left = ast.NewAsCast(left.Pos(), left, t)
			continue
		}
		if p.tok.Kind == token.DOTDOT {
			pos := p.tok.Pos
			p.next()
			right := p.parseExpr(prec + 1)
			left = ast.NewRangeExpr(pos, left, right)
			continue
		}
		opKind := p.tok.Kind
		opPos := p.tok.Pos
		p.next()
		right := p.parseExpr(prec + 1)
		left = ast.NewBinaryOp(opPos, kindToOp(opKind), left, right)
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Kind {
	case token.SUB:
		pos := p.tok.Pos
		p.next()
		x := p.parseUnary()
		return ast.NewUnaryOp(pos, ast.OpNeg, x)
	case token.NOT:
		pos := p.tok.Pos
		p.next()
		x := p.parseUnary()
		return ast.NewUnaryOp(pos, ast.OpNot, x)
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any number of
// `.field`, `(args)` and `[inner]` suffixes (spec §4.B/§4.F).
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case token.DOT:
			p.next()
			field := p.tok.Lit
			p.expect(token.IDENT)
			x = ast.NewSelect(x.Pos(), x, field)
		case token.LBRACK:
			x = p.parseBracketSuffix(x)
		default:
			return x
		}
	}
}

// parseBracketSuffix parses `x[...]`, producing either an Index or a
// Filter (spec §4.F). The two share identical surface syntax; since
// EdgeRules has no declared static element type at parse time, the
// choice is made structurally: a bracket that opens with a bare
// comparator (`[> 10]`) or whose contents parse to a boolean-shaped
// expression (comparison, and/or/xor, or a leading `not`) is a filter,
// everything else is a positional index. The linker re-validates this
// against the inferred types and reports TypesNotCompatible if the
// heuristic guessed wrong (e.g. `list[size]` where `size` is Boolean).
func (p *Parser) parseBracketSuffix(x ast.Expr) ast.Expr {
	lbrackPos := p.tok.Pos
	p.next()

	switch p.tok.Kind {
	case token.EQL, token.NEQ, token.LT, token.GT, token.LEQ, token.GEQ:
		op := kindToOp(p.tok.Kind)
		p.next()
		right := p.parseExpr(0)
		p.expect(token.RBRACK)
		return ast.NewFilter(lbrackPos, x, ast.NewUnaryPredicate(lbrackPos, op, right))
	}

	inner := p.parseExpr(0)
	p.expect(token.RBRACK)

	if looksBoolean(inner) {
		return ast.NewFilter(lbrackPos, x, inner)
	}
	return ast.NewIndex(lbrackPos, x, inner)
}

func looksBoolean(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.BinaryOp:
		return isComparator(n.Op) || n.Op == ast.OpAnd || n.Op == ast.OpOr || n.Op == ast.OpXor
	case *ast.UnaryOp:
		return n.Op == ast.OpNot
	case *ast.UnaryPredicate:
		return true
	case *ast.ContextVar:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.tok.Kind {
	case token.INT, token.FLOAT:
		return p.parseNumberLiteral()
	case token.STRING:
		v := value.NewStr(p.tok.Lit)
		e := ast.NewLiteral(p.tok.Pos, v)
		p.next()
		return e
	case token.TRUE, token.FALSE:
		v := value.Bool{B: p.tok.Kind == token.TRUE}
		e := ast.NewLiteral(p.tok.Pos, v)
		p.next()
		return e
	case token.IDENT:
		return p.parseIdentOrCall()
	case token.ELLIPSIS:
		e := ast.NewContextVar(p.tok.Pos)
		p.next()
		return e
	case token.LPAREN:
		p.next()
		e := p.parseExpr(0)
		p.expect(token.RPAREN)
		return e
	case token.LBRACK:
		return p.parseCollectionLit()
	case token.LBRACE:
		return p.parseInlineObject()
	case token.IF:
		return p.parseIfThenElse()
	case token.FOR:
		return p.parseForReturn()
	}
	p.errorf("unexpected token %s %q in expression", p.tok.Kind, p.tok.Lit)
	pos := p.tok.Pos
	p.next()
	return ast.NewLiteral(pos, value.NewMissingNumber("parse error"))
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	lit := p.tok.Lit
	pos := p.tok.Pos
	n, err := value.ParseNumberLiteral(lit)
	if err != nil {
		p.errorf("%s", err)
	}
	p.next()
	return ast.NewLiteral(pos, n)
}

// parseIdentOrCall parses a dotted variable path, or a call when the
// path is immediately followed by `(` (spec §4.B).
func (p *Parser) parseIdentOrCall() ast.Expr {
	pos := p.tok.Pos
	path := []string{p.tok.Lit}
	p.next()
	for p.tok.Kind == token.DOT {
		// Only fold into the path while it is not followed by a call:
		// the dotted segments of a qualified function name (e.g.
		// `math.sqrt(x)`) are folded the same way as field access, and
		// disambiguated by the trailing `(`.
		save := *p
		p.next()
		if p.tok.Kind != token.IDENT {
			*p = save
			break
		}
		seg := p.tok.Lit
		p.next()
		if p.tok.Kind == token.LPAREN {
			path = append(path, seg)
			return p.parseCallArgs(pos, joinPath(path))
		}
		path = append(path, seg)
	}
	if p.tok.Kind == token.LPAREN {
		return p.parseCallArgs(pos, joinPath(path))
	}
	return ast.NewVariable(pos, path)
}

func joinPath(path []string) string {
	s := path[0]
	for _, p := range path[1:] {
		s += "." + p
	}
	return s
}

func (p *Parser) parseCallArgs(pos token.Pos, name string) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok.Kind != token.RPAREN && p.tok.Kind != token.EOF {
		args = append(args, p.parseExpr(0))
		if p.tok.Kind == token.COMMA {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	return ast.NewCall(pos, name, args)
}

func (p *Parser) parseCollectionLit() ast.Expr {
	pos := p.tok.Pos
	p.expect(token.LBRACK)
	var elems []ast.Expr
	for p.tok.Kind != token.RBRACK && p.tok.Kind != token.EOF {
		elems = append(elems, p.parseExpr(0))
		if p.tok.Kind == token.COMMA {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return ast.NewCollectionLit(pos, elems)
}

// parseInlineObject parses an unattached object literal in expression
// position (spec §9 "Deferred linking inside unattached inline objects").
func (p *Parser) parseInlineObject() ast.Expr {
	pos := p.tok.Pos
	p.expect(token.LBRACE)
	obj := ast.NewContextObject()
	p.parseFieldList(obj, token.RBRACE)
	p.expect(token.RBRACE)
	return ast.NewObjectLitExpr(pos, obj)
}

func (p *Parser) parseIfThenElse() ast.Expr {
	pos := p.tok.Pos
	p.expect(token.IF)
	cond := p.parseExpr(0)
	p.expect(token.THEN)
	then := p.parseExpr(0)
	p.expect(token.ELSE)
	els := p.parseExpr(0)
	return ast.NewIfThenElse(pos, cond, then, els)
}

func (p *Parser) parseForReturn() ast.Expr {
	pos := p.tok.Pos
	p.expect(token.FOR)
	v := p.tok.Lit
	p.expect(token.IDENT)
	p.expect(token.IN)
	src := p.parseExpr(0)
	p.expect(token.RETURN)
	result := p.parseExpr(0)
	return ast.NewForReturn(pos, v, src, result)
}
