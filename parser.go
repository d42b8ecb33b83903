package main

import "fmt"

// parser holds all parsing state: the token slice, a cursor into it and the
// scope chain. Parse functions advance the cursor and panic with a
// *SyntaxError on the first mismatch.
type parser struct {
	toks   []Token
	pos    int
	scopes *ScopeChain

	// parens caches parenthesized expressions by the index of their "(".
	// parseAssign rewinds over them, and reparsing each level would make
	// nesting cost exponential.
	parens map[int]parenExpr
}

type parenExpr struct {
	expr Expr
	end  int // cursor just past the ")"
}

func newParser(toks []Token) *parser {
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		toks = append(toks[:len(toks):len(toks)], Token{Type: EOF})
	}
	return &parser{toks: toks, scopes: NewScopeChain(), parens: make(map[int]parenExpr)}
}

// Parse builds the program tree from a token stream ending in EOF.
func Parse(toks []Token) (root *Root, err error) {
	defer recoverError(&err)
	p := newParser(toks)
	return p.parseProgram(), nil
}

// ParseSource tokenizes and parses src.
func ParseSource(src []byte) (*Root, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func (p *parser) fail(tok Token, format string, args ...any) {
	panic(&SyntaxError{Pos: tok.Pos, Kind: tok.Type, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

// peekAt looks off tokens ahead without ever reading past EOF.
func (p *parser) peekAt(off int) Token {
	if p.pos+off >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+off]
}

func (p *parser) advance() {
	if p.toks[p.pos].Type != EOF {
		p.pos++
	}
}

func (p *parser) consume(typ TokenType) bool {
	if p.peek().Type != typ {
		return false
	}
	p.advance()
	return true
}

// consumeSeq advances past len(s) punctuation tokens if they spell s,
// e.g. "+=" as '+' followed by '='.
func (p *parser) consumeSeq(s string) bool {
	for i := 0; i < len(s); i++ {
		tok := p.peekAt(i)
		if tok.Type == EOF || tok.Type != TokenType(s[i:i+1]) {
			return false
		}
	}
	p.pos += len(s)
	return true
}

func (p *parser) expect(typ TokenType) Token {
	tok := p.peek()
	if tok.Type != typ {
		p.fail(tok, "expected %q but got %s", string(typ), tok)
	}
	p.advance()
	return tok
}

// Expressions

func (p *parser) parseExpr() Expr {
	return p.parseAssign()
}

var compoundAssignOps = []string{"*", "/", "+", "-"}

// parseAssign tries a unary expression as the target of an assignment. If
// no assignment operator follows, the cursor is rewound and the input is
// parsed again as an additive expression.
func (p *parser) parseAssign() Expr {
	start := p.pos
	lhs := p.parseUnary()

	if p.consume(ASSIGN) {
		return &Assign{LHS: lhs, RHS: p.parseAssign()}
	}
	for _, op := range compoundAssignOps {
		if p.consumeSeq(op + "=") {
			rhs := p.parseAssign()
			return &Assign{LHS: lhs, RHS: &Binary{Op: op, LHS: lhs, RHS: rhs}}
		}
	}

	p.pos = start
	return p.parseAdditive()
}

func (p *parser) parseAdditive() Expr {
	lhs := p.parseMultiplicative()
	for {
		op := p.peek().Type
		if op != PLUS && op != MINUS {
			return lhs
		}
		p.advance()
		lhs = &Binary{Op: string(op), LHS: lhs, RHS: p.parseMultiplicative()}
	}
}

func (p *parser) parseMultiplicative() Expr {
	lhs := p.parseUnary()
	for {
		op := p.peek().Type
		if op != ASTERISK && op != SLASH && op != PERCENT {
			return lhs
		}
		p.advance()
		lhs = &Binary{Op: string(op), LHS: lhs, RHS: p.parseUnary()}
	}
}

func (p *parser) parseUnary() Expr {
	if p.consume(AMPERSAND) {
		return &AddrOf{Operand: p.parseUnary()}
	}
	if p.consume(ASTERISK) {
		return &Deref{Operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() Expr {
	tok := p.peek()
	switch tok.Type {
	case IDENT:
		if p.peekAt(1).Type == LPAREN {
			p.pos += 2
			p.expect(RPAREN)
			return &Call{Name: tok.Literal}
		}
		v := p.scopes.Lookup(tok.Literal)
		if v == nil {
			p.fail(tok, "undefined identifier %q", tok.Literal)
		}
		p.advance()
		return &Ident{Name: tok.Literal, Var: v}

	case NUM:
		p.advance()
		return &NumberLit{Value: tok.IntValue}

	case LPAREN:
		start := p.pos
		if cached, ok := p.parens[start]; ok {
			p.pos = cached.end
			return cached.expr
		}
		p.advance()
		e := p.parseExpr()
		if rp := p.peek(); rp.Type != RPAREN {
			p.fail(rp, "no closing parenthesis, got %s", rp)
		}
		p.advance()
		p.parens[start] = parenExpr{expr: e, end: p.pos}
		return e

	default:
		return &Null{}
	}
}

// Statements

func (p *parser) parseStatement() Node {
	switch p.peek().Type {
	case LBRACE:
		return p.parseCompound()

	case RETURN:
		p.advance()
		value := p.parseExpr()
		p.expect(SEMICOLON)
		return &Return{Value: value}

	case IF:
		p.advance()
		p.expect(LPAREN)
		cond := p.parseExpr()
		p.expect(RPAREN)
		n := &If{Cond: cond, Then: p.parseStatement()}
		if p.consume(ELSE) {
			n.Else = p.parseStatement()
		}
		return n

	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseExprStatement() Node {
	if p.consume(SEMICOLON) {
		return &Null{}
	}
	e := p.parseExpr()
	p.expect(SEMICOLON)
	return e
}

func (p *parser) parseCompound() *Compound {
	p.expect(LBRACE)
	p.scopes.Push()
	n := &Compound{}
	for !p.consume(RBRACE) {
		if p.peek().Type == INT {
			n.Stmts = append(n.Stmts, p.parseDeclaration())
		} else {
			n.Stmts = append(n.Stmts, p.parseStatement())
		}
	}
	p.scopes.Pop()
	return n
}

// Declarations

// declarator is what a declarator names: a function with its parameters,
// or a freshly declared variable.
type declarator struct {
	tok    Token
	fn     bool
	params []*Var
	v      *Var
}

func (p *parser) parseDeclSpecifier() *Type {
	tok := p.peek()
	if tok.Type != INT {
		p.fail(tok, "unknown declaration specifier %s", tok)
	}
	p.advance()
	return TypeI32
}

func (p *parser) parseDeclarator(ty *Type) declarator {
	for p.consume(ASTERISK) {
		ty = PointerTo(ty)
	}
	return p.parseDirectDeclarator(ty)
}

func (p *parser) parseDirectDeclarator(ty *Type) declarator {
	tok := p.peek()
	if tok.Type != IDENT {
		p.fail(tok, "expected identifier in declarator but got %s", tok)
	}
	p.advance()

	if p.consume(LPAREN) {
		d := declarator{tok: tok, fn: true}
		if !p.consume(RPAREN) {
			d.params = p.parseParamList()
			p.expect(RPAREN)
		}
		return d
	}
	return declarator{tok: tok, v: p.scopes.Declare(tok.Literal, ty)}
}

func (p *parser) parseParamList() []*Var {
	params := []*Var{p.parseParamDecl()}
	for p.consume(COMMA) {
		params = append(params, p.parseParamDecl())
	}
	return params
}

func (p *parser) parseParamDecl() *Var {
	d := p.parseDeclarator(p.parseDeclSpecifier())
	if d.fn {
		p.fail(d.tok, "parameter %q cannot be a function", d.tok.Literal)
	}
	return d.v
}

// parseDeclaration parses a declaration inside a block. An initializer
// becomes an assignment statement; anything else is a no-op.
func (p *parser) parseDeclaration() Node {
	ty := p.parseDeclSpecifier()
	if p.consume(SEMICOLON) {
		return &Null{}
	}
	var n Node = &Null{}
	d := p.parseDeclarator(ty)
	if !d.fn && p.consume(ASSIGN) {
		n = &Assign{LHS: &Ident{Name: d.v.Name, Var: d.v}, RHS: p.parseExpr()}
	}
	p.expect(SEMICOLON)
	return n
}

// Top level

func (p *parser) parseFuncDef() *FuncDef {
	p.scopes.BeginFunction()
	p.scopes.Push()
	defer p.scopes.Pop()

	d := p.parseDeclarator(p.parseDeclSpecifier())
	if !d.fn {
		p.fail(d.tok, "expected function definition but %q declares a variable", d.tok.Literal)
	}
	body := p.parseCompound()
	return &FuncDef{
		Name:   d.tok.Literal,
		Params: d.params,
		Body:   body,
		Vars:   p.scopes.FuncVars(),
	}
}

func (p *parser) parseProgram() *Root {
	root := &Root{}
	for p.peek().Type != EOF {
		root.Funcs = append(root.Funcs, p.parseFuncDef())
	}
	return root
}
