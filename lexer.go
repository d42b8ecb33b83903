package main

import (
	"fmt"
	"strconv"
)

type lexer struct {
	input []byte
	pos   int
	toks  []Token
}

// Tokenize splits src into tokens. The returned slice always ends with
// exactly one EOF token.
func Tokenize(src []byte) ([]Token, error) {
	l := &lexer{input: src}
	for {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.input) {
			break
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.toks = append(l.toks, Token{Type: EOF, Pos: l.pos})
	return l.toks, nil
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '/' && l.peekByte(1) == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peekByte(1) == '*':
			l.pos += 2
			for l.pos < len(l.input) && !(l.input[l.pos] == '*' && l.peekByte(1) == '/') {
				l.pos++
			}
			l.pos += 2
			if l.pos > len(l.input) {
				l.pos = len(l.input)
			}
		default:
			return
		}
	}
}

func (l *lexer) next() error {
	start := l.pos
	c := l.input[l.pos]

	switch {
	case isDigit(c):
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		lit := string(l.input[start:l.pos])
		val, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return &SyntaxError{
				Pos: start,
				Msg: fmt.Sprintf("integer literal %s out of range", lit),
			}
		}
		l.toks = append(l.toks, Token{
			Type:     NUM,
			Literal:  lit,
			IntValue: val,
			Pos:      start,
		})

	case isLetter(c):
		for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
			l.pos++
		}
		lit := string(l.input[start:l.pos])
		typ, ok := keywords[lit]
		if !ok {
			typ = IDENT
		}
		l.toks = append(l.toks, Token{Type: typ, Literal: lit, Pos: start})

	case isPunct(c):
		l.pos++
		l.toks = append(l.toks, Token{Type: TokenType(c), Literal: string(c), Pos: start})

	default:
		return &SyntaxError{
			Pos: start,
			Msg: fmt.Sprintf("unexpected character %q", c),
		}
	}
	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
