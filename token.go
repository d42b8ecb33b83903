package main

import "strconv"

// TokenType is the kind of a token. Punctuation tokens use their own
// character as their type.
type TokenType string

const (
	EOF   TokenType = "EOF"
	NUM   TokenType = "NUM"   // 12345
	IDENT TokenType = "IDENT" // main, foo, _bar

	// Keywords
	INT    TokenType = "INT"
	RETURN TokenType = "RETURN"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"

	// Single-character punctuation
	ASSIGN    TokenType = "="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	PERCENT   TokenType = "%"
	AMPERSAND TokenType = "&"
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
)

var keywords = map[string]TokenType{
	"int":    INT,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
}

// isPunct reports whether c lexes as a single-character punctuation token.
func isPunct(c byte) bool {
	switch TokenType(c) {
	case ASSIGN, PLUS, MINUS, ASTERISK, SLASH, PERCENT, AMPERSAND,
		COMMA, SEMICOLON, LPAREN, RPAREN, LBRACE, RBRACE:
		return true
	}
	return false
}

// Token is one lexeme. Literal holds identifier and keyword text, IntValue
// is only meaningful for NUM tokens.
type Token struct {
	Type     TokenType
	Literal  string
	IntValue int64
	Pos      int // byte offset in the source
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case NUM:
		return "number " + strconv.FormatInt(t.IntValue, 10)
	case IDENT:
		return "identifier " + strconv.Quote(t.Literal)
	case INT, RETURN, IF, ELSE:
		return "keyword " + strconv.Quote(t.Literal)
	default:
		return strconv.Quote(string(t.Type))
	}
}
