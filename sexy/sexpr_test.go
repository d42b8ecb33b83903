package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"test_var", "test_var"},
		{"func-name", "func-name"},
		{"x", "x"},
		{"_", "_"},
		{"+", "+"},
		{"-", "-"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeSymbol)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		output   string
	}{
		{`"hello"`, "hello", `"hello"`},
		{`"hello world"`, "hello world", `"hello world"`},
		{`""`, "", `""`},
		{`"test\"quote"`, `test"quote`, `"test\"quote"`},
		{`"test\\backslash"`, `test\backslash`, `"test\\backslash"`},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeString)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.output)
	}
}

func TestParseInteger(t *testing.T) {
	for _, input := range []string{"42", "0", "-123", "+456"} {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeInteger)
		be.Equal(t, result.Text, input)
		be.Equal(t, result.String(), input)
	}
}

func TestParseEllipsis(t *testing.T) {
	result, err := Parse("...")
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeEllipsis)
	be.Equal(t, result.String(), "...")
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"()", "()"},
		{"(hello)", "(hello)"},
		{"(1 2 3)", "(1 2 3)"},
		{`(binary "+" (num 1) (num 2))`, `(binary "+" (num 1) (num 2))`},
		{"(nested (list here))", "(nested (list here))"},
		{"(block ... (return _))", "(block ... (return _))"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeList)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseLabelDef(t *testing.T) {
	tests := []struct {
		input         string
		expectedLabel string
		expectedType  NodeType
	}{
		{"#x=hello", "x", NodeSymbol},
		{"#123=world", "123", NodeSymbol},
		{`#outer=(var "x" 1 "int")`, "outer", NodeList},
		{`#str="test"`, "str", NodeString},
		{"#num=42", "num", NodeInteger},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, test.expectedType)
		be.Equal(t, result.Label, test.expectedLabel)
		be.Equal(t, result.String(), test.input)
	}
}

func TestParseLabelRef(t *testing.T) {
	for _, input := range []string{"#x#", "#123#", "#outer#"} {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeLabelRef)
		be.Equal(t, result.String(), input)
	}
}

func TestParseComments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"; comment\nhello", "hello"},
		{"hello ; trailing comment", "hello"},
		{"; AST for expression\n(num 1)", "(num 1)"},
		{"(test ; inline comment\n world)", "(test world)"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParserErrors(t *testing.T) {
	tests := []string{
		"(",           // unclosed list
		"(hello",      // unclosed list with content
		")",           // stray close
		"hello world", // extra tokens after main expression
		"42 extra",    // extra tokens after integer
		"(test) more", // extra tokens after list
		"[1]",         // arrays are not part of the notation
		"{a: 1}",      // neither are maps
	}

	for _, test := range tests {
		_, err := Parse(test)
		be.True(t, err != nil)
	}
}

func TestSyntaxErrorHandling(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single dot", ".", "unexpected character '.'"},
		{"at sign", "@", "unexpected character '@'"},
		{"dollar", "$", "unexpected character '$'"},
		{"single dot within list", "(1 2 3 . 4)", "unexpected character '.'"},
		{"unterminated string", `"abc`, "unterminated string"},
		{"bad escape", `"a\nb"`, `invalid escape sequence: \n`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Parse(test.input)
			be.True(t, err != nil)
			be.Equal(t, err.Error(), test.expected)
			be.True(t, result == nil)
		})
	}
}

func TestNodeTypeHelpers(t *testing.T) {
	symbol := NewSymbol("test")
	be.True(t, symbol.IsAtom())
	be.True(t, !symbol.IsLabeled())
	be.True(t, !symbol.IsWildcard())

	be.True(t, NewSymbol("_").IsWildcard())
	be.True(t, !NewString("_").IsWildcard())

	list := NewList([]*Node{symbol})
	be.True(t, !list.IsAtom())

	labeled := NewInteger("1").SetLabel("one")
	be.True(t, labeled.IsLabeled())
	be.Equal(t, labeled.String(), "#one=1")

	labelRef := NewLabelRef("x")
	be.True(t, !labelRef.IsAtom())
	be.True(t, !labelRef.IsLabeled())
}

func TestMustParsePanicsOnBadInput(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	MustParse("(")
}
