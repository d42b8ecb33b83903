package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Return values

## Test: constant
` + "```c-program" + `
int main() { return 42; }
` + "```" + `
` + "```execute" + `
42
` + "```" + `

## Test: precedence
` + "```c-program" + `
int main() { return 1+2*3; }
` + "```" + `
` + "```ast" + `
(return (binary "+" (num 1) (binary "*" (num 2) (num 3))))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "constant")
	be.Equal(t, tc1.Input, "int main() { return 42; }")
	be.Equal(t, tc1.InputType, InputTypeCProgram)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeExecute)
	be.Equal(t, tc1.Assertions[0].Content, "42")
	be.True(t, tc1.Assertions[0].ParsedSexy == nil)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "precedence")
	be.Equal(t, len(tc2.Assertions), 1)
	be.Equal(t, tc2.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc2.Assertions[0].ParsedSexy.String(), `(return (binary "+" (num 1) (binary "*" (num 2) (num 3))))`)
}

func TestExtractTestCases_AllAssertionTypes(t *testing.T) {
	markdown := `## Test: every fence
` + "```c-program" + `
int main() { int x; x = 3; return x; }
` + "```" + `
` + "```ast" + `
(program (func "main" ...))
` + "```" + `
` + "```asm" + `
main:
  push rbp

  ret
` + "```" + `
` + "```execute" + `
3
` + "```" + `

## Test: failure
` + "```c-program" + `
int main() { return y; }
` + "```" + `
` + "```compile-error" + `
undefined identifier "y"
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc := testCases[0]
	be.Equal(t, len(tc.Assertions), 3)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeAsm)
	be.Equal(t, tc.Assertions[1].Lines(), []string{"main:", "push rbp", "ret"})
	be.Equal(t, tc.Assertions[2].Type, AssertionTypeExecute)

	be.Equal(t, testCases[1].Assertions[0].Type, AssertionTypeCompileError)
	be.Equal(t, testCases[1].Assertions[0].Content, `undefined identifier "y"`)
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_NoTestCases(t *testing.T) {
	markdown := `# Some document

This is just regular markdown content.

## Regular heading

No test cases here.`

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_InvalidSexyAssertion(t *testing.T) {
	markdown := `## Test: invalid sexy
` + "```c-program" + `
int main() { return 0; }
` + "```" + `
` + "```ast" + `
(unclosed list
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "failed to parse Sexy assertion"))
	be.True(t, strings.Contains(err.Error(), "line"))
}

func TestExtractTestCases_AsmIsNotParsedAsSexy(t *testing.T) {
	markdown := `## Test: asm with brackets
` + "```c-program" + `
int main() { int a; return a; }
` + "```" + `
` + "```asm" + `
lea rax, [rbp-8]
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Assertions[0].Content, "lea rax, [rbp-8]")
	be.True(t, testCases[0].Assertions[0].ParsedSexy == nil)
}

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		fenceType string
	}{
		{
			"c-program fence outside test",
			"# Document\n\n```c-program\nint main() {}\n```\n",
			"c-program",
		},
		{
			"ast fence outside test",
			"# Document\n\n```ast\n(num 1)\n```\n",
			"ast",
		},
		{
			"asm fence outside test",
			"# Document\n\n```asm\nret\n```\n",
			"asm",
		},
		{
			"execute fence outside test",
			"# Document\n\n```execute\n0\n```\n",
			"execute",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), test.fenceType+" fence found outside of test case"))
			be.True(t, strings.Contains(err.Error(), "line"))
		})
	}
}

func TestExtractTestCases_UnknownFenceOutsideTest(t *testing.T) {
	markdown := `# Document with unknown code block

` + "```go" + `
func main() {}
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'go' found outside of test case"))
}

func TestExtractTestCases_UnknownFenceInTest(t *testing.T) {
	markdown := `## Test: test with unknown fence
` + "```c-program" + `
int main() { return 0; }
` + "```" + `
` + "```execute" + `
0
` + "```" + `

` + "```shell" + `
echo "more code"
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'shell'"))
	be.True(t, strings.Contains(err.Error(), "line"))
}

func TestExtractTestCases_TestMissingInputFence(t *testing.T) {
	markdown := `## Test: no input
` + "```ast" + `
(num 1)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no input' has no input fence"))
}

func TestExtractTestCases_TestMissingAssertionFence(t *testing.T) {
	markdown := `## Test: no assertions
` + "```c-program" + `
int main() { return 0; }
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no assertions' has no assertion fences"))
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := `## Test: multiple inputs
` + "```c-program" + `
int main() { return 1; }
` + "```" + `
` + "```c-program" + `
int main() { return 2; }
` + "```" + `
` + "```execute" + `
1
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple input fences found"))
}

func TestExtractTestCases_AllowFencesWithoutLanguage(t *testing.T) {
	markdown := `# Document with generic code block

` + "```" + `
some code without language
` + "```" + `

## Test: valid test
` + "```c-program" + `
int main() { return 0; }
` + "```" + `
` + "```execute" + `
0
` + "```" + `

` + "```" + `
more code without language in test
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Name, "valid test")
	be.Equal(t, len(testCases[0].Assertions), 1)
}

func TestExtractTestCases_LineNumber(t *testing.T) {
	markdown := "# Title\nLine 2\n\n## Test: where\n```c-program\nint main() { return 0; }\n```\n```execute\n0\n```\n"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Line, 6)
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := `## Test: first test
` + "```c-program" + `
int main() { return 0; }
` + "```" + `
` + "```execute" + `
0
` + "```" + `

## Test: second test missing input
` + "```ast" + `
(num 1)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'second test missing input' has no input fence"))
}

func TestExtractTestCases_MultilineSexy(t *testing.T) {
	markdown := `## Test: multiline
` + "```c-program" + `
int main() { int x; return x + 2; }
` + "```" + `
` + "```ast" + `
; the return statement only
(return
 (binary "+"
  (ident "x" 1)
  (num 2)))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)

	pattern := testCases[0].Assertions[0].ParsedSexy
	be.Equal(t, pattern.Type, NodeList)
	be.Equal(t, len(pattern.Items), 2)
	be.Equal(t, pattern.Items[0].Text, "return")
	be.Equal(t, pattern.Items[1].Items[1].Type, NodeString)
	be.Equal(t, pattern.Items[1].Items[1].Text, "+")
}
