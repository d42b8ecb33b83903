package main

import (
	"fmt"
	"io"
	"strings"
)

// CompileTo compiles src and writes the assembly to w. Parsing finishes
// before any output is written, so syntax errors leave w untouched.
func CompileTo(w io.Writer, src []byte, target Target) error {
	root, err := ParseSource(src)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := Generate(w, root, target); err != nil {
		return fmt.Errorf("codegen: %w", err)
	}
	return nil
}

// Compile returns the assembly for src. On a generator error the returned
// text holds whatever was completed before the failing function.
func Compile(src []byte, target Target) (string, error) {
	var b strings.Builder
	err := CompileTo(&b, src, target)
	return b.String(), err
}
