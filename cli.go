package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `mdcc - A small C compiler that emits x86-64 assembly

Usage:
    mdcc <command> [arguments]

Commands:
    run <file>      Compile, assemble and execute a .c file
    build <file>    Compile a .c file to assembly
    eval <code>     Compile inline C code and print the assembly
    check <file>    Parse a .c file without generating code
    help            Show this help message

Examples:
    mdcc run examples/fib.c
    mdcc build -o program.s -target linux hello.c
    mdcc eval 'int main(){return 42;}'
    mdcc check myfile.c

Use "mdcc <command> -h" for more information about a command.
`)
}

// newLogger returns the progress logger for -v. When verbose is off the
// logger discards everything.
func newLogger(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "mdcc: ", log.Lmsgprefix)
}

func targetFlag(fs *flag.FlagSet) *string {
	return fs.String("target", DefaultTarget().Name, "Output convention: darwin or linux")
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdcc run [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile, assemble and execute a .c file; exits with the program's status\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	logger := newLogger(*verbose)
	logger.Printf("compiling %s", filename)

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	asm, err := Compile(source, DefaultTarget())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("assembling %d bytes of assembly", len(asm))
	status, err := assembleAndRun(asm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("exit status %d", status)
	os.Exit(status)
}

// assembleAndRun links asm in a scratch directory and runs it with the
// terminal's stdout and stderr.
func assembleAndRun(asm string) (int, error) {
	dir, err := os.MkdirTemp("", "mdcc-run-")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	exe, err := buildExecutable(asm, dir)
	if err != nil {
		return 0, err
	}
	return runExecutable(exe, os.Stdout, os.Stderr)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.s)")
	targetName := targetFlag(fs)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdcc build [-o output] [-target name] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .c file to x86-64 assembly\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	target, err := LookupTarget(*targetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	filename := fs.Arg(0)
	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".c") + ".s"
	}

	logger := newLogger(*verbose)
	logger.Printf("compiling %s to %s for %s", filename, outputFile, target.Name)

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	asm, err := Compile(source, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, []byte(asm), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing assembly file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(asm))
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	targetName := targetFlag(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdcc eval [-target name] <code>\n")
		fmt.Fprintf(os.Stderr, "Compile inline C code and print the assembly\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	target, err := LookupTarget(*targetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Output streams straight to stdout: a generator error leaves the
	// functions completed so far printed.
	if err := CompileTo(os.Stdout, []byte(fs.Arg(0)), target); err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Print the parsed AST")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdcc check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse a .c file and resolve its identifiers\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	root, err := ParseSource(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(root))
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		runCommand(args)
	case "build":
		buildCommand(args)
	case "eval":
		evalCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
