package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// assemblerCommand is the driver used to assemble and link output.
const assemblerCommand = "cc"

// buildExecutable assembles asm with the system C compiler driver and
// returns the path of the linked program inside dir.
func buildExecutable(asm string, dir string) (string, error) {
	asmFile := filepath.Join(dir, "prog.s")
	exeFile := filepath.Join(dir, "prog")
	if err := os.WriteFile(asmFile, []byte(asm), 0644); err != nil {
		return "", fmt.Errorf("failed to write assembly: %w", err)
	}

	cmd := exec.Command(assemblerCommand, "-o", exeFile, asmFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%s failed: %v\nOutput: %s", assemblerCommand, err, out)
	}
	return exeFile, nil
}

// runExecutable runs path and returns its exit status. A non-zero status
// is not an error.
func runExecutable(path string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.Command(path)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return 0, fmt.Errorf("failed to run %s: %w", path, err)
	}
}
