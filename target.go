package main

import (
	"fmt"
	"runtime"
)

// Target captures the assembler/OS naming convention of the output.
type Target struct {
	Name string
	// EntryPrefix is prepended to the symbol of the function named main.
	EntryPrefix string
}

var (
	TargetDarwin = Target{Name: "darwin", EntryPrefix: "_"}
	TargetLinux  = Target{Name: "linux", EntryPrefix: ""}
)

var targets = map[string]Target{
	TargetDarwin.Name: TargetDarwin,
	TargetLinux.Name:  TargetLinux,
}

// LookupTarget returns the preset called name.
func LookupTarget(name string) (Target, error) {
	t, ok := targets[name]
	if !ok {
		return Target{}, fmt.Errorf("unknown target %q (want darwin or linux)", name)
	}
	return t, nil
}

// DefaultTarget matches the host operating system.
func DefaultTarget() Target {
	if runtime.GOOS == "darwin" {
		return TargetDarwin
	}
	return TargetLinux
}

// EntrySymbol is the global symbol the program's main is emitted under.
func (t Target) EntrySymbol() string {
	return t.EntryPrefix + "main"
}

// FuncSymbol maps a source function name to its label.
func (t Target) FuncSymbol(name string) string {
	if name == "main" {
		return t.EntrySymbol()
	}
	return name
}
