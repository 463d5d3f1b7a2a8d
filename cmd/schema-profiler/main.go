// Package main provides the CLI entrypoint for schema-profiler.
//
// schema-profiler derives a profile-specific schema from a base schema:
//   - Loads a base schema (Ecore XMI or YAML)
//   - Loads a FHIR StructureDefinition profile (JSON, YAML or XML)
//   - Copies every feature the profile constrains into a new, smaller schema
//   - Records cardinality, slicing, binding, must-support and documentation
//     as annotations on the copied features
package main

import (
	"errors"
	"fmt"
	"os"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitWarnings = 2
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	if errors.Is(err, errStrictWarnings) {
		fmt.Fprintln(os.Stderr, err)
		return exitWarnings
	}

	fmt.Fprintln(os.Stderr, err)

	return exitFailure
}
