package main

import (
	"github.com/spf13/cobra"
)

// options holds flag values before they are merged into the config.
type options struct {
	configPath   string
	profile      string
	input        string
	output       string
	outputFormat string
	report       string
	strict       bool
	logLevel     string
	logFormat    string
	dump         bool
	watch        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "schema-profiler",
		Short: "Derive a profile-specific schema from a base schema",
		Long: `schema-profiler applies the element constraints of a FHIR
StructureDefinition to a base Ecore schema and writes a new schema that
contains only the classes and features the profile touches.

Constraints that cannot be resolved are reported and skipped; the run
still completes. The exit code is non-zero only when a file cannot be
read or written (or, with --strict, when any warning was recorded).

Examples:
  schema-profiler -p patient-profile.json -i fhir.ecore -o patient.ecore
  schema-profiler -c schema-profiler.yaml --report report.json
  schema-profiler -p patient.xml -i fhir.ecore -o patient.yaml --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProfiler(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path (optional)")
	flags.StringVarP(&opts.profile, "profile", "p", "", "path to the profile (StructureDefinition)")
	flags.StringVarP(&opts.input, "input", "i", "", "path to the base schema")
	flags.StringVarP(&opts.output, "output", "o", "", "path to the output schema")
	flags.StringVar(&opts.outputFormat, "output-format", "", "output format: ecore or yaml (default: by extension)")
	flags.StringVar(&opts.report, "report", "", "write a JSON run report to this path")
	flags.BoolVar(&opts.strict, "strict", false, "exit with status 2 when any warning was recorded")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json or console")
	flags.BoolVar(&opts.dump, "dump", false, "print the derived schema structure to stdout")
	flags.BoolVar(&opts.watch, "watch", false, "re-run whenever the profile or base schema changes")

	cmd.AddCommand(newVersionCmd())

	return cmd
}
