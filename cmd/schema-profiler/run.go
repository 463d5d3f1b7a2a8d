package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"schema-profiler/internal/config"
	"schema-profiler/internal/derive"
	"schema-profiler/internal/diagnostic"
	"schema-profiler/internal/profile"
	"schema-profiler/internal/schema"
	"schema-profiler/internal/watch"
)

var errStrictWarnings = errors.New("warnings recorded in strict mode")

func runProfiler(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	applyFlags(cmd, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())

	res, err := runPipeline(cfg, logger, opts.dump, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if opts.watch {
		return watchAndRerun(cmd.Context(), cfg, logger, opts.dump, cmd.OutOrStdout())
	}

	if res.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %w", errStrictWarnings, res.Diagnostics.Error())
	}

	return nil
}

// applyFlags lets explicitly set flags override file and environment values.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("profile") {
		cfg.Profile = opts.profile
	}
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("output-format") {
		cfg.OutputFormat = opts.outputFormat
	}
	if flags.Changed("report") {
		cfg.Report = opts.report
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
}

// runPipeline loads both inputs, derives the output schema and writes it.
// Only file and format problems are returned as errors.
func runPipeline(cfg *config.Config, logger zerolog.Logger, dump bool, stdout io.Writer) (*derive.Result, error) {
	runID := uuid.NewString()
	logger = logger.With().Str("run_id", runID).Logger()

	logger.Info().Str("input", cfg.Input).Str("profile", cfg.Profile).Msg("start")

	base, err := schema.LoadFile(cfg.Input)
	if err != nil {
		return nil, err
	}

	prof, err := profile.LoadFile(cfg.Profile)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("classifiers", base.Len()).
		Int("constraints", len(prof.Constraints)).
		Str("profile_type", prof.Type).
		Msg("inputs loaded")

	engine := derive.NewEngine(
		derive.WithLogger(logger),
		derive.WithNamespaces(derive.Namespaces{
			Slicing:       cfg.Namespaces.Slicing,
			Domain:        cfg.Namespaces.Domain,
			Documentation: cfg.Namespaces.Documentation,
		}),
	)

	res, err := engine.Run(base, prof.Constraints)
	if err != nil {
		return nil, err
	}

	// In strict mode warnings are errors, both in the report and the exit status.
	if cfg.Strict && res.Diagnostics.HasWarnings() {
		res.Diagnostics.EscalateWarnings()
	}

	format, err := schema.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	if err := schema.WriteFile(res.Schema, cfg.Output, format); err != nil {
		return nil, err
	}

	if cfg.Report != "" {
		if err := writeReport(cfg, runID, res); err != nil {
			return nil, err
		}
	}

	if dump {
		fmt.Fprint(stdout, spew.Sdump(res.Schema.Classes()))
	}

	for _, d := range res.Diagnostics.Errors {
		logger.Error().Str("code", d.Code).Msg(d.String())
	}

	logger.Info().
		Str("output", cfg.Output).
		Int("diagnostics", res.Diagnostics.Len()).
		Int("warnings", len(res.Diagnostics.Warnings)).
		Int("errors", len(res.Diagnostics.Errors)).
		Msg("finish")

	return res, nil
}

type runReport struct {
	RunID       string                  `json:"run_id"`
	Profile     string                  `json:"profile"`
	Input       string                  `json:"input"`
	Output      string                  `json:"output"`
	Stats       derive.Stats            `json:"stats"`
	Diagnostics *diagnostic.Diagnostics `json:"diagnostics"`
}

func writeReport(cfg *config.Config, runID string, res *derive.Result) error {
	data, err := json.MarshalIndent(runReport{
		RunID:       runID,
		Profile:     cfg.Profile,
		Input:       cfg.Input,
		Output:      cfg.Output,
		Stats:       res.Stats,
		Diagnostics: res.Diagnostics,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(cfg.Report, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", cfg.Report, err)
	}

	return nil
}

// watchAndRerun re-runs the pipeline on every change until interrupted.
// Failed re-runs are logged and do not stop watching.
func watchAndRerun(parent context.Context, cfg *config.Config, logger zerolog.Logger, dump bool, stdout io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(logger, watch.DefaultDebounce, cfg.Profile, cfg.Input)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info().Str("profile", cfg.Profile).Str("input", cfg.Input).Msg("watching for changes")

	err = w.Run(ctx, func() {
		if _, err := runPipeline(cfg, logger, dump, stdout); err != nil {
			logger.Error().Err(err).Msg("re-run failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
