package derive

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"schema-profiler/internal/diagnostic"
	"schema-profiler/internal/profile"
	"schema-profiler/internal/schema"
)

// Engine drives one pass over a constraint list.
type Engine struct {
	logger  zerolog.Logger
	applier *Applier
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithNamespaces overrides the annotation sources.
func WithNamespaces(ns Namespaces) Option {
	return func(e *Engine) {
		e.applier = NewApplier(ns)
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  zerolog.Nop(),
		applier: NewApplier(DefaultNamespaces()),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Stats summarizes a run.
type Stats struct {
	Constraints int `json:"constraints"`
	Applied     int `json:"applied"`
	Skipped     int `json:"skipped"`
	Classes     int `json:"classes"`
	Features    int `json:"features"`
}

// Result is the outcome of a run.
type Result struct {
	Schema      *schema.Schema
	Diagnostics *diagnostic.Diagnostics
	Stats       Stats
}

// Run derives the output schema. Per-constraint problems become diagnostics;
// an error is returned only when base is nil or the output cannot hold a
// resolved class.
func (e *Engine) Run(base *schema.Schema, constraints profile.ConstraintList) (*Result, error) {
	if base == nil {
		return nil, errors.New("base schema is nil")
	}

	res := &Result{
		Schema:      base.Shell(),
		Diagnostics: &diagnostic.Diagnostics{},
		Stats:       Stats{Constraints: len(constraints)},
	}

	for i := range constraints {
		applied, err := e.apply(base, &constraints[i], res)
		if err != nil {
			return nil, err
		}

		if applied {
			res.Stats.Applied++
		} else {
			res.Stats.Skipped++
		}
	}

	res.Stats.Classes = res.Schema.Len()
	for _, c := range res.Schema.Classes() {
		res.Stats.Features += len(c.Features)
	}

	e.logger.Info().
		Int("constraints", res.Stats.Constraints).
		Int("applied", res.Stats.Applied).
		Int("skipped", res.Stats.Skipped).
		Int("classes", res.Stats.Classes).
		Int("features", res.Stats.Features).
		Msg("profile applied")

	return res, nil
}

// apply runs one constraint and reports whether it reached the output.
func (e *Engine) apply(base *schema.Schema, c *profile.Constraint, res *Result) (bool, error) {
	r, skip := Resolve(c.Path, base)
	if skip != nil {
		e.recordSkip(skip, res.Diagnostics)
		return false, nil
	}

	if r.Path.Truncated() {
		res.Diagnostics.AddInfo(CodePathTruncated,
			fmt.Sprintf("only %s.%s is addressed; deeper segments are ignored", r.Path.Class, r.Path.Feature),
			r.Path.Class, c.Path)
	}

	cls, err := EnsureClass(res.Schema, r.Class.Name)
	if err != nil {
		return false, fmt.Errorf("%s: %w", c.Path, err)
	}

	f := CopyFeature(cls, r.Feature)
	e.applier.Apply(c, f, cls.Name, res.Diagnostics)

	e.logger.Debug().
		Str("path", c.Path).
		Str("class", cls.Name).
		Str("feature", f.Name).
		Int("lower", f.Lower).
		Stringer("upper", f.Upper).
		Msg("constraint applied")

	return true, nil
}

func (e *Engine) recordSkip(skip *Skip, d *diagnostic.Diagnostics) {
	code := skip.Reason.String()

	if skip.Reason == ReasonMalformedPath {
		d.AddInfo(code, skip.Error(), skip.Class, skip.Path)
		e.logger.Debug().Str("path", skip.Path).Str("code", code).Msg("constraint skipped")

		return
	}

	d.AddWarning(code, skip.Error(), skip.Class, skip.Path)
	e.logger.Warn().
		Str("path", skip.Path).
		Str("class", skip.Class).
		Str("feature", skip.Feature).
		Str("code", code).
		Msg(skip.Error())
}
