package sieve

import (
	"log/slog"

	"github.com/sievekit/sieve/internal/logging"
	"github.com/sievekit/sieve/pkg/registry"
	"github.com/sievekit/sieve/pkg/schema"
)

// Version is the toolkit version, reported by the CLI and the servers.
const Version = "0.3.0"

// Validator is the high-level entry point for the sieve library.
// It wraps a compiled schema and evaluation policy behind a simple API.
type Validator struct {
	schema schema.Schema
	checks *registry.Registry
	strict bool
	logger *slog.Logger
}

// Option defines a functional option for configuring the Validator.
type Option func(*Validator)

// WithStrict makes unknown document fields validation errors.
// The default policy is permissive: unknown fields are ignored.
func WithStrict() Option {
	return func(v *Validator) {
		v.strict = true
	}
}

// WithChecks registers the named predicates available to the "check"
// constraint.
func WithChecks(reg *registry.Registry) Option {
	return func(v *Validator) {
		v.checks = reg
	}
}

// WithLogger sets a custom structured logger for the validator.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New compiles the raw rule mapping and returns a ready Validator.
// A malformed schema fails here, once, before any document is evaluated.
func New(raw map[string]any, opts ...Option) (*Validator, error) {
	v := &Validator{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(v)
	}

	var compileOpts []schema.CompileOption
	if v.checks != nil {
		compileOpts = append(compileOpts, schema.WithChecks(v.checks))
	}

	compiled, err := schema.Compile(raw, compileOpts...)
	if err != nil {
		return nil, err
	}
	v.schema = compiled
	return v, nil
}

// NewFromSchema wraps an already compiled schema.
func NewFromSchema(s schema.Schema, opts ...Option) *Validator {
	v := &Validator{schema: s, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate evaluates a document against the compiled schema.
// It never fails for document content; every violation is collected in
// the Result. Safe for concurrent use.
func (v *Validator) Validate(document map[string]any) *schema.Result {
	var opts []schema.Option
	if v.strict {
		opts = append(opts, schema.Strict())
	}

	res := schema.Evaluate(v.schema, document, opts...)
	v.logger.Debug("document evaluated", "valid", res.Valid, "fields_in_error", len(res.Errors))
	return res
}

// Schema returns the compiled schema.
func (v *Validator) Schema() schema.Schema {
	return v.schema
}
