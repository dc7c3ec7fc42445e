package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonforge/cbamcalc/internal/config"
	"github.com/carbonforge/cbamcalc/internal/logging"
	"github.com/carbonforge/cbamcalc/internal/refdata"
)

// ctxKey namespaces the values the root command stores on the context.
type ctxKey int

const (
	ctxKeyConfig ctxKey = iota
	ctxKeyOptions
	ctxKeyVersion
)

// setupLogging configures the package logger from config and flags and
// attaches it to the command context via commandContext.
func setupLogging(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) {
	loggingCfg := cfg.Logging
	if opts.debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		cmd.PrintErrf("Warning: could not open log file, logging to console: %s\n", result.FallbackReason)
	}
}

// commandContext builds the context every subcommand runs with: the
// logger, a trace ID, and the resolved config/options. The trace ID is
// stamped onto the context logger, so every event a command emits
// carries it.
func commandContext(cmd *cobra.Command, cfg *config.Config, opts *rootOptions, ver string) context.Context {
	ctx := cmd.Context()
	traceID := logging.TraceIDFromContext(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	traced := logger.With().Str("trace_id", traceID).Logger()
	ctx = traced.WithContext(ctx)
	ctx = context.WithValue(ctx, ctxKeyConfig, cfg)
	ctx = context.WithValue(ctx, ctxKeyOptions, opts)
	ctx = context.WithValue(ctx, ctxKeyVersion, ver)
	return ctx
}

// configFromContext returns the config stored by the root command.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(ctxKeyConfig).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// optionsFromContext returns the persistent flag values.
func optionsFromContext(ctx context.Context) *rootOptions {
	if opts, ok := ctx.Value(ctxKeyOptions).(*rootOptions); ok {
		return opts
	}
	return &rootOptions{}
}

// outputFormat resolves the effective output format: flag, then config,
// then a terminal-aware default (table on a TTY, json when piped).
func outputFormat(ctx context.Context) string {
	if f := optionsFromContext(ctx).output; f != "" {
		return f
	}
	if f := configFromContext(ctx).Output.Format; f != "" {
		return f
	}
	if isTerminal(os.Stdout) {
		return "table"
	}
	return "json"
}

// loadTables resolves the reference tables: the --refdata flag wins,
// then the configured pack, then the built-in defaults.
func loadTables(ctx context.Context) (refdata.Tables, error) {
	opts := optionsFromContext(ctx)
	cfg := configFromContext(ctx)

	path := opts.refdata
	if path == "" {
		path = cfg.Refdata.Pack
	}
	if path == "" {
		return refdata.Default(), nil
	}

	ver, _ := ctx.Value(ctxKeyVersion).(string)
	tables, err := refdata.LoadPack(path, ver)
	if err != nil {
		return refdata.Tables{}, err
	}
	if err := refdata.Validate(tables); err != nil {
		return refdata.Tables{}, fmt.Errorf("reference pack failed validation: %w", err)
	}
	return tables, nil
}
