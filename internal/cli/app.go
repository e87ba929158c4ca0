package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/greenline/internal/activity"
	"github.com/roach88/greenline/internal/backup"
	"github.com/roach88/greenline/internal/clock"
	"github.com/roach88/greenline/internal/collection"
	"github.com/roach88/greenline/internal/config"
	"github.com/roach88/greenline/internal/kv"
	"github.com/roach88/greenline/internal/query"
)

// app is the console wired for one command invocation.
type app struct {
	ctx      context.Context
	out      *OutputFormatter
	logger   *slog.Logger
	clock    clock.Clock
	cfg      config.Config
	store    kv.Store
	log      *activity.Log
	pictures *collection.Pictures
	leaders  *collection.Leaders
	backup   *backup.Service
	query    *query.Engine
}

// newOutput builds the formatter for cmd, stamping a fresh trace id.
func newOutput(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	traces := opts.Traces
	if traces == nil {
		traces = UUIDv7Generator{}
	}
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   traces.Generate(),
	}
}

// openApp resolves the configuration, opens the backend and builds the
// stores. Failures are reported through the formatter before returning.
func openApp(cmd *cobra.Command, opts *RootOptions) (*app, error) {
	out := newOutput(cmd, opts)

	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler).With("trace_id", out.TraceID)

	cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile})
	if err != nil {
		return nil, out.Fail("failed to load config", err)
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if err := cfg.Validate(); err != nil {
		return nil, out.Fail("invalid configuration", err)
	}
	lang, _ := cfg.Language()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("opening backend", "backend", cfg.Backend, "db", cfg.Database)
	st, err := kv.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, out.Fail("failed to open backend", err)
	}

	c := opts.Clock
	if c == nil {
		c = clock.System{}
	}
	log := activity.NewLog(st, cfg.ActivityCapacity, logger)
	storeOpts := collection.Options{Clock: c, IDs: clock.NewIDs(c), Logger: logger}
	pictures := collection.NewPictures(st, log, storeOpts)
	leaders := collection.NewLeaders(st, log, storeOpts)

	return &app{
		ctx:      ctx,
		out:      out,
		logger:   logger,
		clock:    c,
		cfg:      cfg,
		store:    st,
		log:      log,
		pictures: pictures,
		leaders:  leaders,
		backup:   backup.New(pictures, leaders, log, c, logger),
		query:    query.New(lang),
	}, nil
}

// Close releases the backend.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing backend", "error", err)
	}
}
