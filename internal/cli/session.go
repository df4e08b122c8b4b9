package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/flagrescue/internal/config"
	"github.com/roach88/flagrescue/internal/props"
	"github.com/roach88/flagrescue/internal/recovery"
	"github.com/roach88/flagrescue/internal/store"
)

// session holds what a command needs once configuration is resolved.
type session struct {
	cfg     *config.Config
	runID   string
	logger  *slog.Logger
	store   props.Store
	tracker *recovery.Tracker
	out     *OutputFormatter
	closeFn func() error
}

// openSession loads config, applies flag overrides, configures logging and
// opens the property store. Callers must Close the session.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if applyFlagOverrides(cfg, opts, cmd) {
		if err := cfg.Validate(); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid flags", err)
		}
	}

	gen := opts.RunIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	runID := gen.Generate()

	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler).With("run_id", runID)

	s := &session{
		cfg:     cfg,
		runID:   runID,
		logger:  logger,
		out:     &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
		closeFn: func() error { return nil },
	}

	if opts.Store != nil {
		s.store = opts.Store
	} else {
		st, closeFn, err := openStore(cfg, logger)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open property store", err)
		}
		s.store = st
		s.closeFn = closeFn
	}
	logger.Debug("property store ready", "backend", cfg.Backend, "gated", cfg.Gated, "threshold", cfg.Threshold)

	s.tracker = recovery.New(s.store, cfg.Threshold, logger)
	return s, nil
}

// Close releases the property store.
func (s *session) Close() {
	if err := s.closeFn(); err != nil {
		s.logger.Error("error closing property store", "error", err)
	}
}

// applyFlagOverrides copies explicitly set flags into cfg and reports
// whether anything changed.
func applyFlagOverrides(cfg *config.Config, opts *RootOptions, cmd *cobra.Command) bool {
	changed := false
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = opts.Backend
		changed = true
	}
	if flags.Changed("db") {
		cfg.Database = opts.Database
		changed = true
	}
	if flags.Changed("gated") {
		cfg.Gated = opts.Gated
		changed = true
	}
	if flags.Changed("threshold") {
		cfg.Threshold = opts.Threshold
		changed = true
	}
	return changed
}

// openStore opens the backend selected by cfg.
func openStore(cfg *config.Config, logger *slog.Logger) (props.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendDevice:
		return props.NewDevice(cfg.GetProp, cfg.SetProp, logger), noop, nil
	case config.BackendSQLite:
		st, err := store.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case config.BackendMemory:
		return props.NewMemory(nil), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
