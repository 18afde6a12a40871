package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/tweetscrape/internal/config"
	"github.com/roach88/tweetscrape/internal/model"
	"github.com/roach88/tweetscrape/internal/store"
)

// env is the per-invocation state shared by all commands.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	out    *OutputFormatter
}

// setup loads configuration and builds the logger for one invocation.
func (o *RootOptions) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, &configError{err: err}
	}
	if o.Database != "" {
		cfg.Database.Path = o.Database
	}

	// Configure logging based on verbose flag
	logLevel := cfg.Log.SlogLevel()
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})

	return &env{
		cfg:    cfg,
		logger: slog.New(handler),
		out:    o.formatter(cmd),
	}, nil
}

// withSession runs fn inside one store transaction and commits it if fn
// succeeds. Any failure leaves the store untouched.
func (e *env) withSession(ctx context.Context, fn func(ctx context.Context, tx *store.Tx) error) error {
	e.logger.Debug("opening database", "path", e.cfg.Database.Path)
	st, err := store.Open(e.cfg.Database.Path)
	if err != nil {
		return &model.StorageError{Op: "open database " + e.cfg.Database.Path, Err: err}
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			e.logger.Error("error closing database", "error", closeErr)
		}
	}()

	tx, err := st.Begin(ctx)
	if err != nil {
		return &model.StorageError{Op: "begin session", Err: err}
	}
	defer tx.Rollback()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &model.StorageError{Op: "commit", Err: err}
	}
	e.out.VerboseLog("committed %s", e.cfg.Database.Path)
	return nil
}
