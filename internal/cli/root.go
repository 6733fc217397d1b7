// Package cli wires the todo command line: the terminal UI as the root
// command plus scriptable subcommands over the same task store.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/store"
)

const sqliteFile = "todo.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config  config.Config
	Backend string
	Data    string
	Key     string
	Logger  *slog.Logger
}

// runInteractive starts the terminal UI; tests swap it out.
var runInteractive = runTUI

func NewRootCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := &RootOptions{Config: cfg, Logger: logger}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "A personal task list for the terminal",
		Long: `todo keeps an ordered personal task list with priorities, due dates,
labels, subtasks and comments.

Run without a subcommand to open the interactive list.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := storage.ParseKind(opts.Backend); err != nil {
				return WrapExitError(ExitCommandError, "invalid --backend", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				return runInteractive(cmd.Context(), opts, s)
			})
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", cfg.Backend, "storage backend (json|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.Data, "data", cfg.DataPath, "data directory")
	cmd.PersistentFlags().StringVar(&opts.Key, "key", cfg.StorageKey, "storage key holding the task list")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewMoveCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

// backendPath maps the data directory to what each backend opens.
func backendPath(kind storage.Kind, data string) string {
	if kind == storage.KindSQLite {
		return filepath.Join(data, sqliteFile)
	}
	return data
}

// withStore opens the configured backend, loads the task list and closes
// the backend after fn returns.
func withStore(ctx context.Context, opts *RootOptions, fn func(*store.Store) error) error {
	return withBackend(opts, func(backend storage.Backend) error {
		s, err := store.Open(ctx, store.NewKeyPersister(backend, opts.Key), store.WithLogger(opts.Logger))
		if err != nil {
			return WrapExitError(ExitFailure, "load tasks", err)
		}
		return fn(s)
	})
}

func withBackend(opts *RootOptions, fn func(storage.Backend) error) (err error) {
	kind, err := storage.ParseKind(opts.Backend)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --backend", err)
	}
	path := backendPath(kind, opts.Data)
	if kind == storage.KindSQLite {
		if err := os.MkdirAll(opts.Data, 0o755); err != nil {
			return WrapExitError(ExitFailure, "create data dir", err)
		}
	}
	opts.Logger.Debug("opening backend", "kind", kind, "path", path)
	backend, err := storage.Open(kind, path)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("open %s backend", kind), err)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil && err == nil {
			err = WrapExitError(ExitFailure, "close backend", cerr)
		}
	}()

	return fn(backend)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// usageArgs marks argument count errors as command errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}
