package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/cli"
	"github.com/sandeepkv93/todo/internal/config"
)

func main() {
	cfg := config.FromEnv(config.Default())

	// The TUI owns the terminal, so logs only go to a file when asked for.
	logger := slog.New(slog.DiscardHandler)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "todo")
		if err != nil {
			fmt.Fprintf(os.Stderr, "todo: open log file: %v\n", err)
			os.Exit(cli.ExitFailure)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand(cfg, logger).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "todo: %v\n", err)
		logger.Error("command failed", "err", err)
		os.Exit(cli.GetExitCode(err))
	}
}
