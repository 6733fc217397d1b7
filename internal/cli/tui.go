package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/scheduler"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/update"
)

// runTUI drives the interactive list until the user quits.
func runTUI(ctx context.Context, opts *RootOptions, s *store.Store) error {
	engine := scheduler.NewEngine(opts.Config.SchedulerBuffer, scheduler.WithLogger(opts.Logger))
	engine.Start()
	defer engine.Stop()

	modelOpts := []update.Option{
		update.WithContext(ctx),
		update.WithLogger(opts.Logger),
		update.WithScheduler(engine),
	}
	if opts.Config.DesktopNotifications {
		modelOpts = append(modelOpts, update.WithNotifier(update.ExecDesktopNotifier{}))
	}

	m := update.NewModelWithConfig(s, opts.Config, modelOpts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitFailure, "todo failed", fmt.Errorf("run tui: %w", err))
	}
	return nil
}
