package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/export"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

const (
	listFormatText = "text"
	listFormatJSON = "json"
)

func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "add <text...>",
		Short:         "Append a task to the list",
		Args:          usageArgs(cobra.MinimumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				task, err := s.Add(cmd.Context(), text)
				if errors.Is(err, store.ErrEmptyText) {
					return WrapExitError(ExitCommandError, "add", err)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "add", err)
				}
				fmt.Fprintln(out(cmd), task.ID)
				return nil
			})
		},
	}
}

type listOptions struct {
	filter string
	format string
}

func NewListCommand(opts *RootOptions) *cobra.Command {
	lo := &listOptions{}
	cmd := &cobra.Command{
		Use:           "list",
		Aliases:       []string{"ls"},
		Short:         "Print the tasks in list order",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseFilter(lo.filter)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --filter", err)
			}
			if lo.format != listFormatText && lo.format != listFormatJSON {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid --format %q (want text or json)", lo.format))
			}
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				tasks := s.Filter(filter)
				if lo.format == listFormatJSON {
					return export.Write(out(cmd), tasks, export.FormatJSON)
				}
				return writeTaskLines(out(cmd), tasks, s)
			})
		},
	}
	cmd.Flags().StringVar(&lo.filter, "filter", string(model.FilterAll), "all, active or completed")
	cmd.Flags().StringVar(&lo.format, "format", listFormatText, "text or json")
	return cmd
}

// writeTaskLines prints one task per line, prefixed with its store index
// so the index can be passed to move.
func writeTaskLines(w io.Writer, tasks []model.Task, s *store.Store) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks here!")
		return err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, taskLine(s.Index(t.ID), t)); err != nil {
			return err
		}
	}
	return nil
}

func taskLine(index int, t model.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%2d %s %s", index, box, t.Text)
	if t.Priority != model.PriorityMedium {
		fmt.Fprintf(&b, " !%s", strings.ToLower(string(t.Priority)))
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, " (Due: %s)", t.DueDate.Display())
	}
	for _, l := range t.Labels {
		fmt.Fprintf(&b, " #%s", l)
	}
	if n := len(t.Subtasks); n > 0 {
		fmt.Fprintf(&b, " %d/%d", t.CompletedSubtasks(), n)
	}
	fmt.Fprintf(&b, "  %s", t.ID)
	return b.String()
}

func NewToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "toggle <id>",
		Short:         "Flip the completed state of a task",
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				if err := s.ToggleCompleted(cmd.Context(), args[0]); err != nil {
					return WrapExitError(ExitFailure, "toggle", err)
				}
				t, _ := s.Get(args[0])
				state := "active"
				if t.Completed {
					state = "completed"
				}
				fmt.Fprintf(out(cmd), "%s %s\n", t.ID, state)
				return nil
			})
		},
	}
}

func NewRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <id>",
		Aliases:       []string{"delete"},
		Short:         "Delete a task",
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				if err := s.Remove(cmd.Context(), args[0]); err != nil {
					return WrapExitError(ExitFailure, "rm", err)
				}
				return nil
			})
		},
	}
}

func NewMoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "move <from> <to>",
		Short:         "Move the task at one store index to another",
		Args:          usageArgs(cobra.ExactArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				err := s.Reorder(cmd.Context(), from, to)
				if errors.Is(err, store.ErrIndexOutOfRange) {
					return WrapExitError(ExitCommandError, "move", err)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "move", err)
				}
				return nil
			})
		},
	}
}

func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid index %q", raw))
	}
	return n, nil
}
