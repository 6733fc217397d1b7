package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/storage"
)

func NewResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Delete the stored task list",
		Long:          "reset removes the storage key that holds the task list. The next run starts empty.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewExitError(ExitCommandError, "reset deletes every task; pass --yes to confirm")
			}
			return withBackend(opts, func(backend storage.Backend) error {
				err := backend.Delete(cmd.Context(), opts.Key)
				if err != nil && !errors.Is(err, storage.ErrNotFound) {
					return WrapExitError(ExitFailure, "reset", err)
				}
				fmt.Fprintf(out(cmd), "removed %q\n", opts.Key)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every task")
	return cmd
}
