package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/export"
	"github.com/sandeepkv93/todo/internal/store"
)

type exportOptions struct {
	format string
	output string
}

func NewExportCommand(opts *RootOptions) *cobra.Command {
	eo := &exportOptions{}
	formats := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		formats = append(formats, string(f))
	}
	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write the whole task list as json, yaml or toml",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(eo.format)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --format", err)
			}
			return withStore(cmd.Context(), opts, func(s *store.Store) error {
				if eo.output == "" || eo.output == "-" {
					return export.Write(out(cmd), s.Tasks(), format)
				}
				return writeExportFile(eo.output, s, format)
			})
		},
	}
	cmd.Flags().StringVar(&eo.format, "format", string(export.FormatJSON), strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&eo.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeExportFile(path string, s *store.Store, format export.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return WrapExitError(ExitFailure, "create export file", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = WrapExitError(ExitFailure, "close export file", cerr)
		}
	}()
	if err := export.Write(f, s.Tasks(), format); err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("write %s export", format), err)
	}
	return nil
}
