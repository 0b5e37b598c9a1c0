package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pg2sqlite/cmd/pg2sqlite/opts"
	"github.com/walteh/pg2sqlite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check if destination schema files are up to date",
		Long: `Check computes the translation in memory and diffs it against the
existing destination files without writing anything.
It will:
1. Read each source schema file
2. Run the replacement pipeline in memory
3. Compare the result against the destination file
4. Report missing, stale and up-to-date destinations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			op, err := operation.NewCheckOperation(operation.Options{
				Config:     opts.Config,
				Logger:     opts.Logger,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating check operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return errors.Errorf("checking schema files: %w", err)
			}

			return nil
		},
	}

	return cmd
}
