package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pg2sqlite/cmd/pg2sqlite/opts"
	"github.com/walteh/pg2sqlite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewConvertCmd creates a new convert command
func NewConvertCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Translate Postgres schema files to SQLite",
		Long: `Convert reads each configured drizzle pg-core schema file, runs the
ordered replacement pipeline over it and writes the sqlite-core result.
It will:
1. Read the source schema file in full
2. Apply every replacement rule in order
3. Write the destination file atomically, overwriting it
4. Print a completion notice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "convert").Logger().WithContext(ctx)

			op, err := operation.NewConvertOperation(operation.Options{
				Config:     opts.Config,
				Logger:     opts.Logger,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating convert operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), opts.Config.Async)
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("converting schema files: %w", err)
			}

			return nil
		},
	}

	return cmd
}
