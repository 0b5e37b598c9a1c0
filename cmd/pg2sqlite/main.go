// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/pg2sqlite/cmd/pg2sqlite/commands"
	"github.com/walteh/pg2sqlite/cmd/pg2sqlite/opts"
	pkglog "github.com/walteh/pg2sqlite/pkg/log"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Filled in once flags are parsed
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "pg2sqlite",
		Short: "Translate drizzle Postgres schema files to SQLite",
		Long: `pg2sqlite performs a one-shot textual translation of a drizzle-orm
pg-core schema definition into the equivalent sqlite-core definition,
applying a fixed ordered pipeline of replacement rules.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			loaded, err := newRootOpts(cmd.Context())
			if err != nil {
				return err
			}
			*rootOpts = *loaded
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewConvertCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger := pkglog.NewUserLogger(ctx)
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
