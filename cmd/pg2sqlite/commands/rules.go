package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/pg2sqlite/cmd/pg2sqlite/opts"
	"github.com/walteh/pg2sqlite/pkg/rules"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the replacement pipeline in order",
		Long: `Rules prints every replacement rule of the stock pipeline in the order
it runs. Each rule sees the cumulative output of all prior rules, so the
position in this listing is significant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, rule := range rules.DefaultRuleset() {
				fmt.Fprintf(out, "%2d. %-35s %s\n", i+1, rule.Name(), rules.Kind(rule))
			}
			return nil
		},
	}

	return cmd
}
