package types

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/meenmo/tradelib/loader"
)

// Command lists the registered trade types and the tokens each accepts.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported trade types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Plugin", "Tokens"})
			for _, p := range loader.DefaultRegistry().Plugins() {
				table.Append([]string{p.Name(), strings.Join(p.Types(), ", ")})
			}
			table.Render()
			return nil
		},
	}
}
