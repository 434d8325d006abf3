package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func chainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List supported chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := appCtx.metadata.LoadChains(ctx); err != nil {
				return err
			}
			chains := appCtx.metadata.Chains(ctx)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), chains)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSHORT\tMAINNET\tTOKENS")
			for _, c := range chains {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\n", c.ID, c.Name, c.ShortName, c.IsMainnet, c.TokenCount)
			}
			return tw.Flush()
		},
	}
}
