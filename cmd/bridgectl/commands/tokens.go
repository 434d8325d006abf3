package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bridgequote/internal/domain/entity"
)

func tokensCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "tokens <chain-id>",
		Short: "Search tokens on a chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chainID, err := entity.NewChainID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			appCtx.metadata.EnsureLoaded(ctx, chainID)
			tokens := appCtx.metadata.FilterTokens(ctx, chainID, query)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), tokens)
			}
			if len(tokens) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no tokens found on chain %s\n", chainID)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tNAME\tDECIMALS\tADDRESS")
			for _, t := range tokens {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.Symbol, t.Name, t.Decimals, t.ContractAddress)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive symbol or name filter")
	return cmd
}
