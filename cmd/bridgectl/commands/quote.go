package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bridgequote/internal/application/port"
	"bridgequote/internal/domain/amount"
	"bridgequote/internal/domain/entity"
	"bridgequote/internal/domain/ranking"
)

func quoteCmd() *cobra.Command {
	var (
		fromChain, toChain string
		fromToken, toToken string
		value, slippage    string
		policy             string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compare bridge routes for a transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortPolicy, err := entity.ParseSortPolicy(policy)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			result, err := appCtx.bridge.Compare(ctx, port.CompareRequest{
				FromChainID:      entity.ChainID(fromChain),
				ToChainID:        entity.ChainID(toChain),
				FromTokenAddress: fromToken,
				ToTokenAddress:   toToken,
				Amount:           value,
				Slippage:         slippage,
				Policy:           sortPolicy,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}

			out := cmd.OutOrStdout()
			if len(result.Routes) == 0 {
				fmt.Fprintln(out, "no routes available for this transfer")
				return nil
			}

			fmt.Fprintf(out, "%s -> %s, %s (%s)\n",
				appCtx.metadata.ChainName(ctx, result.Selection.SourceChain),
				appCtx.metadata.ChainName(ctx, result.Selection.DestChain),
				sortPolicy.Description(),
				result.ExchangeRate,
			)

			dest := result.Selection.DestToken
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tBRIDGE\tRECEIVE\tMIN RECEIVED\tFEE USD\tTIME\tLABEL")
			for _, r := range result.Routes {
				fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%dm\t%s\n",
					r.Rank,
					r.BridgeName,
					display(r.ToTokenAmount, dest.Decimals), dest.Symbol,
					display(r.MinimumReceived, dest.Decimals),
					fee(r.TotalFeeUSD),
					ranking.EstimatedMinutes(r.EstimatedTime),
					r.RouteLabel,
				)
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&fromChain, "from-chain", "", "source chain id")
	f.StringVar(&toChain, "to-chain", "", "destination chain id")
	f.StringVar(&fromToken, "from-token", "", "source token contract address")
	f.StringVar(&toToken, "to-token", "", "destination token contract address")
	f.StringVar(&value, "amount", "", "amount of the source token, e.g. 1.5")
	f.StringVar(&slippage, "slippage", "", "slippage percent (default from config)")
	f.StringVar(&policy, "policy", "optimal", "ranking policy: optimal, fastest or most_tokens")
	for _, name := range []string{"from-chain", "to-chain", "from-token", "to-token", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func display(baseUnits string, decimals int32) string {
	s, err := amount.FromBaseUnits(baseUnits, decimals, amount.DefaultPrecision)
	if err != nil {
		return "-"
	}
	return s
}

func fee(usd string) string {
	s, err := amount.FormatFeeUSD(usd)
	if err != nil {
		return "-"
	}
	return s
}
