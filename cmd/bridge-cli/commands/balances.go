package commands

import (
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/units"
	"github.com/spf13/cobra"
)

func newBalancesCommand(opts *rootOptions) *cobra.Command {
	var (
		from, to uint64
		account  string
	)

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show an account's balances of the tokens offered on a route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := parseAccount(account)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			list, err := opts.client.Tokens(ctx, from, to)
			if err != nil {
				return err
			}
			set, err := opts.client.Balances(ctx, from, owner)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(list))
			for _, t := range list {
				shown := "-"
				if bal, ok := set.Of(t.Address); ok {
					shown = units.FormatUnitsTrim(bal, t.Decimals, constants.BalanceHumanMaxDecimalsDefault)
				}
				rows = append(rows, []string{t.Symbol, shown, t.Address.Hex()})
			}
			renderTable(cmd.OutOrStdout(), []string{"Symbol", "Balance", "Address"}, rows)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 1, "chain id holding the balances")
	cmd.Flags().Uint64Var(&to, "to", 10, "destination chain id, selects the token list")
	cmd.Flags().StringVar(&account, "account", "", "account address")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
