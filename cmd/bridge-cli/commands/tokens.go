package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newTokensCommand(opts *rootOptions) *cobra.Command {
	var from, to uint64

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List the tokens offered on a route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := opts.client.Tokens(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(list))
			for _, t := range list {
				rows = append(rows, []string{
					t.Symbol,
					t.Address.Hex(),
					strconv.Itoa(int(t.Decimals)),
					yesNo(t.IsNative()),
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"Symbol", "Address", "Decimals", "Native"}, rows)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 1, "source chain id")
	cmd.Flags().Uint64Var(&to, "to", 10, "destination chain id")
	return cmd
}
