package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/bridge-fees/internal/apiclient"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/fees"
	"github.com/quantumauth-io/bridge-fees/internal/form"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/quantumauth-io/bridge-fees/internal/units"
	"github.com/spf13/cobra"
)

const maxPromptAttempts = 5

var (
	ErrNotSendable = errors.New("transfer cannot be sent")
	ErrNoAmount    = errors.New("no amount to send")
)

type sendOptions struct {
	from, to uint64
	account  string
	symbol   string
	amount   string
	max      bool
}

func newSendCommand(root *rootOptions) *cobra.Command {
	opts := sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate a transfer: token, amount, balance, fees and pool liquidity",
		Long: `send fills the transfer form the way a wallet UI would: it picks the token,
parses the amount, checks it against the account balance (keeping a small
buffer of native ETH for gas), then asks the API for a fee quote and reports
the one error that blocks the transfer, if any.

Without --amount or --max the amount is prompted for when stdin is a terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd.Context(), root.client, opts, stdinPrompter(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().Uint64Var(&opts.from, "from", 10, "source chain id")
	cmd.Flags().Uint64Var(&opts.to, "to", 1, "destination chain id")
	cmd.Flags().StringVar(&opts.account, "account", "", "sending account, enables the balance check")
	cmd.Flags().StringVar(&opts.symbol, "token", "", "token symbol (default: first token of the route)")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "amount in token units, e.g. 1.5")
	cmd.Flags().BoolVar(&opts.max, "max", false, "send the whole available balance")
	cmd.MarkFlagsMutuallyExclusive("amount", "max")
	return cmd
}

func runSend(ctx context.Context, api API, opts sendOptions, prompt Prompter, out io.Writer) error {
	list, err := api.Tokens(ctx, opts.from, opts.to)
	if err != nil {
		return err
	}

	srvCfg, err := api.Config(ctx)
	if err != nil {
		return err
	}

	f := form.New(tokens.Fixed(list), srvCfg.NativeFeeBuffer)
	f.SetRoute(opts.from, opts.to)
	if f.Token().IsZero() {
		return errors.Newf("no tokens offered from chain %d to chain %d", opts.from, opts.to)
	}

	if sym := strings.TrimSpace(opts.symbol); sym != "" {
		want := tokens.Token{Symbol: sym}
		found := false
		for _, t := range f.Tokens() {
			if t.SameSymbol(want) {
				if err := f.SelectToken(t.Address); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			return errors.Newf("token %s is not offered from chain %d to chain %d", sym, opts.from, opts.to)
		}
	}
	tok := f.Token()

	if opts.account != "" {
		owner, err := parseAccount(opts.account)
		if err != nil {
			return err
		}
		set, err := api.Balances(ctx, opts.from, owner)
		if err != nil {
			return err
		}
		f.SetBalances(set)
	}

	switch {
	case opts.max:
		if _, ok := f.Available(); !ok {
			return errors.New("--max needs --account")
		}
		f.Max()
	case opts.amount != "":
		f.SetInput(opts.amount)
	case prompt != nil:
		askAmount(f, prompt, out)
	}

	if form.IsParsing(f.Err()) {
		_, _ = fmt.Fprintf(out, "✗ %v\n", f.Err())
		return f.Err()
	}
	if f.Amount().Sign() == 0 {
		return ErrNoAmount
	}

	var q *fees.Quote
	var full *apiclient.Quote
	// fees are quoted for deposits leaving an L2
	if opts.from != constants.MainnetChainID {
		full, err = api.Quote(ctx, f.Amount(), tok.Address, opts.from)
		if err != nil {
			return err
		}
		q = &full.Quote
	}

	printSummary(out, f, full)

	if err := f.DisplayError(q); err != nil {
		_, _ = fmt.Fprintf(out, "✗ %v\n", err)
		return errors.Mark(err, ErrNotSendable)
	}
	if opts.account == "" {
		_, _ = fmt.Fprintln(out, "balance not checked, pass --account to validate it")
		return nil
	}
	if !f.CanSend(q) {
		return ErrNotSendable
	}
	_, _ = fmt.Fprintln(out, "✓ ready to send")
	return nil
}

// askAmount prompts until the input parses and fits the balance, or the user
// gives up with an empty line.
func askAmount(f *form.Form, prompt Prompter, out io.Writer) {
	label := fmt.Sprintf("Amount of %s", f.Token().Symbol)
	if avail, ok := f.Available(); ok {
		label += fmt.Sprintf(" (max %s)", units.FormatUnits(avail, f.Token().Decimals))
	}

	for i := 0; i < maxPromptAttempts; i++ {
		line, ok := prompt(label)
		if !ok {
			return
		}
		f.SetInput(line)
		if f.Err() == nil {
			return
		}
		_, _ = fmt.Fprintf(out, "✗ %v\n", f.Err())
	}
}

func printSummary(out io.Writer, f *form.Form, q *apiclient.Quote) {
	tok := f.Token()
	rows := [][]string{
		{"Token", fmt.Sprintf("%s (%s)", tok.Symbol, tok.Address.Hex())},
		{"Amount", units.FormatUnits(f.Amount(), tok.Decimals)},
	}
	if avail, ok := f.Available(); ok {
		rows = append(rows, []string{"Available", units.FormatUnits(avail, tok.Decimals)})
	}
	if q != nil {
		rows = append(rows,
			[]string{"L1 token", q.L1Token.Hex()},
			[]string{"Slow fee", fmt.Sprintf("%s %s (%s)", units.FormatUnits(q.SlowFeeTotal, tok.Decimals), tok.Symbol, percent(q.SlowFeePct))},
			[]string{"Instant fee", fmt.Sprintf("%s %s (%s)", units.FormatUnits(q.InstantFeeTotal, tok.Decimals), tok.Symbol, percent(q.FastFeePct))},
		)
	}
	renderTable(out, []string{"Field", "Value"}, rows)
}
