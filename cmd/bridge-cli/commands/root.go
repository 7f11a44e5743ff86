// Package commands implements the bridge-cli subcommands.
package commands

import (
	"context"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/apiclient"
	"github.com/quantumauth-io/bridge-fees/internal/balances"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/spf13/cobra"
)

const (
	EnvAPIURL     = "BRIDGE_API_URL"
	defaultAPIURL = "http://localhost:8080"
)

// API is the part of the bridge-fees API the commands use.
type API interface {
	Tokens(ctx context.Context, from, to uint64) ([]tokens.Token, error)
	Balances(ctx context.Context, chainID uint64, account common.Address) (balances.Set, error)
	Quote(ctx context.Context, amount *big.Int, l2Token common.Address, chainID uint64) (*apiclient.Quote, error)
	Config(ctx context.Context) (*apiclient.ServerConfig, error)
}

type rootOptions struct {
	apiURL  string
	timeout time.Duration
	client  API
}

func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "bridge-cli",
		Short:         "Quote bridge fees and validate transfers against the bridge-fees API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.client != nil {
				return nil
			}
			c, err := apiclient.NewClient(opts.apiURL, opts.timeout)
			if err != nil {
				return err
			}
			opts.client = c
			return nil
		},
	}

	apiURL := strings.TrimSpace(os.Getenv(EnvAPIURL))
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "bridge-fees API base url (env "+EnvAPIURL+")")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", apiclient.DefaultTimeout, "per-request timeout")

	rootCmd.AddCommand(
		newTokensCommand(opts),
		newBalancesCommand(opts),
		newSendCommand(opts),
	)
	return rootCmd
}
