package eth

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// NetworkForChainID finds a configured network by chain id.
func NetworkForChainID(cfg *MultiConfig, chainID uint64) (NetworkConfig, error) {
	if cfg == nil {
		return NetworkConfig{}, errors.New("eth: nil config")
	}
	if chainID == 0 {
		return NetworkConfig{}, errors.New("eth: missing chain id")
	}

	for name, n := range cfg.Networks {
		if n.ChainID == chainID {
			if n.Name == "" {
				n.Name = name
			}
			return n, nil
		}
	}
	return NetworkConfig{}, errors.Newf("eth: chain %d not configured", chainID)
}

// PrimaryURL returns the first non-empty RPC URL of a network.
func PrimaryURL(n NetworkConfig) (string, error) {
	for _, rpc := range n.RPCs {
		if u := strings.TrimSpace(rpc.URL); u != "" {
			return u, nil
		}
	}
	return "", errors.Newf("eth: network %q has no rpc url", n.Name)
}
