package eth

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

// Clients dials one ethclient per chain on first use and reuses it.
type Clients struct {
	cfg *MultiConfig

	mu      sync.Mutex
	byChain map[uint64]*ethclient.Client
}

func NewFromConfig(cfg *MultiConfig) (*Clients, error) {
	if cfg == nil {
		return nil, errors.New("eth: nil config")
	}
	if len(cfg.Networks) == 0 {
		return nil, errors.New("eth: no networks configured")
	}
	return &Clients{
		cfg:     cfg,
		byChain: make(map[uint64]*ethclient.Client),
	}, nil
}

// ForChain returns (and caches) the client for chainID.
func (c *Clients) ForChain(ctx context.Context, chainID uint64) (*ethclient.Client, error) {
	c.mu.Lock()
	if existing := c.byChain[chainID]; existing != nil {
		c.mu.Unlock()
		return existing, nil
	}
	c.mu.Unlock()

	network, err := NetworkForChainID(c.cfg, chainID)
	if err != nil {
		return nil, err
	}
	url, err := PrimaryURL(network)
	if err != nil {
		return nil, err
	}

	// Dial outside the lock
	dialed, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", network.Name)
	}

	c.mu.Lock()
	if existing := c.byChain[chainID]; existing != nil {
		c.mu.Unlock()
		dialed.Close()
		return existing, nil
	}
	c.byChain[chainID] = dialed
	c.mu.Unlock()

	log.Info("dialed chain", "network", network.Name, "chainId", chainID, "host", hostOf(url))
	return dialed, nil
}

// Close closes all cached clients (call on shutdown).
func (c *Clients) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, cl := range c.byChain {
		cl.Close()
		delete(c.byChain, id)
	}
}

// hostOf strips the path so provider keys never reach the logs.
func hostOf(url string) string {
	s := url
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
