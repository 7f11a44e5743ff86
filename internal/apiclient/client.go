// Package apiclient talks to the bridge-fees HTTP API.
package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/balances"
	"github.com/quantumauth-io/bridge-fees/internal/fees"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
)

const DefaultTimeout = 30 * time.Second

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("api: invalid base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(u.String(), "/"),
	}, nil
}

// Quote is a full fee quote as served by /api/quote.
type Quote struct {
	fees.Quote
	SlowFeeTotal    *big.Int
	InstantFeeTotal *big.Int
	GasPrice        *big.Int
	L1Token         common.Address
	BridgePool      common.Address
}

// Tokens wraps GET /api/tokens.
func (c *Client) Tokens(ctx context.Context, from, to uint64) ([]tokens.Token, error) {
	q := url.Values{}
	q.Set("fromChain", strconv.FormatUint(from, 10))
	q.Set("toChain", strconv.FormatUint(to, 10))

	var out tokensResponse
	if err := c.get(ctx, "/api/tokens", q, &out); err != nil {
		return nil, errors.Wrap(err, "tokens")
	}
	return out.Tokens, nil
}

// Balances wraps GET /api/balances.
func (c *Client) Balances(ctx context.Context, chainID uint64, account common.Address) (balances.Set, error) {
	q := url.Values{}
	q.Set("chainId", strconv.FormatUint(chainID, 10))
	q.Set("account", account.Hex())

	var out balancesResponse
	if err := c.get(ctx, "/api/balances", q, &out); err != nil {
		return nil, errors.Wrap(err, "balances")
	}
	return balances.ParseSet(out.Balances)
}

// SuggestedFees wraps GET /api/suggested-fees.
func (c *Client) SuggestedFees(ctx context.Context, amount *big.Int, l2Token common.Address, chainID uint64) (slowPct, fastPct *big.Int, err error) {
	var out suggestedFeesResponse
	if err := c.get(ctx, "/api/suggested-fees", quoteQuery(amount, l2Token, chainID), &out); err != nil {
		return nil, nil, errors.Wrap(err, "suggested fees")
	}
	if slowPct, err = parseBig("slowFeePct", out.SlowFeePct); err != nil {
		return nil, nil, err
	}
	if fastPct, err = parseBig("fastFeePct", out.FastFeePct); err != nil {
		return nil, nil, err
	}
	return slowPct, fastPct, nil
}

// Quote wraps GET /api/quote.
func (c *Client) Quote(ctx context.Context, amount *big.Int, l2Token common.Address, chainID uint64) (*Quote, error) {
	var out quoteResponse
	if err := c.get(ctx, "/api/quote", quoteQuery(amount, l2Token, chainID), &out); err != nil {
		return nil, errors.Wrap(err, "quote")
	}

	q := &Quote{
		Quote: fees.Quote{
			IsAmountTooLow:          out.IsAmountTooLow,
			IsLiquidityInsufficient: out.IsLiquidityInsufficient,
		},
		L1Token:    common.HexToAddress(out.L1Token),
		BridgePool: common.HexToAddress(out.BridgePool),
	}
	fields := []struct {
		name string
		raw  string
		dst  **big.Int
	}{
		{"slowFeePct", out.SlowFeePct, &q.SlowFeePct},
		{"fastFeePct", out.FastFeePct, &q.FastFeePct},
		{"slowFeeTotal", out.SlowFeeTotal, &q.SlowFeeTotal},
		{"instantFeeTotal", out.InstantFeeTotal, &q.InstantFeeTotal},
		{"gasPrice", out.GasPrice, &q.GasPrice},
	}
	for _, f := range fields {
		v, err := parseBig(f.name, f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return q, nil
}

// ServerConfig is what GET /api/config reports.
type ServerConfig struct {
	NativeFeeBuffer *big.Int
	FeeLimitPercent int64
	L1ChainID       uint64
}

// Config wraps GET /api/config.
func (c *Client) Config(ctx context.Context) (*ServerConfig, error) {
	var out configResponse
	if err := c.get(ctx, "/api/config", nil, &out); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	buffer, err := parseBig("nativeFeeBufferWei", out.NativeFeeBufferWei)
	if err != nil {
		return nil, err
	}
	return &ServerConfig{
		NativeFeeBuffer: buffer,
		FeeLimitPercent: out.FeeLimitPercent,
		L1ChainID:       out.L1ChainID,
	}, nil
}

func quoteQuery(amount *big.Int, l2Token common.Address, chainID uint64) url.Values {
	q := url.Values{}
	if amount != nil {
		q.Set("amount", amount.String())
	}
	q.Set("l2Token", l2Token.Hex())
	q.Set("chainId", strconv.FormatUint(chainID, 10))
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

func parseBig(field, raw string) (*big.Int, error) {
	if raw == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, errors.Newf("api: %s %q is not an integer", field, raw)
	}
	return v, nil
}
