package fees

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/quantumauth-io/quantum-go-utils/retry"
	"github.com/shopspring/decimal"
)

const (
	CoingeckoDefaultBaseURL = "https://api.coingecko.com/api/v3"
	coingeckoPlatform       = "ethereum"
	coingeckoVsCurrency     = "eth"
)

// ErrPriceUnavailable marks feed answers that a retry cannot change: the token
// is not listed or the request itself was rejected.
var ErrPriceUnavailable = errors.New("price unavailable")

// Coingecko is a PriceFeed backed by the simple/token_price endpoint.
type Coingecko struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewCoingecko(baseURL string, timeout time.Duration) *Coingecko {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = CoingeckoDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Coingecko{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// TokenPriceETH retries transient failures until the feed answers or the
// call's deadline (bounded by the feed timeout) expires. ErrPriceUnavailable
// failures are returned at once.
func (c *Coingecko) TokenPriceETH(ctx context.Context, token common.Address) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := retry.DefaultConfig()
	cfg.InitialDelayBeforeRetrying = 100 * time.Millisecond
	cfg.MaxDelayBeforeRetrying = time.Second

	var price decimal.Decimal
	_, err := retry.Retry(ctx, cfg,
		func(ctx context.Context) ([]interface{}, error) {
			p, err := c.fetch(ctx, token)
			if err != nil {
				log.Warn("coingecko price fetch failed", "token", token.Hex(), "error", err)
				return nil, err
			}
			price = p
			return nil, nil
		},
		retryable,
		"coingecko token price")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return price, nil
}

func (c *Coingecko) fetch(ctx context.Context, token common.Address) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("contract_addresses", strings.ToLower(token.Hex()))
	q.Set("vs_currencies", coingeckoVsCurrency)
	u := fmt.Sprintf("%s/simple/token_price/%s?%s", c.baseURL, coingeckoPlatform, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "coingecko request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "coingecko read body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := errors.Newf("coingecko status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if permanentStatus(resp.StatusCode) {
			err = errors.Mark(err, ErrPriceUnavailable)
		}
		return decimal.Decimal{}, err
	}

	return parseTokenPrice(body, token)
}

// parseTokenPrice reads {"<lowercase address>": {"eth": <number>}}.
func parseTokenPrice(body []byte, token common.Address) (decimal.Decimal, error) {
	var out map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(body, &out); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "coingecko decode")
	}
	for addr, prices := range out {
		if !strings.EqualFold(addr, token.Hex()) {
			continue
		}
		p, ok := prices[coingeckoVsCurrency]
		if !ok {
			break
		}
		return p, nil
	}
	return decimal.Decimal{}, errors.Mark(
		errors.Newf("coingecko: no %s price for %s", coingeckoVsCurrency, token.Hex()),
		ErrPriceUnavailable)
}

func retryable(err error) bool {
	return !errors.Is(err, ErrPriceUnavailable)
}

// permanentStatus is any 4xx except rate limiting.
func permanentStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}
