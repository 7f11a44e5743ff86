package apiclient

import (
	"context"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usdc  = common.HexToAddress("0x7F5c764cBc14f9669B88837ca1490cCa17c31607")
	owner = common.HexToAddress("0x9a8f92a830a5cB89a3816e3D267CB7791c16b04D")
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tokens", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("fromChain"))
		assert.Equal(t, "1", r.URL.Query().Get("toChain"))
		_, _ = w.Write([]byte(`{"fromChain":10,"toChain":1,"tokens":[{"address":"0x7f5c764cbc14f9669b88837ca1490cca17c31607","symbol":"USDC","decimals":6}]}`))
	})
	mux.HandleFunc("/api/balances", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, owner.Hex(), r.URL.Query().Get("account"))
		_, _ = w.Write([]byte(`{"chainId":10,"account":"` + owner.Hex() + `","balances":{"` + usdc.Hex() + `":"1500000"}}`))
	})
	mux.HandleFunc("/api/suggested-fees", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("amount") == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"missing amount"}`))
			return
		}
		_, _ = w.Write([]byte(`{"slowFeePct":"1000","fastFeePct":"2000"}`))
	})
	mux.HandleFunc("/api/quote", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("chainId") == "5" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no whitelisted token found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"slowFeePct":"1","fastFeePct":"2","slowFeeTotal":"3","instantFeeTotal":"4","gasPrice":"5",` +
			`"isAmountTooLow":true,"isLiquidityInsufficient":false,` +
			`"l1Token":"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48","bridgePool":"0x190978cC580f5A48D55A4A20D0A952FA1dA3C057"}`))
	})
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nativeFeeBufferWei":"100000000000000000","feeLimitPercent":25,"l1ChainId":1}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(newServer(t).URL+"/", 0)
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("localhost:8080", 0)
	require.Error(t, err)
}

func TestTokensAndBalances(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	list, err := c.Tokens(ctx, 10, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, usdc, list[0].Address)
	assert.Equal(t, uint8(6), list[0].Decimals)

	set, err := c.Balances(ctx, 10, owner)
	require.NoError(t, err)
	bal, ok := set.Of(usdc)
	require.True(t, ok)
	assert.Equal(t, int64(1_500_000), bal.Int64())
}

func TestSuggestedFees(t *testing.T) {
	c := newClient(t)

	slow, fast, err := c.SuggestedFees(context.Background(), big.NewInt(10), usdc, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), slow.Int64())
	assert.Equal(t, int64(2000), fast.Int64())

	_, _, err = c.SuggestedFees(context.Background(), nil, usdc, 10)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "missing amount", apiErr.Message)
}

func TestQuote(t *testing.T) {
	c := newClient(t)

	q, err := c.Quote(context.Background(), big.NewInt(10), usdc, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.SlowFeePct.Int64())
	assert.Equal(t, int64(4), q.InstantFeeTotal.Int64())
	assert.Equal(t, int64(5), q.GasPrice.Int64())
	assert.True(t, q.IsAmountTooLow)
	assert.Equal(t, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), q.L1Token)

	_, err = c.Quote(context.Background(), big.NewInt(10), usdc, 5)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestConfig(t *testing.T) {
	c := newClient(t)

	cfg, err := c.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000", cfg.NativeFeeBuffer.String())
	assert.Equal(t, int64(25), cfg.FeeLimitPercent)
	assert.Equal(t, uint64(1), cfg.L1ChainID)
}
