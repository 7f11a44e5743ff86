package http

import (
	"context"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/bridge-fees/internal/balances"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/metrics"
	"github.com/quantumauth-io/bridge-fees/internal/quote"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/quantumauth-io/bridge-fees/internal/units"
)

type QuoteService interface {
	SuggestedFees(ctx context.Context, p quote.Params) (quote.Result, error)
	Quote(ctx context.Context, p quote.Params) (quote.Result, error)
}

type TokenCatalog interface {
	tokens.Lister
	ForChain(chainID uint64) []tokens.Token
}

// BackendFunc hands out the chain backend used for balance lookups.
type BackendFunc func(ctx context.Context, chainID uint64) (balances.Backend, error)

// Settings are the server settings clients need to validate a transfer the
// same way the server quotes it.
type Settings struct {
	NativeFeeBuffer *big.Int
	FeeLimitPercent int64
	L1ChainID       uint64
}

type Handler struct {
	quotes   QuoteService
	catalog  TokenCatalog
	backends BackendFunc
	settings Settings
	metrics  *metrics.MetricManager

	quoteTimeout    time.Duration
	balancesTimeout time.Duration
}

// NewHandler wires the handlers. Zero settings fall back to the defaults.
func NewHandler(quotes QuoteService, catalog TokenCatalog, backends BackendFunc, settings Settings, m *metrics.MetricManager) *Handler {
	if m == nil {
		m = metrics.NewMetricManager()
	}
	if settings.NativeFeeBuffer == nil {
		settings.NativeFeeBuffer = units.MustParseEther(constants.NativeFeeBufferEth)
	}
	if settings.FeeLimitPercent == 0 {
		settings.FeeLimitPercent = constants.FeeLimitPercentDefault
	}
	if settings.L1ChainID == 0 {
		settings.L1ChainID = constants.MainnetChainID
	}
	return &Handler{
		quotes:          quotes,
		catalog:         catalog,
		backends:        backends,
		settings:        settings,
		metrics:         m,
		quoteTimeout:    DefaultQuoteTimeout,
		balancesTimeout: DefaultBalancesTimeout,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{JSONKeyStatus: "ok"})
}

// GET /api/config
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, configRes{
		NativeFeeBufferWei: bigString(h.settings.NativeFeeBuffer),
		FeeLimitPercent:    h.settings.FeeLimitPercent,
		L1ChainID:          h.settings.L1ChainID,
	})
}

// GET /api/suggested-fees?amount=&l2Token=&chainId=
func (h *Handler) SuggestedFees(c *gin.Context) {
	res, ok := h.runQuote(c, EndpointSuggestedFees, h.quotes.SuggestedFees)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, suggestedFeesRes{
		SlowFeePct: bigString(res.Quote.SlowFeePct),
		FastFeePct: bigString(res.Quote.FastFeePct),
	})
}

// GET /api/quote?amount=&l2Token=&chainId=
func (h *Handler) Quote(c *gin.Context) {
	res, ok := h.runQuote(c, EndpointQuote, h.quotes.Quote)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, quoteRes{
		SlowFeePct:              bigString(res.Quote.SlowFeePct),
		FastFeePct:              bigString(res.Quote.FastFeePct),
		SlowFeeTotal:            bigString(res.Details.Slow.Total),
		InstantFeeTotal:         bigString(res.Details.Instant.Total),
		GasPrice:                bigString(res.Details.GasPrice),
		IsAmountTooLow:          res.Quote.IsAmountTooLow,
		IsLiquidityInsufficient: res.Quote.IsLiquidityInsufficient,
		L1Token:                 res.L1Token.Hex(),
		BridgePool:              res.Event.BridgePool.Hex(),
	})
}

// runQuote validates the query before any chain call, then runs fn under the
// quote timeout. It writes the error response itself.
func (h *Handler) runQuote(
	c *gin.Context,
	endpoint string,
	fn func(context.Context, quote.Params) (quote.Result, error),
) (quote.Result, bool) {
	start := time.Now()

	params, err := quote.ParseQuery(c.QueryArray(QueryAmount), c.QueryArray(QueryL2Token), c.QueryArray(QueryChainID))
	if err != nil {
		h.metrics.ObserveQuote(endpoint, metrics.OutcomeInvalid, time.Since(start))
		writeError(c, err)
		return quote.Result{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.quoteTimeout)
	defer cancel()

	res, err := fn(ctx, params)
	if err != nil {
		h.metrics.ObserveQuote(endpoint, outcomeFor(err), time.Since(start))
		writeError(c, err)
		return quote.Result{}, false
	}

	outcome := metrics.OutcomeOK
	switch {
	case res.Quote.IsAmountTooLow:
		outcome = metrics.OutcomeAmountLow
	case res.Quote.IsLiquidityInsufficient:
		outcome = metrics.OutcomeNoLiquidity
	}
	h.metrics.ObserveQuote(endpoint, outcome, time.Since(start))
	if res.Details.GasPrice != nil {
		f, _ := res.Details.GasPrice.Float64()
		h.metrics.GasPrice.Set(f)
	}
	return res, true
}

// GET /api/tokens?fromChain=&toChain=
func (h *Handler) Tokens(c *gin.Context) {
	from, ok := parseChainID(c.Query(QueryFromChain))
	if !ok {
		writeBadRequest(c, HTTPErrorBadChainText+": "+QueryFromChain)
		return
	}
	to, ok := parseChainID(c.Query(QueryToChain))
	if !ok {
		writeBadRequest(c, HTTPErrorBadChainText+": "+QueryToChain)
		return
	}

	list := h.catalog.ForRoute(from, to)
	if list == nil {
		list = []tokens.Token{}
	}
	c.JSON(http.StatusOK, tokensRes{FromChain: from, ToChain: to, Tokens: list})
}

// GET /api/balances?chainId=&account=
func (h *Handler) Balances(c *gin.Context) {
	chainID, ok := parseChainID(c.Query(QueryChainID))
	if !ok {
		writeBadRequest(c, HTTPErrorBadChainText)
		return
	}
	account := strings.TrimSpace(c.Query(QueryAccount))
	if !common.IsHexAddress(account) {
		writeBadRequest(c, HTTPErrorBadAccountText)
		return
	}

	list := h.catalog.ForChain(chainID)
	if len(list) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{JSONKeyError: HTTPErrorNoTokensText})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.balancesTimeout)
	defer cancel()

	backend, err := h.backends(ctx, chainID)
	if err != nil {
		writeError(c, err)
		return
	}

	owner := common.HexToAddress(account)
	set, err := balances.NewFetcher(backend).Balances(ctx, list, owner)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, balancesRes{
		ChainID:  chainID,
		Account:  owner.Hex(),
		Balances: set.Strings(),
	})
}
