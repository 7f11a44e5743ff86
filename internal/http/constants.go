package http

import "time"

// Routes
const (
	PathHealth        = "/health"
	PathMetrics       = "/metrics"
	PathSuggestedFees = "/suggested-fees"
	PathQuote         = "/quote"
	PathTokens        = "/tokens"
	PathBalances      = "/balances"
	PathConfig        = "/config"
	APIPrefix         = "/api"
)

// Query keys
const (
	QueryAmount    = "amount"
	QueryL2Token   = "l2Token"
	QueryChainID   = "chainId"
	QueryFromChain = "fromChain"
	QueryToChain   = "toChain"
	QueryAccount   = "account"
)

const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"

	HeaderRequestID = "X-Request-ID"
	ContextKeyReqID = "request_id"
)

const (
	HTTPErrorInternalText   = "internal error"
	HTTPErrorNoTokensText   = "no tokens configured for chain"
	HTTPErrorBadChainText   = "invalid chain id"
	HTTPErrorBadAccountText = "invalid account"
)

// Metric endpoint labels
const (
	EndpointSuggestedFees = "suggested-fees"
	EndpointQuote         = "quote"
)

const (
	DefaultQuoteTimeout    = 20 * time.Second
	DefaultBalancesTimeout = 15 * time.Second
)
