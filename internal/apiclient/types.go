package apiclient

import (
	"fmt"

	"github.com/quantumauth-io/bridge-fees/internal/tokens"
)

type suggestedFeesResponse struct {
	SlowFeePct string `json:"slowFeePct"`
	FastFeePct string `json:"fastFeePct"`
}

type quoteResponse struct {
	SlowFeePct              string `json:"slowFeePct"`
	FastFeePct              string `json:"fastFeePct"`
	SlowFeeTotal            string `json:"slowFeeTotal"`
	InstantFeeTotal         string `json:"instantFeeTotal"`
	GasPrice                string `json:"gasPrice"`
	IsAmountTooLow          bool   `json:"isAmountTooLow"`
	IsLiquidityInsufficient bool   `json:"isLiquidityInsufficient"`
	L1Token                 string `json:"l1Token"`
	BridgePool              string `json:"bridgePool"`
}

type tokensResponse struct {
	Tokens []tokens.Token `json:"tokens"`
}

type balancesResponse struct {
	Balances map[string]string `json:"balances"`
}

type configResponse struct {
	NativeFeeBufferWei string `json:"nativeFeeBufferWei"`
	FeeLimitPercent    int64  `json:"feeLimitPercent"`
	L1ChainID          uint64 `json:"l1ChainId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}
