package http

import "github.com/quantumauth-io/bridge-fees/internal/tokens"

// suggestedFeesRes is the body of GET /api/suggested-fees. Percentages are
// decimal strings scaled by 1e18.
type suggestedFeesRes struct {
	SlowFeePct string `json:"slowFeePct"`
	FastFeePct string `json:"fastFeePct"`
}

type quoteRes struct {
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

type tokensRes struct {
	FromChain uint64         `json:"fromChain"`
	ToChain   uint64         `json:"toChain"`
	Tokens    []tokens.Token `json:"tokens"`
}

type balancesRes struct {
	ChainID  uint64            `json:"chainId"`
	Account  string            `json:"account"`
	Balances map[string]string `json:"balances"`
}

// configRes is the body of GET /api/config: the settings a client form must
// share with the server.
type configRes struct {
	NativeFeeBufferWei string `json:"nativeFeeBufferWei"`
	FeeLimitPercent    int64  `json:"feeLimitPercent"`
	L1ChainID          uint64 `json:"l1ChainId"`
}
