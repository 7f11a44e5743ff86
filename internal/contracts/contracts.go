// Package contracts holds the ABI fragments the service reads from: the
// bridge admin event log, bridge pool reserves and ERC20 balances and
// metadata.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	EventWhitelistToken = "WhitelistToken"

	MethodLiquidReserves  = "liquidReserves"
	MethodPendingReserves = "pendingReserves"

	MethodBalanceOf = "balanceOf"
	MethodDecimals  = "decimals"
	MethodSymbol    = "symbol"
)

const bridgeAdminABI = `[
	{"anonymous":false,"inputs":[
		{"indexed":false,"internalType":"uint256","name":"chainId","type":"uint256"},
		{"indexed":true,"internalType":"address","name":"l1Token","type":"address"},
		{"indexed":true,"internalType":"address","name":"l2Token","type":"address"},
		{"indexed":true,"internalType":"address","name":"bridgePool","type":"address"}
	],"name":"WhitelistToken","type":"event"}
]`

const bridgePoolABI = `[
	{"inputs":[],"name":"liquidReserves","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"pendingReserves","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

var (
	BridgeAdmin = mustParse(bridgeAdminABI)
	BridgePool  = mustParse(bridgePoolABI)
	ERC20       = mustParse(erc20ABI)
)

func mustParse(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("contracts: parse abi: " + err.Error())
	}
	return parsed
}
