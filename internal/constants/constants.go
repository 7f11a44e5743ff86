package constants

const (
	AppName = "bridge-fees"

	// NativeAddr is the sentinel the fee calculator understands as native ETH.
	NativeAddr = "0x0000000000000000000000000000000000000000"

	// Mainnet WETH. Resolved L1 tokens equal to this are quoted as native ETH.
	WETHAddr = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

	UMAAddr = "0x04Fa0d235C4abf4BcF4787aF4CF447DE572eF828"

	// BridgeAdminAddr emits WhitelistToken for every approved L1/L2 pair.
	BridgeAdminAddr = "0x30B44C676A05F1264d1dE9cC31dB5F2A945186b6"

	MainnetChainID = 1
	MainnetNetwork = "mainnet"
)

// Fee estimation
const (
	// NativeFeeBufferEth is reserved from native balances to cover the deposit tx.
	NativeFeeBufferEth = "0.004"

	FeeLimitPercentDefault = 25
	FeePctScaleDecimals    = 18
)

// Assets / formatting
const (
	NativeAssetSymbolETH   = "ETH"
	NativeAssetNameEther   = "Ether"
	NativeAssetDecimalsETH = 18

	BalanceHumanMaxDecimalsDefault = 6
)

// RPC provider names
const (
	EthRPCProviderInfuraName = "Infura"
)
