package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/eth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedWithInfuraKey(t *testing.T) {
	t.Setenv(EnvInfuraID, "abc123")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	mainnet, err := eth.NetworkForChainID(&cfg.EthNetworks, 1)
	require.NoError(t, err)
	url, err := eth.PrimaryURL(mainnet)
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.infura.io/v3/abc123", url)

	op, err := eth.NetworkForChainID(&cfg.EthNetworks, 10)
	require.NoError(t, err)
	assert.Equal(t, "optimism-mainnet", op.Name)
	assert.Equal(t, "https://optimism-mainnet.infura.io/v3/abc123", op.RPCs[0].URL)

	boba, err := eth.NetworkForChainID(&cfg.EthNetworks, 288)
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.boba.network", boba.RPCs[0].URL)

	assert.Equal(t, int64(25), cfg.Bridge.FeeLimitPercent)
	assert.Equal(t, 8*time.Second, cfg.PriceFeed.Timeout)
	assert.Equal(t, common.HexToAddress("0x30B44C676A05F1264d1dE9cC31dB5F2A945186b6"), cfg.AdminAddress())

	buf, err := cfg.NativeFeeBuffer()
	require.NoError(t, err)
	assert.Equal(t, "4000000000000000", buf.String())

	list, err := cfg.TokenList()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 10, 288, 42161}, list.Chains())
	assert.Len(t, list.ForRoute(1, 288), 5)
	assert.Len(t, list.ForRoute(1, 10), 7)
}

func TestLoadWithoutInfuraKeyFailsValidation(t *testing.T) {
	t.Setenv(EnvInfuraID, "")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvInfuraID)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	t.Setenv(EnvInfuraID, "k")
	t.Setenv("BRIDGE_FEES_SERVER_PORT", "9090")

	dir := t.TempDir()
	override := []byte("bridge:\n  feeLimitPercent: 10\n  fromBlock: 13000000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), override, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cfg.Bridge.FeeLimitPercent)
	assert.Equal(t, uint64(13000000), cfg.Bridge.FromBlock)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	// untouched keys keep their defaults
	assert.Equal(t, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), cfg.WETHAddress())
}

func TestInjectInfuraKeySkipsCustomRPCs(t *testing.T) {
	cfg := &Config{EthNetworks: eth.MultiConfig{Networks: map[string]eth.NetworkConfig{
		"mainnet": {ChainID: 1, Infura: true, RPCs: []eth.RPC{{Name: "old", URL: "http://old"}, {Name: "backup", URL: "http://b"}}},
		"boba":    {ChainID: 288, RPCs: []eth.RPC{{Name: "Boba", URL: "https://mainnet.boba.network"}}},
	}}}

	require.Error(t, cfg.InjectInfuraKey("  "))
	require.NoError(t, cfg.InjectInfuraKey("key"))

	m := cfg.EthNetworks.Networks["mainnet"]
	assert.Equal(t, "https://mainnet.infura.io/v3/key", m.RPCs[0].URL)
	assert.Equal(t, "Infura", m.RPCs[0].Name)
	assert.Equal(t, "http://b", m.RPCs[1].URL)
	assert.Equal(t, "https://mainnet.boba.network", cfg.EthNetworks.Networks["boba"].RPCs[0].URL)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := &Config{
		Bridge: BridgeSettings{
			AdminAddress:       "nope",
			WETHAddress:        "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
			FeeLimitPercent:    0,
			NativeFeeBufferEth: "x",
		},
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"server.port",
		"ethereum.networks is empty",
		"bridge.l1ChainId",
		"bridge.adminAddress",
		"bridge.feeLimitPercent",
		"bridge.nativeFeeBufferEth",
		"priceFeed.baseURL",
		"priceFeed.timeout",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), "bridge.wethAddress")
}
