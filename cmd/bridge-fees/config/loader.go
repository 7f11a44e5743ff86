package config

import (
	"bytes"
	"fmt"
	"math/big"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/eth"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/quantumauth-io/bridge-fees/internal/units"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "BRIDGE_FEES"
	EnvInfuraID = "INFURA_ID"
	configName  = "config"
)

type ServerSettings struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

type BridgeSettings struct {
	L1ChainID          uint64 `mapstructure:"l1ChainId"`
	AdminAddress       string `mapstructure:"adminAddress"`
	WETHAddress        string `mapstructure:"wethAddress"`
	FromBlock          uint64 `mapstructure:"fromBlock"`
	FeeLimitPercent    int64  `mapstructure:"feeLimitPercent"`
	NativeFeeBufferEth string `mapstructure:"nativeFeeBufferEth"`
}

type PriceFeedSettings struct {
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Server      ServerSettings             `mapstructure:"server"`
	EthNetworks eth.MultiConfig            `mapstructure:"ethereum"`
	Bridge      BridgeSettings             `mapstructure:"bridge"`
	PriceFeed   PriceFeedSettings          `mapstructure:"priceFeed"`
	Tokens      map[string][]tokens.Config `mapstructure:"tokens"`
	Routes      []tokens.RouteConfig       `mapstructure:"routes"`
}

func infuraRPC(network string, key string) string {
	return fmt.Sprintf("https://%s.infura.io/v3/%s", network, key)
}

// DefaultPaths are searched, in order, for a config.yaml overriding the
// embedded defaults.
func DefaultPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".config", constants.AppName),
		".",
	}
}

// Load reads the embedded defaults, merges the first config.yaml found in
// paths, then BRIDGE_FEES_* environment overrides. INFURA_ID, when set, is
// injected into every Infura network.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(EmbeddedConfigYAML)); err != nil {
		return nil, errors.Wrap(err, "read embedded config")
	}

	if len(paths) > 0 {
		v.SetConfigName(configName)
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "merge config file")
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.EthNetworks.Normalize()

	if key := strings.TrimSpace(os.Getenv(EnvInfuraID)); key != "" {
		if err := cfg.InjectInfuraKey(key); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InjectInfuraKey fills the first RPC slot of every Infura network with the
// project endpoint for key.
func (c *Config) InjectInfuraKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("infura api key is empty")
	}

	for netName, n := range c.EthNetworks.Networks {
		if !n.Infura {
			continue
		}
		rpcURL := infuraRPC(netName, key)

		if len(n.RPCs) == 0 {
			n.RPCs = []eth.RPC{{Name: constants.EthRPCProviderInfuraName, URL: rpcURL}}
		} else {
			n.RPCs[0].Name = constants.EthRPCProviderInfuraName
			n.RPCs[0].URL = rpcURL
		}

		// map value copy
		c.EthNetworks.Networks[netName] = n
	}

	return nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, errors.Newf(format, args...))
	}

	if strings.TrimSpace(c.Server.Port) == "" {
		add("server.port is required")
	}

	if len(c.EthNetworks.Networks) == 0 {
		add("ethereum.networks is empty")
	}
	for name, n := range c.EthNetworks.Networks {
		if n.ChainID == 0 {
			add("ethereum.networks[%s]: chainId is required", name)
		}
		if _, err := eth.PrimaryURL(n); err != nil {
			if n.Infura {
				add("ethereum.networks[%s]: no rpc url, set %s", name, EnvInfuraID)
			} else {
				add("ethereum.networks[%s]: no rpc url", name)
			}
		}
	}
	if _, err := eth.NetworkForChainID(&c.EthNetworks, c.Bridge.L1ChainID); err != nil {
		add("bridge.l1ChainId: %v", err)
	}

	if !common.IsHexAddress(c.Bridge.AdminAddress) {
		add("bridge.adminAddress %q is not an address", c.Bridge.AdminAddress)
	}
	if !common.IsHexAddress(c.Bridge.WETHAddress) {
		add("bridge.wethAddress %q is not an address", c.Bridge.WETHAddress)
	}
	if c.Bridge.FeeLimitPercent <= 0 || c.Bridge.FeeLimitPercent > 100 {
		add("bridge.feeLimitPercent %d is out of range (1..100)", c.Bridge.FeeLimitPercent)
	}
	if _, err := c.NativeFeeBuffer(); err != nil {
		add("bridge.nativeFeeBufferEth: %v", err)
	}

	if u, err := url.Parse(c.PriceFeed.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("priceFeed.baseURL %q is not an absolute url", c.PriceFeed.BaseURL)
	}
	if c.PriceFeed.Timeout <= 0 {
		add("priceFeed.timeout must be positive")
	}

	if _, err := c.TokenList(); err != nil {
		add("tokens: %v", err)
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c *Config) TokenList() (*tokens.List, error) {
	return tokens.NewList(c.Tokens, c.Routes)
}

func (c *Config) NativeFeeBuffer() (*big.Int, error) {
	v, err := units.ParseEther(c.Bridge.NativeFeeBufferEth)
	if err != nil {
		return nil, err
	}
	if v.Sign() < 0 {
		return nil, errors.New("must not be negative")
	}
	return v, nil
}

func (c *Config) AdminAddress() common.Address {
	return common.HexToAddress(c.Bridge.AdminAddress)
}

func (c *Config) WETHAddress() common.Address {
	return common.HexToAddress(c.Bridge.WETHAddress)
}
