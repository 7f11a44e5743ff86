package eth

// MultiConfig describes every chain the service talks to, keyed by network
// name (the Infura subdomain where one exists).
type MultiConfig struct {
	Networks map[string]NetworkConfig `mapstructure:"networks" yaml:"networks"`
}

type NetworkConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	ChainID uint64 `mapstructure:"chainId" yaml:"chainId"`
	// Infura enables URL injection from the provider project id.
	Infura bool  `mapstructure:"infura" yaml:"infura"`
	RPCs   []RPC `mapstructure:"rpcs" yaml:"rpcs"`
}

type RPC struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

func (mc *MultiConfig) Normalize() {
	if mc == nil {
		return
	}
	for name, n := range mc.Networks {
		n.Name = name
		mc.Networks[name] = n
	}
}
