package tokens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Token describes a bridgeable token on one chain.
type Token struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Name     string         `json:"name,omitempty"`
	Decimals uint8          `json:"decimals"`
	LogoURI  string         `json:"logoUri,omitempty"`

	// Native marks the chain's gas asset, even when it has a contract address
	// (e.g. OVM ETH).
	Native bool `json:"native,omitempty"`
}

func (t Token) IsNative() bool {
	return t.Native || t.Address == (common.Address{})
}

func (t Token) IsZero() bool {
	return t.Address == (common.Address{}) && t.Symbol == ""
}

func (t Token) SameSymbol(other Token) bool {
	return strings.EqualFold(t.Symbol, other.Symbol)
}

// Config is the on-disk form of a Token.
type Config struct {
	Address  string `mapstructure:"address" yaml:"address"`
	Symbol   string `mapstructure:"symbol" yaml:"symbol"`
	Name     string `mapstructure:"name" yaml:"name"`
	Decimals uint8  `mapstructure:"decimals" yaml:"decimals"`
	LogoURI  string `mapstructure:"logoURI" yaml:"logoURI"`
	Native   bool   `mapstructure:"native" yaml:"native"`
}

// RouteConfig restricts the tokens offered from one chain to another.
// An empty Symbols list offers every token of the source chain.
type RouteConfig struct {
	From    uint64   `mapstructure:"from" yaml:"from"`
	To      uint64   `mapstructure:"to" yaml:"to"`
	Symbols []string `mapstructure:"symbols" yaml:"symbols"`
}

// Lister yields the tokens offered for a transfer from one chain to another.
type Lister interface {
	ForRoute(from, to uint64) []Token
}

// Fixed is a Lister that offers the same tokens for every route.
type Fixed []Token

func (f Fixed) ForRoute(_, _ uint64) []Token {
	out := make([]Token, len(f))
	copy(out, f)
	return out
}
