package tokens

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
)

type routeKey struct {
	from, to uint64
}

// List is the immutable bridgeable token list, per chain and per route.
type List struct {
	byChain map[uint64][]Token
	routes  map[routeKey][]string
}

// NewList validates and normalizes the configured tokens. Chain keys are
// decimal chain ids.
func NewList(byChain map[string][]Config, routes []RouteConfig) (*List, error) {
	l := &List{
		byChain: make(map[uint64][]Token, len(byChain)),
		routes:  make(map[routeKey][]string, len(routes)),
	}

	for rawChain, cfgs := range byChain {
		chainID, err := strconv.ParseUint(strings.TrimSpace(rawChain), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "tokens: invalid chain id %q", rawChain)
		}

		seen := map[common.Address]struct{}{}
		out := make([]Token, 0, len(cfgs))
		for i, c := range cfgs {
			t, err := fromConfig(c)
			if err != nil {
				return nil, errors.Wrapf(err, "tokens[%d][%d]", chainID, i)
			}
			if _, ok := seen[t.Address]; ok {
				return nil, errors.Newf("tokens[%d]: duplicate address %s", chainID, t.Address.Hex())
			}
			seen[t.Address] = struct{}{}
			out = append(out, t)
		}
		l.byChain[chainID] = out
	}

	for _, r := range routes {
		if r.From == 0 || r.To == 0 {
			return nil, errors.Newf("tokens: route %d->%d: chain ids are required", r.From, r.To)
		}
		if _, ok := l.byChain[r.From]; !ok {
			return nil, errors.Newf("tokens: route %d->%d: no tokens configured for chain %d", r.From, r.To, r.From)
		}
		syms := make([]string, 0, len(r.Symbols))
		for _, s := range r.Symbols {
			if s = strings.TrimSpace(s); s != "" {
				syms = append(syms, strings.ToUpper(s))
			}
		}
		l.routes[routeKey{r.From, r.To}] = syms
	}

	return l, nil
}

// Chains returns the configured chain ids in ascending order.
func (l *List) Chains() []uint64 {
	out := make([]uint64, 0, len(l.byChain))
	for id := range l.byChain {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l *List) ForChain(chainID uint64) []Token {
	src := l.byChain[chainID]
	out := make([]Token, len(src))
	copy(out, src)
	return out
}

// ForRoute keeps the configured order of the source chain's tokens.
func (l *List) ForRoute(from, to uint64) []Token {
	all := l.byChain[from]
	syms, ok := l.routes[routeKey{from, to}]
	if !ok || len(syms) == 0 {
		return l.ForChain(from)
	}

	allowed := make(map[string]struct{}, len(syms))
	for _, s := range syms {
		allowed[s] = struct{}{}
	}
	out := make([]Token, 0, len(syms))
	for _, t := range all {
		if _, ok := allowed[strings.ToUpper(t.Symbol)]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (l *List) Lookup(chainID uint64, addr common.Address) (Token, bool) {
	for _, t := range l.byChain[chainID] {
		if t.Address == addr {
			return t, true
		}
	}
	return Token{}, false
}

func fromConfig(c Config) (Token, error) {
	addr, err := NormalizeAddress(c.Address)
	if err != nil {
		return Token{}, err
	}
	sym := strings.TrimSpace(c.Symbol)
	if sym == "" {
		return Token{}, errors.Newf("token %s: symbol is required", addr)
	}
	return Token{
		Address:  common.HexToAddress(addr),
		Symbol:   sym,
		Name:     strings.TrimSpace(c.Name),
		Decimals: c.Decimals,
		LogoURI:  strings.TrimSpace(c.LogoURI),
		Native:   c.Native,
	}, nil
}

// NormalizeAddress returns the checksummed form of a hex address, with or
// without 0x prefix.
func NormalizeAddress(addr string) (string, error) {
	a := strings.TrimSpace(addr)
	if a == "" {
		return "", errors.New("empty address")
	}
	if !strings.HasPrefix(a, "0x") && !strings.HasPrefix(a, "0X") {
		a = "0x" + a
	}
	a = strings.ToLower(a)
	if !common.IsHexAddress(a) {
		return "", errors.Newf("invalid address: %q", addr)
	}
	return common.HexToAddress(a).Hex(), nil
}
