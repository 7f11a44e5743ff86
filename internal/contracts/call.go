package contracts

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Caller is the read-only subset of ethclient.Client used for view calls.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// CallUint256 calls a view method returning a single uint256.
func CallUint256(ctx context.Context, c Caller, parsed abi.ABI, to common.Address, method string, args ...any) (*big.Int, error) {
	out, err := call(ctx, c, parsed, to, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Newf("%s: unexpected return type %T", method, out[0])
	}
	return v, nil
}

// CallUint8 calls a view method returning a single uint8.
func CallUint8(ctx context.Context, c Caller, parsed abi.ABI, to common.Address, method string, args ...any) (uint8, error) {
	out, err := call(ctx, c, parsed, to, method, args...)
	if err != nil {
		return 0, err
	}
	v, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Newf("%s: unexpected return type %T", method, out[0])
	}
	return v, nil
}

// CallString calls a view method returning a single string.
func CallString(ctx context.Context, c Caller, parsed abi.ABI, to common.Address, method string, args ...any) (string, error) {
	out, err := call(ctx, c, parsed, to, method, args...)
	if err != nil {
		return "", err
	}
	v, ok := out[0].(string)
	if !ok {
		return "", errors.Newf("%s: unexpected return type %T", method, out[0])
	}
	return v, nil
}

func call(ctx context.Context, c Caller, parsed abi.ABI, to common.Address, method string, args ...any) ([]any, error) {
	input, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: pack", method)
	}

	result, err := c.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: call %s", method, to.Hex())
	}

	out, err := parsed.Unpack(method, result)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: unpack", method)
	}
	if len(out) == 0 {
		return nil, errors.Newf("%s: empty result", method)
	}
	return out, nil
}
