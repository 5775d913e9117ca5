package forge

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// InitializerName is the function called through the proxy on creation
const InitializerName = "initialize"

// ConstructorValues converts string arguments into values for the constructor inputs
func (a *Artifact) ConstructorValues(args []string) ([]interface{}, error) {
	values, err := convertArgs(a.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor of %s: %w", a.Name, err)
	}
	return values, nil
}

// EncodeConstructorArgs returns the ABI encoded constructor arguments
func (a *Artifact) EncodeConstructorArgs(args []string) ([]byte, error) {
	values, err := a.ConstructorValues(args)
	if err != nil {
		return nil, err
	}
	encoded, err := a.ABI.Constructor.Inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("encode constructor args of %s: %w", a.Name, err)
	}
	return encoded, nil
}

// PackInitializer returns the calldata of initialize(args...)
func (a *Artifact) PackInitializer(args []string) ([]byte, error) {
	method, ok := a.ABI.Methods[InitializerName]
	if !ok {
		return nil, fmt.Errorf("%s has no %s function", a.Name, InitializerName)
	}
	values, err := convertArgs(method.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s of %s: %w", InitializerName, a.Name, err)
	}
	data, err := a.ABI.Pack(InitializerName, values...)
	if err != nil {
		return nil, fmt.Errorf("pack %s calldata: %w", InitializerName, err)
	}
	return data, nil
}

// convertArgs maps each string onto the Go type expected by the matching input
func convertArgs(inputs abi.Arguments, args []string) ([]interface{}, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args))
	}
	values := make([]interface{}, len(args))
	for i, input := range inputs {
		v, err := convertArg(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s: %w", name, err)
		}
		values[i] = v
	}
	return values, nil
}

func convertArg(t abi.Type, s string) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case abi.StringTy:
		return s, nil
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		switch t.Size {
		case 8, 16, 32, 64:
		default:
			return n, nil
		}
		return sizedInt(t, n)
	case abi.BytesTy:
		return decodeHex(s)
	case abi.FixedBytesTy:
		b, err := decodeHex(s)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

// sizedInt returns the fixed width Go integer go-ethereum expects for small int types
func sizedInt(t abi.Type, n *big.Int) (interface{}, error) {
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %s overflows uint%d", n, t.Size)
		}
		u := n.Uint64()
		switch t.Size {
		case 8:
			return uint8(u), nil
		case 16:
			return uint16(u), nil
		case 32:
			return uint32(u), nil
		default:
			return u, nil
		}
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, fmt.Errorf("value %s overflows int%d", n, t.Size)
	}
	i := n.Int64()
	switch t.Size {
	case 8:
		return int8(i), nil
	case 16:
		return int16(i), nil
	case 32:
		return int32(i), nil
	default:
		return i, nil
	}
}

func decodeHex(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return b, nil
}
