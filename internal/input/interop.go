package input

import (
	"fmt"
	"math/big"

	"github.com/zjrosen/ebi/internal/registry"
)

// Interop handlers of the primitive slots. Host values are plain strings and
// numbers.
var (
	TextInterop = []*registry.InteropHandler{{
		Name:     "text",
		HostType: "string",
		FromHost: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string, got %T", v)
			}
			return TextInput(s), nil
		},
		ToHost: func(v any) (any, error) {
			t, ok := v.(TextInput)
			if !ok {
				return nil, fmt.Errorf("expected text, got %T", v)
			}
			return string(t), nil
		},
	}}

	IntegerInterop = []*registry.InteropHandler{{
		Name:     "integer",
		HostType: "integer",
		FromHost: integerFromHost,
		ToHost: func(v any) (any, error) {
			n, ok := v.(IntegerInput)
			if !ok {
				return nil, fmt.Errorf("expected an integer, got %T", v)
			}
			return uint64(n), nil
		},
	}}

	FractionInterop = []*registry.InteropHandler{{
		Name:     "fraction",
		HostType: "fraction",
		FromHost: fractionFromHost,
	}}
)

func integerFromHost(v any) (any, error) {
	switch n := v.(type) {
	case uint64:
		return IntegerInput(n), nil
	case uint:
		return IntegerInput(n), nil
	case int:
		if n < 0 {
			return nil, fmt.Errorf("%d is negative", n)
		}
		return IntegerInput(n), nil
	case int64:
		if n < 0 {
			return nil, fmt.Errorf("%d is negative", n)
		}
		return IntegerInput(n), nil
	default:
		return nil, fmt.Errorf("expected an integer, got %T", v)
	}
}

func fractionFromHost(v any) (any, error) {
	switch f := v.(type) {
	case string:
		return FractionInput(f), nil
	case *big.Rat:
		return FractionInput(f.RatString()), nil
	case int:
		return FractionInput(fmt.Sprint(f)), nil
	default:
		return nil, fmt.Errorf("expected a fraction, got %T", v)
	}
}
