package formats

import (
	"fmt"
	"strings"

	"github.com/zjrosen/ebi/internal/registry"
)

// Host representations: languages cross the boundary as their canonical
// text, event logs leave as lists of activity sequences and cannot come back.
var (
	EventLogInterop = &registry.InteropHandler{
		Name:     "event log",
		HostType: "list[list[str]]",
		ToHost: func(v any) (any, error) {
			log, ok := v.(*EventLog)
			if !ok {
				return nil, fmt.Errorf("expected an event log, got %T", v)
			}
			out := make([][]string, log.Len())
			for i, t := range log.Traces() {
				out[i] = t
			}
			return out, nil
		},
	}

	LanguageInterop = &registry.InteropHandler{
		Name:     "finite language",
		HostType: "str",
		ToHost:   stringer,
		FromHost: func(v any) (any, error) {
			text, err := hostText(v)
			if err != nil {
				return nil, err
			}
			return ParseLanguage(strings.NewReader(text))
		},
	}

	StochasticLanguageInterop = &registry.InteropHandler{
		Name:     "finite stochastic language",
		HostType: "str",
		ToHost:   stringer,
		FromHost: func(v any) (any, error) {
			text, err := hostText(v)
			if err != nil {
				return nil, err
			}
			return ParseStochasticLanguage(strings.NewReader(text))
		},
	}
)

func stringer(v any) (any, error) {
	s, ok := v.(fmt.Stringer)
	if !ok {
		return nil, fmt.Errorf("%T has no canonical text", v)
	}
	return s.String(), nil
}

func hostText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", fmt.Errorf("expected text, got %T", v)
	}
}
