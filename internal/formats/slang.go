package formats

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/zjrosen/ebi/internal/registry"
)

const stochasticLanguageHeader = "finite stochastic language"

// StochasticLanguageHandler reads finite stochastic languages (.slang).
var StochasticLanguageHandler = registry.NewHandler("finite stochastic language", "slang").
	ImportsTrait(registry.CapabilityFiniteLanguage, func(r io.Reader) (any, error) {
		s, err := ParseStochasticLanguage(r)
		if err != nil {
			return nil, err
		}
		return s.Support(), nil
	}).
	ImportsTrait(registry.CapabilityFiniteStochasticLanguage, importStochasticLanguage).
	ImportsTrait(registry.CapabilityQueriableStochasticLanguage, importStochasticLanguage).
	ImportsTrait(registry.CapabilityIterableStochasticLanguage, importStochasticLanguage).
	ImportsObject(registry.ObjectFiniteStochasticLanguage, importStochasticLanguage).
	Validator(func(r io.Reader) error {
		_, err := ParseStochasticLanguage(r)
		return err
	}).
	Interop(StochasticLanguageInterop).
	MustBuild()

func importStochasticLanguage(r io.Reader) (any, error) {
	return ParseStochasticLanguage(r)
}

// ParseStochasticLanguage reads a .slang file. Probabilities must lie in
// [0, 1], traces must be distinct and a non-empty language must sum to 1.
func ParseStochasticLanguage(r io.Reader) (*StochasticLanguage, error) {
	lines := newLineReader(r)
	if err := lines.header(stochasticLanguageHeader); err != nil {
		return nil, err
	}
	n, err := lines.count("the number of traces")
	if err != nil {
		return nil, err
	}

	s := newStochasticLanguage()
	sum := new(big.Rat)
	one := big.NewRat(1, 1)
	for i := 0; i < n; i++ {
		p, err := lines.fraction(fmt.Sprintf("the probability of trace %d", i))
		if err != nil {
			return nil, err
		}
		if p.Sign() < 0 || p.Cmp(one) > 0 {
			return nil, fmt.Errorf("line %d: probability %s of trace %d is not between 0 and 1", lines.number, p.RatString(), i)
		}
		trace, err := lines.trace(i)
		if err != nil {
			return nil, err
		}
		if err := s.add(trace, p); err != nil {
			return nil, fmt.Errorf("trace %d: %w", i, err)
		}
		sum.Add(sum, p)
	}
	if err := lines.end(); err != nil {
		return nil, err
	}
	if n > 0 && sum.Cmp(one) != 0 {
		return nil, fmt.Errorf("probabilities sum to %s instead of 1", sum.RatString())
	}
	return s, nil
}

func (s *StochasticLanguage) add(t Trace, p *big.Rat) error {
	if _, ok := s.index[t.key()]; ok {
		return fmt.Errorf("duplicate trace `%s`", t)
	}
	s.index[t.key()] = len(s.entries)
	s.entries = append(s.entries, Weighted{Trace: t, Probability: p})
	return nil
}

// mustAdd is add for callers that only pass distinct traces.
func (s *StochasticLanguage) mustAdd(t Trace, p *big.Rat) {
	if err := s.add(t, p); err != nil {
		panic(err)
	}
}

// String renders the language in the .slang format.
func (s *StochasticLanguage) String() string {
	return FormatStochastic(s.entries)
}

// FormatStochastic renders entries in the .slang format.
func FormatStochastic(entries []Weighted) string {
	var b strings.Builder
	b.WriteString(stochasticLanguageHeader + "\n")
	fmt.Fprintf(&b, "# number of traces\n%d\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(&b, "# trace %d\n# probability\n%s\n", i, e.Probability.RatString())
		writeTrace(&b, e.Trace)
	}
	return b.String()
}

// Summary describes the language in one line.
func (s *StochasticLanguage) Summary() string {
	return fmt.Sprintf("finite stochastic language with %d traces", len(s.entries))
}
