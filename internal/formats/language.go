// Package formats declares the file formats ebi can read and the process-wide
// catalog of their handlers.
package formats

import (
	"iter"
	"math/big"
	"slices"
	"strings"
)

// Trace is a sequence of activities.
type Trace []string

// String joins the activities with spaces.
func (t Trace) String() string {
	return strings.Join(t, " ")
}

func (t Trace) key() string {
	return strings.Join(t, "\x00")
}

// Weighted is a trace with its probability.
type Weighted struct {
	Trace       Trace
	Probability *big.Rat
}

// FiniteLanguage is a finite set of traces.
type FiniteLanguage interface {
	Traces() []Trace
	Len() int
}

// FiniteStochasticLanguage is a finite set of traces with probabilities.
type FiniteStochasticLanguage interface {
	FiniteLanguage
	Entries() []Weighted
}

// QueriableStochasticLanguage can be asked for the probability of a trace.
type QueriableStochasticLanguage interface {
	Probability(trace Trace) *big.Rat
}

// IterableStochasticLanguage walks over its traces.
type IterableStochasticLanguage interface {
	All() iter.Seq2[Trace, *big.Rat]
}

// Language is a finite language. Traces are distinct and kept in the order
// they were first added.
type Language struct {
	traces []Trace
	index  map[string]bool
}

// NewLanguage returns the language of the given traces; duplicates collapse.
func NewLanguage(traces ...Trace) *Language {
	l := &Language{index: make(map[string]bool)}
	for _, t := range traces {
		l.add(t)
	}
	return l
}

func (l *Language) add(t Trace) {
	if l.index[t.key()] {
		return
	}
	l.index[t.key()] = true
	l.traces = append(l.traces, slices.Clone(t))
}

// Traces returns the traces.
func (l *Language) Traces() []Trace {
	return slices.Clone(l.traces)
}

// Len returns the number of traces.
func (l *Language) Len() int {
	return len(l.traces)
}

// Contains reports whether t is in the language.
func (l *Language) Contains(t Trace) bool {
	return l.index[t.key()]
}

// StochasticLanguage is a finite stochastic language. Entries keep file order.
type StochasticLanguage struct {
	entries []Weighted
	index   map[string]int
}

func newStochasticLanguage() *StochasticLanguage {
	return &StochasticLanguage{index: make(map[string]int)}
}

// Traces returns the traces without their probabilities.
func (s *StochasticLanguage) Traces() []Trace {
	out := make([]Trace, len(s.entries))
	for i, e := range s.entries {
		out[i] = slices.Clone(e.Trace)
	}
	return out
}

// Len returns the number of traces.
func (s *StochasticLanguage) Len() int {
	return len(s.entries)
}

// Entries returns the traces with their probabilities.
func (s *StochasticLanguage) Entries() []Weighted {
	out := make([]Weighted, len(s.entries))
	for i, e := range s.entries {
		out[i] = Weighted{Trace: slices.Clone(e.Trace), Probability: new(big.Rat).Set(e.Probability)}
	}
	return out
}

// Probability returns the probability of trace, zero when it is absent.
func (s *StochasticLanguage) Probability(trace Trace) *big.Rat {
	i, ok := s.index[trace.key()]
	if !ok {
		return new(big.Rat)
	}
	return new(big.Rat).Set(s.entries[i].Probability)
}

// All yields every trace with its probability in file order.
func (s *StochasticLanguage) All() iter.Seq2[Trace, *big.Rat] {
	return func(yield func(Trace, *big.Rat) bool) {
		for _, e := range s.entries {
			if !yield(slices.Clone(e.Trace), new(big.Rat).Set(e.Probability)) {
				return
			}
		}
	}
}

// Support returns the finite language of the traces.
func (s *StochasticLanguage) Support() *Language {
	return NewLanguage(s.Traces()...)
}

// MostLikely returns the n most likely traces, most likely first. Ties are
// broken on the activities.
func MostLikely(l FiniteStochasticLanguage, n int) []Weighted {
	entries := sortedByProbability(l)
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// AtLeast returns the traces with a probability of at least p, most likely
// first.
func AtLeast(l FiniteStochasticLanguage, p *big.Rat) []Weighted {
	entries := sortedByProbability(l)
	i := 0
	for i < len(entries) && entries[i].Probability.Cmp(p) >= 0 {
		i++
	}
	return entries[:i]
}

func sortedByProbability(l FiniteStochasticLanguage) []Weighted {
	entries := l.Entries()
	slices.SortStableFunc(entries, func(a, b Weighted) int {
		if c := b.Probability.Cmp(a.Probability); c != 0 {
			return c
		}
		return slices.Compare(a.Trace, b.Trace)
	})
	return entries
}
