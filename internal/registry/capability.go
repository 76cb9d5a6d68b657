// Package registry holds the static registries of ebi: the capabilities an
// object may expose, the concrete object kinds that can be serialised, and
// the ordered catalog of format handlers that import them.
package registry

import "fmt"

// Capability is an abstract behaviour an imported object can satisfy,
// independent of the concrete kind it was serialised as.
type Capability int

const (
	// CapabilityFiniteLanguage is a finite set of traces.
	CapabilityFiniteLanguage Capability = iota
	// CapabilityFiniteStochasticLanguage is a finite set of traces with probabilities.
	CapabilityFiniteStochasticLanguage
	// CapabilityQueriableStochasticLanguage can be queried for the probability of a trace.
	CapabilityQueriableStochasticLanguage
	// CapabilityIterableStochasticLanguage can walk over its traces, potentially forever.
	CapabilityIterableStochasticLanguage
	// CapabilityEventLog gives access to traces and their attributes.
	CapabilityEventLog
	// CapabilitySemantics can walk over states using transitions.
	CapabilitySemantics
	// CapabilityStochasticSemantics can walk over states using transitions with weights.
	CapabilityStochasticSemantics
	// CapabilityStochasticDeterministicSemantics can walk over states using activities.
	CapabilityStochasticDeterministicSemantics
)

var capabilityNames = [...]string{
	CapabilityFiniteLanguage:                   "finite language",
	CapabilityFiniteStochasticLanguage:         "finite stochastic language",
	CapabilityQueriableStochasticLanguage:      "queriable stochastic language",
	CapabilityIterableStochasticLanguage:       "iterable stochastic language",
	CapabilityEventLog:                         "event log",
	CapabilitySemantics:                        "semantics",
	CapabilityStochasticSemantics:              "stochastic semantics",
	CapabilityStochasticDeterministicSemantics: "stochastic deterministic semantics",
}

var capabilityArticles = [...]string{
	CapabilityFiniteLanguage:                   "a",
	CapabilityFiniteStochasticLanguage:         "a",
	CapabilityQueriableStochasticLanguage:      "a",
	CapabilityIterableStochasticLanguage:       "an",
	CapabilityEventLog:                         "an",
	CapabilitySemantics:                        "a",
	CapabilityStochasticSemantics:              "a",
	CapabilityStochasticDeterministicSemantics: "a",
}

// Capabilities returns every capability in declaration order.
func Capabilities() []Capability {
	all := make([]Capability, len(capabilityNames))
	for i := range capabilityNames {
		all[i] = Capability(i)
	}
	return all
}

// IsValid returns true if c is a declared capability.
func (c Capability) IsValid() bool {
	return c >= 0 && int(c) < len(capabilityNames)
}

// String returns the display name of the capability.
func (c Capability) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// Article returns the indefinite article to put in front of String().
func (c Capability) Article() string {
	if !c.IsValid() {
		return "a"
	}
	return capabilityArticles[c]
}

// ParseCapability returns the capability with the given display name.
func ParseCapability(name string) (Capability, error) {
	for _, c := range Capabilities() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
}
