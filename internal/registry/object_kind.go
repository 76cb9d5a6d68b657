package registry

import "fmt"

// ObjectKind is a concrete, nameable shape of object that can be serialised
// and deserialised as a whole.
type ObjectKind int

const (
	ObjectEventLog ObjectKind = iota
	ObjectDirectlyFollowsModel
	ObjectFiniteLanguage
	ObjectFiniteStochasticLanguage
	ObjectLabelledPetriNet
	ObjectStochasticDeterministicFiniteAutomaton
	ObjectStochasticLabelledPetriNet
	ObjectLanguageOfAlignments
	ObjectStochasticLanguageOfAlignments
	ObjectDeterministicFiniteAutomaton
	ObjectProcessTree
	ObjectExecutions
)

var objectKindNames = [...]string{
	ObjectEventLog:                               "event log",
	ObjectDirectlyFollowsModel:                   "directly follows model",
	ObjectFiniteLanguage:                         "finite language",
	ObjectFiniteStochasticLanguage:               "finite stochastic language",
	ObjectLabelledPetriNet:                       "labelled Petri net",
	ObjectStochasticDeterministicFiniteAutomaton: "stochastic deterministic finite automaton",
	ObjectStochasticLabelledPetriNet:             "stochastic labelled Petri net",
	ObjectLanguageOfAlignments:                   "language of alignments",
	ObjectStochasticLanguageOfAlignments:         "stochastic language of alignments",
	ObjectDeterministicFiniteAutomaton:           "deterministic finite automaton",
	ObjectProcessTree:                            "process tree",
	ObjectExecutions:                             "executions",
}

// "executions" is plural and takes no article.
var objectKindArticles = [...]string{
	ObjectEventLog:                               "an",
	ObjectDirectlyFollowsModel:                   "a",
	ObjectFiniteLanguage:                         "a",
	ObjectFiniteStochasticLanguage:               "a",
	ObjectLabelledPetriNet:                       "a",
	ObjectStochasticDeterministicFiniteAutomaton: "a",
	ObjectStochasticLabelledPetriNet:             "a",
	ObjectLanguageOfAlignments:                   "a",
	ObjectStochasticLanguageOfAlignments:         "a",
	ObjectDeterministicFiniteAutomaton:           "a",
	ObjectProcessTree:                            "a",
	ObjectExecutions:                             "",
}

// ObjectKinds returns every object kind in declaration order.
func ObjectKinds() []ObjectKind {
	all := make([]ObjectKind, len(objectKindNames))
	for i := range objectKindNames {
		all[i] = ObjectKind(i)
	}
	return all
}

// IsValid returns true if k is a declared object kind.
func (k ObjectKind) IsValid() bool {
	return k >= 0 && int(k) < len(objectKindNames)
}

// String returns the display name of the object kind.
func (k ObjectKind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("object(%d)", int(k))
	}
	return objectKindNames[k]
}

// Article returns the indefinite article to put in front of String().
func (k ObjectKind) Article() string {
	if !k.IsValid() {
		return "a"
	}
	return objectKindArticles[k]
}

// ParseObjectKind returns the object kind with the given display name.
func ParseObjectKind(name string) (ObjectKind, error) {
	for _, k := range ObjectKinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownObjectKind, name)
}
