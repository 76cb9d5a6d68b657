package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"

	"github.com/zjrosen/ebi/internal/registry"
)

// ConceptName is the XES attribute holding trace names and activities.
const ConceptName = "concept:name"

// EventLogHandler reads XES event logs (.xes).
var EventLogHandler = registry.NewHandler("event log", "xes").
	Article("an").
	ImportsTrait(registry.CapabilityEventLog, importEventLog).
	ImportsTrait(registry.CapabilityFiniteLanguage, func(r io.Reader) (any, error) {
		log, err := ParseEventLog(r)
		if err != nil {
			return nil, err
		}
		return log.Language(), nil
	}).
	ImportsTrait(registry.CapabilityFiniteStochasticLanguage, importLogLanguage).
	ImportsTrait(registry.CapabilityQueriableStochasticLanguage, importLogLanguage).
	ImportsTrait(registry.CapabilityIterableStochasticLanguage, importLogLanguage).
	ImportsObject(registry.ObjectEventLog, importEventLog).
	Validator(func(r io.Reader) error {
		_, err := ParseEventLog(r)
		return err
	}).
	Interop(EventLogInterop).
	MustBuild()

func importEventLog(r io.Reader) (any, error) {
	return ParseEventLog(r)
}

func importLogLanguage(r io.Reader) (any, error) {
	log, err := ParseEventLog(r)
	if err != nil {
		return nil, err
	}
	return log.StochasticLanguage(), nil
}

// EventLogTrace is one case of an event log.
type EventLogTrace struct {
	Name   string
	Events []Event
}

// Event is one event of a trace. Attributes hold every XES attribute of the
// event by key, concept:name included.
type Event struct {
	Activity   string
	Attributes map[string]string
}

// Activities returns the activity sequence of the trace.
func (t EventLogTrace) Activities() Trace {
	out := make(Trace, len(t.Events))
	for i, e := range t.Events {
		out[i] = e.Activity
	}
	return out
}

// EventLog is an event log: an ordered list of traces of events.
type EventLog struct {
	traces []EventLogTrace
}

// Cases returns the traces of the log.
func (l *EventLog) Cases() []EventLogTrace {
	return slices.Clone(l.traces)
}

// Len returns the number of traces.
func (l *EventLog) Len() int {
	return len(l.traces)
}

// Traces returns the activity sequences, one per case, repetitions included.
func (l *EventLog) Traces() []Trace {
	out := make([]Trace, len(l.traces))
	for i, t := range l.traces {
		out[i] = t.Activities()
	}
	return out
}

// Activities returns the distinct activities in order of first occurrence.
func (l *EventLog) Activities() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range l.traces {
		for _, e := range t.Events {
			if !seen[e.Activity] {
				seen[e.Activity] = true
				out = append(out, e.Activity)
			}
		}
	}
	return out
}

// Language returns the distinct traces of the log.
func (l *EventLog) Language() *Language {
	return NewLanguage(l.Traces()...)
}

// StochasticLanguage returns the distinct traces weighted by their relative
// frequency in the log.
func (l *EventLog) StochasticLanguage() *StochasticLanguage {
	s := newStochasticLanguage()
	counts := make(map[string]int64)
	var order []Trace
	for _, t := range l.Traces() {
		if counts[t.key()] == 0 {
			order = append(order, t)
		}
		counts[t.key()]++
	}
	total := int64(len(l.traces))
	for _, t := range order {
		s.mustAdd(t, big.NewRat(counts[t.key()], total))
	}
	return s
}

// Summary describes the log in one line.
func (l *EventLog) Summary() string {
	events := 0
	for _, t := range l.traces {
		events += len(t.Events)
	}
	return fmt.Sprintf("event log with %d traces, %d events and %d activities", len(l.traces), events, len(l.Activities()))
}

type xesLog struct {
	XMLName xml.Name   `xml:"log"`
	Traces  []xesTrace `xml:"trace"`
}

type xesTrace struct {
	Attributes []xesAttribute `xml:",any"`
	Events     []xesEvent     `xml:"event"`
}

type xesEvent struct {
	Attributes []xesAttribute `xml:",any"`
}

type xesAttribute struct {
	XMLName xml.Name
	Key     string `xml:"key,attr"`
	Value   string `xml:"value,attr"`
}

func attribute(attrs []xesAttribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

var errNoLog = errors.New("no <log> element found")

// ParseEventLog reads an XES event log. Every event needs a concept:name.
func ParseEventLog(r io.Reader) (*EventLog, error) {
	var doc xesLog
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoLog
		}
		return nil, fmt.Errorf("invalid XES: %w", err)
	}

	log := &EventLog{traces: make([]EventLogTrace, len(doc.Traces))}
	for i, t := range doc.Traces {
		name, _ := attribute(t.Attributes, ConceptName)
		trace := EventLogTrace{Name: name, Events: make([]Event, len(t.Events))}
		for j, e := range t.Events {
			activity, ok := attribute(e.Attributes, ConceptName)
			if !ok {
				return nil, fmt.Errorf("trace %d, event %d: missing %s attribute", i, j, ConceptName)
			}
			attrs := make(map[string]string, len(e.Attributes))
			for _, a := range e.Attributes {
				attrs[a.Key] = a.Value
			}
			trace.Events[j] = Event{Activity: activity, Attributes: attrs}
		}
		log.traces[i] = trace
	}
	return log, nil
}
