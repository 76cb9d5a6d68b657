package tracing

// Span names for resolution calls.
const (
	SpanReadAsTrait     = "input.read_as_trait"
	SpanReadAsObject    = "input.read_as_object"
	SpanReadAsAnyObject = "input.read_as_any_object"
	SpanValidate        = "input.validate_object_of"
)

// EventAttempt is recorded on the resolution span for every importer attempt.
const EventAttempt = "importer.attempt"

// Span attribute keys.
const (
	AttrSource     = "source.name"
	AttrCapability = "input.capability"
	AttrObjectKind = "input.object_kind"
	AttrHandler    = "handler.name"
	AttrImporter   = "importer.target"
	AttrOutcome    = "attempt.outcome"
	AttrError      = "attempt.error"
	AttrAttempts   = "input.attempts"
)

// Attempt outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)
