package tracing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errExporterClosed = errors.New("resolution log already closed")

// ResolutionLog writes one JSON line per resolution call, with the importer
// attempts flattened into it. It implements sdktrace.SpanExporter.
type ResolutionLog struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// OpenResolutionLog appends to the file at path, creating it and its parent
// directories when missing.
func OpenResolutionLog(path string) (*ResolutionLog, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating resolution log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path comes from the user's config
	if err != nil {
		return nil, fmt.Errorf("opening resolution log: %w", err)
	}
	return &ResolutionLog{file: f, enc: json.NewEncoder(f)}, nil
}

// Resolution is one line of the resolution log.
type Resolution struct {
	Time       time.Time `json:"time"`
	Call       string    `json:"call"`
	Source     string    `json:"source,omitempty"`
	Request    string    `json:"request,omitempty"`
	Failed     bool      `json:"failed"`
	Error      string    `json:"error,omitempty"`
	DurationMs float64   `json:"duration_ms"`
	Attempts   []Attempt `json:"attempts,omitempty"`
	TraceID    string    `json:"trace_id"`
}

// Attempt is a single importer run within a Resolution.
type Attempt struct {
	Handler  string `json:"handler"`
	Importer string `json:"importer,omitempty"`
	Outcome  string `json:"outcome"`
	Error    string `json:"error,omitempty"`
}

// ExportSpans appends the spans to the log.
func (l *ResolutionLog) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return errExporterClosed
	}
	for _, span := range spans {
		if err := l.enc.Encode(newResolution(span)); err != nil {
			return fmt.Errorf("writing resolution: %w", err)
		}
	}
	return nil
}

// Shutdown closes the file. Calling it twice is harmless.
func (l *ResolutionLog) Shutdown(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func newResolution(span sdktrace.ReadOnlySpan) Resolution {
	attrs := attributes(span.Attributes())
	r := Resolution{
		Time:       span.StartTime(),
		Call:       span.Name(),
		Source:     attrs[AttrSource],
		Failed:     span.Status().Code == codes.Error,
		Error:      span.Status().Description,
		DurationMs: float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000,
		TraceID:    span.SpanContext().TraceID().String(),
	}
	for _, key := range []string{AttrCapability, AttrObjectKind, AttrHandler} {
		if v, ok := attrs[key]; ok {
			r.Request = v
			break
		}
	}

	for _, event := range span.Events() {
		if event.Name != EventAttempt {
			continue
		}
		a := attributes(event.Attributes)
		r.Attempts = append(r.Attempts, Attempt{
			Handler:  a[AttrHandler],
			Importer: a[AttrImporter],
			Outcome:  a[AttrOutcome],
			Error:    a[AttrError],
		})
	}
	return r
}

func attributes(kvs []attribute.KeyValue) map[string]string {
	m := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.Emit()
	}
	return m
}
