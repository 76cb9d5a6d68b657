// Package input resolves command inputs: it walks the format catalog to turn
// an unlabeled byte source into a typed object, and describes what each
// command argument accepts.
package input

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/ebi/internal/log"
	"github.com/zjrosen/ebi/internal/registry"
	"github.com/zjrosen/ebi/internal/source"
	"github.com/zjrosen/ebi/internal/tracing"
)

// Resolver tries the importers of a catalog, strictly in catalog order and
// then importer declaration order, until one accepts the input. It holds no
// per-call state and is safe for concurrent use.
type Resolver struct {
	catalog *registry.Catalog
	tracer  trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTracer records a span per resolution call and an event per attempt.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewResolver returns a resolver over catalog.
func NewResolver(catalog *registry.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: catalog,
		tracer:  noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the resolver walks.
func (r *Resolver) Catalog() *registry.Catalog {
	return r.catalog
}

// ReadAsTrait imports src as an object exposing capability. The first
// importer to accept the input wins. When all of them fail, the returned
// *TraitResolutionError wraps the last failure only.
func (r *Resolver) ReadAsTrait(ctx context.Context, capability registry.Capability, src source.Source) (*TraitInput, error) {
	_, span := r.tracer.Start(ctx, tracing.SpanReadAsTrait, trace.WithAttributes(
		attribute.String(tracing.AttrSource, src.Name()),
		attribute.String(tracing.AttrCapability, capability.String()),
	))
	defer span.End()

	var lastErr *FormatParseError
	attempts := 0
	for _, h := range r.catalog.Handlers() {
		for _, imp := range h.TraitImporters() {
			if imp.Capability != capability {
				continue
			}
			attempts++
			view, err := src.FreshView()
			if err != nil {
				return nil, fail(span, err)
			}
			value, err := attempt(span, view, h, capability.String(), imp.Import)
			if err != nil {
				lastErr = &FormatParseError{Handler: h, Err: err}
				continue
			}
			span.SetAttributes(attribute.Int(tracing.AttrAttempts, attempts))
			log.Debug(log.CatImport, "read as trait", "capability", capability, "handler", h.Name(), "attempts", attempts)
			return &TraitInput{Capability: capability, Value: value, Handler: h}, nil
		}
	}

	span.SetAttributes(attribute.Int(tracing.AttrAttempts, attempts))
	if lastErr == nil {
		return nil, fail(span, &NoCandidatesError{Requested: withArticle(capability.Article(), capability.String())})
	}
	return nil, fail(span, &TraitResolutionError{
		Capability: capability,
		Attempted:  r.catalog.ForCapability(capability),
		Err:        lastErr,
	})
}

// ReadAsObject imports src as a concrete object of kind. Failed attempts are
// discarded: exhaustion yields ErrNotRecognised without any cause.
func (r *Resolver) ReadAsObject(ctx context.Context, kind registry.ObjectKind, src source.Source) (*ObjectInput, error) {
	_, span := r.tracer.Start(ctx, tracing.SpanReadAsObject, trace.WithAttributes(
		attribute.String(tracing.AttrSource, src.Name()),
		attribute.String(tracing.AttrObjectKind, kind.String()),
	))
	defer span.End()

	match := func(k registry.ObjectKind) bool { return k == kind }
	obj, err := r.readObject(span, src, withArticle(kind.Article(), kind.String()), match)
	if err != nil {
		return nil, fail(span, err)
	}
	return obj, nil
}

// ReadAsAnyObject imports src as whatever object kind the first accepting
// importer produces. Failed attempts are discarded as in ReadAsObject.
func (r *Resolver) ReadAsAnyObject(ctx context.Context, src source.Source) (*ObjectInput, error) {
	_, span := r.tracer.Start(ctx, tracing.SpanReadAsAnyObject, trace.WithAttributes(
		attribute.String(tracing.AttrSource, src.Name()),
	))
	defer span.End()

	obj, err := r.readObject(span, src, "an object", func(registry.ObjectKind) bool { return true })
	if err != nil {
		return nil, fail(span, err)
	}
	return obj, nil
}

func (r *Resolver) readObject(span trace.Span, src source.Source, requested string, match func(registry.ObjectKind) bool) (*ObjectInput, error) {
	attempts := 0
	for _, h := range r.catalog.Handlers() {
		for _, imp := range h.ObjectImporters() {
			if !match(imp.Kind) {
				continue
			}
			attempts++
			view, err := src.FreshView()
			if err != nil {
				return nil, err
			}
			value, err := attempt(span, view, h, imp.Kind.String(), imp.Import)
			if err != nil {
				continue
			}
			span.SetAttributes(attribute.Int(tracing.AttrAttempts, attempts))
			log.Debug(log.CatImport, "read as object", "kind", imp.Kind, "handler", h.Name(), "attempts", attempts)
			return &ObjectInput{Kind: imp.Kind, Value: value, Handler: h}, nil
		}
	}

	span.SetAttributes(attribute.Int(tracing.AttrAttempts, attempts))
	if attempts == 0 {
		return nil, &NoCandidatesError{Requested: requested}
	}
	return nil, ErrNotRecognised
}

// ValidateObjectOf checks src against handler's validator only. The result
// is returned as is; no other handler is tried.
func (r *Resolver) ValidateObjectOf(ctx context.Context, src source.Source, handler *registry.FormatHandler) error {
	_, span := r.tracer.Start(ctx, tracing.SpanValidate, trace.WithAttributes(
		attribute.String(tracing.AttrSource, src.Name()),
		attribute.String(tracing.AttrHandler, handler.Name()),
	))
	defer span.End()

	view, err := src.FreshView()
	if err != nil {
		return fail(span, err)
	}
	defer func() { _ = view.Close() }()

	if err := handler.Validator()(view); err != nil {
		log.Debug(log.CatImport, "validation failed", "handler", handler.Name(), "error", err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// attempt runs one importer on view, closes the view and records the outcome
// on span.
func attempt(span trace.Span, view io.ReadCloser, h *registry.FormatHandler, target string, importFn registry.ImportFunc) (any, error) {
	value, err := runImport(view, importFn)

	attrs := []attribute.KeyValue{
		attribute.String(tracing.AttrHandler, h.Name()),
		attribute.String(tracing.AttrImporter, target),
	}
	if err != nil {
		log.Debug(log.CatImport, "importer rejected input", "handler", h.Name(), "target", target, "error", err)
		attrs = append(attrs,
			attribute.String(tracing.AttrOutcome, tracing.OutcomeRejected),
			attribute.String(tracing.AttrError, err.Error()),
		)
	} else {
		attrs = append(attrs, attribute.String(tracing.AttrOutcome, tracing.OutcomeAccepted))
	}
	span.AddEvent(tracing.EventAttempt, trace.WithAttributes(attrs...))
	return value, err
}

func runImport(view io.ReadCloser, importFn registry.ImportFunc) (any, error) {
	defer func() { _ = view.Close() }()
	return importFn(view)
}

func fail(span trace.Span, err error) error {
	span.SetStatus(codes.Error, err.Error())
	return err
}
