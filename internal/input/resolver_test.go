package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"pgregory.net/rapid"

	"github.com/zjrosen/ebi/internal/registry"
	"github.com/zjrosen/ebi/internal/source"
	"github.com/zjrosen/ebi/internal/tracing"
)

// calls records importer invocations in order.
type calls []string

// importer returns an ImportFunc labelled label. It consumes the whole view,
// records what it saw and accepts only when accept is true.
func (c *calls) importer(label string, accept bool) registry.ImportFunc {
	return func(r io.Reader) (any, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		*c = append(*c, label)
		if !accept {
			return nil, fmt.Errorf("%s rejected %q", label, data)
		}
		return label, nil
	}
}

func okValidate(io.Reader) error { return nil }

func okImport(io.Reader) (any, error) { return "ok", nil }

func newResolver(handlers ...*registry.FormatHandler) *Resolver {
	return NewResolver(registry.NewCatalog(handlers...))
}

func testSource() source.Source {
	return source.NewBytes("test", []byte("finite language\n"))
}

type brokenSource struct{ views int }

func (b *brokenSource) FreshView() (io.ReadCloser, error) {
	b.views++
	return nil, &source.Error{Name: "broken", Err: errors.New("permission denied")}
}

func (b *brokenSource) Name() string { return "broken" }

func TestReadAsTrait_FirstAcceptingImporterWins(t *testing.T) {
	var c calls
	a := registry.NewHandler("a", "a").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("a1", false)).
		Validator(okValidate).MustBuild()
	b := registry.NewHandler("b", "b").
		ImportsTrait(registry.CapabilityEventLog, c.importer("b-log", true)).
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("b1", true)).
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("b2", true)).
		Validator(okValidate).MustBuild()
	d := registry.NewHandler("d", "d").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("d1", true)).
		Validator(okValidate).MustBuild()

	got, err := newResolver(a, b, d).ReadAsTrait(context.Background(), registry.CapabilityFiniteLanguage, testSource())

	require.NoError(t, err)
	require.Equal(t, "b1", got.Value)
	require.Same(t, b, got.Handler)
	require.Equal(t, registry.CapabilityFiniteLanguage, got.Capability)
	require.Equal(t, calls{"a1", "b1"}, c, "later importers and other capabilities are not attempted")
}

func TestReadAsTrait_EveryAttemptSeesTheWholeInput(t *testing.T) {
	var seen []string
	partial := func(n int) registry.ImportFunc {
		return func(r io.Reader) (any, error) {
			buf := make([]byte, n)
			_, _ = io.ReadFull(r, buf)
			seen = append(seen, string(buf))
			return nil, errors.New("not mine")
		}
	}
	whole := func(r io.Reader) (any, error) {
		data, err := io.ReadAll(r)
		seen = append(seen, string(data))
		return string(data), err
	}
	h := registry.NewHandler("h", "h").
		ImportsTrait(registry.CapabilityFiniteLanguage, partial(3)).
		ImportsTrait(registry.CapabilityFiniteLanguage, partial(6)).
		ImportsTrait(registry.CapabilityFiniteLanguage, whole).
		Validator(okValidate).MustBuild()

	got, err := newResolver(h).ReadAsTrait(context.Background(), registry.CapabilityFiniteLanguage, testSource())

	require.NoError(t, err)
	require.Equal(t, "finite language\n", got.Value)
	require.Equal(t, []string{"fin", "finite", "finite language\n"}, seen)
}

func TestReadAsTrait_ExhaustionWrapsLastFailure(t *testing.T) {
	first := errors.New("first failure")
	last := errors.New("last failure")
	failWith := func(err error) registry.ImportFunc {
		return func(io.Reader) (any, error) { return nil, err }
	}
	lang := registry.NewHandler("finite language", "lang").
		ImportsTrait(registry.CapabilityFiniteLanguage, failWith(first)).
		Validator(okValidate).MustBuild()
	slang := registry.NewHandler("finite stochastic language", "slang").
		ImportsTrait(registry.CapabilityFiniteLanguage, failWith(last)).
		Validator(okValidate).MustBuild()

	_, err := newResolver(lang, slang).ReadAsTrait(context.Background(), registry.CapabilityFiniteLanguage, testSource())

	var traitErr *TraitResolutionError
	require.ErrorAs(t, err, &traitErr)
	require.ErrorIs(t, err, last)
	require.NotErrorIs(t, err, first)
	require.Same(t, slang, traitErr.Err.Handler)
	require.Equal(t, []*registry.FormatHandler{lang, slang}, traitErr.Attempted)
	require.Equal(t, "could not read file as a finite language; attempted to parse it as either "+
		"finite language (.lang), finite stochastic language (.slang). "+
		"If you know the type of your file, use `ebi validate` to check it: "+
		"the last attempted importer was: finite stochastic language (.slang): last failure", err.Error())
}

func TestReadAsTrait_NoCandidates(t *testing.T) {
	var c calls
	h := registry.NewHandler("h", "h").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("h", true)).
		Validator(okValidate).MustBuild()

	_, err := newResolver(h).ReadAsTrait(context.Background(), registry.CapabilityEventLog, testSource())

	var noCandidates *NoCandidatesError
	require.ErrorAs(t, err, &noCandidates)
	require.Equal(t, "no file handler can import an event log; nothing was attempted", err.Error())
	require.Empty(t, c)
}

func TestReadAsTrait_SourceErrorStopsSearch(t *testing.T) {
	var c calls
	h := registry.NewHandler("h", "h").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("h1", true)).
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("h2", true)).
		Validator(okValidate).MustBuild()
	src := &brokenSource{}

	_, err := newResolver(h).ReadAsTrait(context.Background(), registry.CapabilityFiniteLanguage, src)

	var srcErr *source.Error
	require.ErrorAs(t, err, &srcErr)
	require.Equal(t, 1, src.views)
	require.Empty(t, c)
}

func TestReadAsObject_DiscardsAttemptErrors(t *testing.T) {
	var c calls
	a := registry.NewHandler("a", "a").
		ImportsObject(registry.ObjectFiniteLanguage, c.importer("a", false)).
		Validator(okValidate).MustBuild()
	b := registry.NewHandler("b", "b").
		ImportsObject(registry.ObjectFiniteLanguage, c.importer("b", false)).
		ImportsObject(registry.ObjectEventLog, c.importer("b-log", true)).
		Validator(okValidate).MustBuild()

	_, err := newResolver(a, b).ReadAsObject(context.Background(), registry.ObjectFiniteLanguage, testSource())

	require.Same(t, ErrNotRecognised, err)
	require.Nil(t, errors.Unwrap(err))
	require.Equal(t, "file could not be recognised", err.Error())
	require.Equal(t, calls{"a", "b"}, c)
}

func TestReadAsObject_FirstMatchingKindWins(t *testing.T) {
	var c calls
	a := registry.NewHandler("a", "a").
		ImportsObject(registry.ObjectEventLog, c.importer("a-log", true)).
		ImportsObject(registry.ObjectFiniteLanguage, c.importer("a-lang", true)).
		Validator(okValidate).MustBuild()

	got, err := newResolver(a).ReadAsObject(context.Background(), registry.ObjectFiniteLanguage, testSource())

	require.NoError(t, err)
	require.Equal(t, "a-lang", got.Value)
	require.Equal(t, registry.ObjectFiniteLanguage, got.Kind)
	require.Equal(t, calls{"a-lang"}, c)
}

func TestReadAsObject_NoCandidates(t *testing.T) {
	h := registry.NewHandler("h", "h").Validator(okValidate).MustBuild()

	_, err := newResolver(h).ReadAsObject(context.Background(), registry.ObjectExecutions, testSource())

	var noCandidates *NoCandidatesError
	require.ErrorAs(t, err, &noCandidates)
	require.Equal(t, "executions", noCandidates.Requested)
}

func TestReadAsAnyObject_IgnoresKind(t *testing.T) {
	var c calls
	a := registry.NewHandler("a", "a").
		ImportsObject(registry.ObjectFiniteLanguage, c.importer("a-lang", false)).
		Validator(okValidate).MustBuild()
	b := registry.NewHandler("b", "b").
		ImportsObject(registry.ObjectProcessTree, c.importer("b-tree", true)).
		ImportsObject(registry.ObjectEventLog, c.importer("b-log", true)).
		Validator(okValidate).MustBuild()

	got, err := newResolver(a, b).ReadAsAnyObject(context.Background(), testSource())

	require.NoError(t, err)
	require.Equal(t, registry.ObjectProcessTree, got.Kind)
	require.Same(t, b, got.Handler)
	require.Equal(t, calls{"a-lang", "b-tree"}, c)
}

func TestReadAsAnyObject_EmptyCatalog(t *testing.T) {
	_, err := newResolver().ReadAsAnyObject(context.Background(), testSource())

	var noCandidates *NoCandidatesError
	require.ErrorAs(t, err, &noCandidates)
	require.Equal(t, "an object", noCandidates.Requested)
}

func TestReadAsAnyObject_AllRejected(t *testing.T) {
	var c calls
	a := registry.NewHandler("a", "a").
		ImportsObject(registry.ObjectFiniteLanguage, c.importer("a", false)).
		Validator(okValidate).MustBuild()

	_, err := newResolver(a).ReadAsAnyObject(context.Background(), testSource())

	require.ErrorIs(t, err, ErrNotRecognised)
}

func TestValidateObjectOf_ReturnsValidatorResultVerbatim(t *testing.T) {
	invalid := errors.New("line 3: expected a fraction")
	var validated []string
	validator := func(name string, err error) registry.ValidateFunc {
		return func(r io.Reader) error {
			data, _ := io.ReadAll(r)
			validated = append(validated, name+":"+string(data))
			return err
		}
	}
	lang := registry.NewHandler("finite language", "lang").Validator(validator("lang", nil)).MustBuild()
	slang := registry.NewHandler("finite stochastic language", "slang").Validator(validator("slang", invalid)).MustBuild()
	r := newResolver(lang, slang)

	err := r.ValidateObjectOf(context.Background(), testSource(), slang)
	require.Same(t, invalid, err)

	err = r.ValidateObjectOf(context.Background(), testSource(), lang)
	require.NoError(t, err)

	require.Equal(t, []string{"slang:finite language\n", "lang:finite language\n"}, validated)
}

func TestValidateObjectOf_SourceError(t *testing.T) {
	h := registry.NewHandler("h", "h").Validator(okValidate).MustBuild()

	err := newResolver(h).ValidateObjectOf(context.Background(), &brokenSource{}, h)

	var srcErr *source.Error
	require.ErrorAs(t, err, &srcErr)
}

func TestResolver_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var c calls
	h := registry.NewHandler("h", "h").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("h1", false)).
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("h2", true)).
		Validator(okValidate).MustBuild()
	r := NewResolver(registry.NewCatalog(h), WithTracer(tp.Tracer("test")))

	_, err := r.ReadAsTrait(context.Background(), registry.CapabilityFiniteLanguage, testSource())
	require.NoError(t, err)
	_, err = r.ReadAsAnyObject(context.Background(), testSource())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	trait := spans[0]
	require.Equal(t, tracing.SpanReadAsTrait, trait.Name())
	require.Len(t, trait.Events(), 2)
	for i, want := range []string{tracing.OutcomeRejected, tracing.OutcomeAccepted} {
		event := trait.Events()[i]
		require.Equal(t, tracing.EventAttempt, event.Name)
		var outcome string
		for _, attr := range event.Attributes {
			if string(attr.Key) == tracing.AttrOutcome {
				outcome = attr.Value.AsString()
			}
		}
		require.Equal(t, want, outcome)
	}
	require.NotEqual(t, codes.Error, trait.Status().Code)

	anyObject := spans[1]
	require.Equal(t, tracing.SpanReadAsAnyObject, anyObject.Name())
	require.Equal(t, codes.Error, anyObject.Status().Code)
}

// TestReadAsTrait_OrderPriority checks on random catalogs that the winner is
// the first accepting importer in catalog then declaration order, and that
// exactly the importers before it were attempted.
func TestReadAsTrait_OrderPriority(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var c calls
		var order []string
		var accepting []bool
		nHandlers := rapid.IntRange(1, 5).Draw(t, "handlers")
		handlers := make([]*registry.FormatHandler, nHandlers)
		for i := range handlers {
			b := registry.NewHandler(fmt.Sprintf("h%d", i), fmt.Sprintf("e%d", i)).Validator(okValidate)
			nImporters := rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("importers%d", i))
			for j := 0; j < nImporters; j++ {
				label := fmt.Sprintf("h%d/%d", i, j)
				accept := rapid.Bool().Draw(t, "accept "+label)
				if rapid.Bool().Draw(t, "relevant "+label) {
					b.ImportsTrait(registry.CapabilityFiniteLanguage, c.importer(label, accept))
					order = append(order, label)
					accepting = append(accepting, accept)
				} else {
					b.ImportsTrait(registry.CapabilityEventLog, c.importer(label, true))
				}
			}
			handlers[i] = b.MustBuild()
		}

		got, err := newResolver(handlers...).ReadAsTrait(context.Background(), registry.CapabilityFiniteLanguage, testSource())

		winner := -1
		for i, ok := range accepting {
			if ok {
				winner = i
				break
			}
		}
		switch {
		case winner >= 0:
			require.NoError(t, err)
			require.Equal(t, order[winner], got.Value)
			require.Equal(t, calls(order[:winner+1]), c)
		case len(order) == 0:
			var noCandidates *NoCandidatesError
			require.ErrorAs(t, err, &noCandidates)
			require.Empty(t, c)
		default:
			var traitErr *TraitResolutionError
			require.ErrorAs(t, err, &traitErr)
			require.Contains(t, err.Error(), order[len(order)-1]+" rejected")
			require.Equal(t, calls(order), c)
		}
	})
}
