package registry

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func okImport(v any) ImportFunc {
	return func(io.Reader) (any, error) { return v, nil }
}

func okValidate(io.Reader) error { return nil }

func TestHandlerBuilder_Build_Success(t *testing.T) {
	interop := &InteropHandler{Name: "finite language", HostType: "host.FiniteLanguage"}

	h, err := NewHandler("finite language", ".lang").
		ImportsTrait(CapabilityFiniteLanguage, okImport("t")).
		ImportsObject(ObjectFiniteLanguage, okImport("o")).
		Validator(okValidate).
		Interop(interop).
		Build()

	require.NoError(t, err)
	require.Equal(t, "finite language", h.Name())
	require.Equal(t, "lang", h.Extension(), "leading dot is stripped")
	require.Equal(t, "a", h.Article())
	require.Len(t, h.TraitImporters(), 1)
	require.Len(t, h.ObjectImporters(), 1)
	require.NotNil(t, h.Validator())
	require.Equal(t, []*InteropHandler{interop}, h.InteropHandlers())
	require.True(t, h.ImportsCapability(CapabilityFiniteLanguage))
	require.False(t, h.ImportsCapability(CapabilityEventLog))
	require.True(t, h.ImportsObjectKind(ObjectFiniteLanguage))
	require.False(t, h.ImportsObjectKind(ObjectEventLog))
}

func TestHandlerBuilder_PreservesImporterOrder(t *testing.T) {
	h := NewHandler("multi", "multi").
		ImportsTrait(CapabilityFiniteStochasticLanguage, okImport(1)).
		ImportsTrait(CapabilityFiniteLanguage, okImport(2)).
		ImportsTrait(CapabilityFiniteStochasticLanguage, okImport(3)).
		Validator(okValidate).
		MustBuild()

	imps := h.TraitImporters()
	require.Len(t, imps, 3)
	for i, want := range []int{1, 2, 3} {
		v, err := imps[i].Import(nil)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestHandlerBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		builder *HandlerBuilder
		wantErr error
	}{
		{
			name:    "empty name",
			builder: NewHandler("", "x").Validator(okValidate),
			wantErr: ErrHandlerEmptyName,
		},
		{
			name:    "empty extension",
			builder: NewHandler("x", "").Validator(okValidate),
			wantErr: ErrHandlerEmptyExtension,
		},
		{
			name:    "missing validator",
			builder: NewHandler("x", "x"),
			wantErr: ErrHandlerNoValidator,
		},
		{
			name:    "nil trait importer",
			builder: NewHandler("x", "x").Validator(okValidate).ImportsTrait(CapabilityEventLog, nil),
			wantErr: ErrHandlerNilImporter,
		},
		{
			name:    "undeclared object kind",
			builder: NewHandler("x", "x").Validator(okValidate).ImportsObject(ObjectKind(42), okImport(nil)),
			wantErr: ErrHandlerInvalidTarget,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.builder.Build()
			require.Nil(t, h)
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestHandlerBuilder_MustBuildPanics(t *testing.T) {
	require.Panics(t, func() {
		NewHandler("x", "x").MustBuild()
	})
}

func TestFormatHandler_Display(t *testing.T) {
	h := NewHandler("finite stochastic language", "slang").Validator(okValidate).MustBuild()

	require.Equal(t, "finite stochastic language (.slang)", h.String())
	require.Equal(t, `\hyperref[filehandler:finite stochastic language]{finite stochastic language (.slang)}`, h.LatexRef())
}

func TestFormatHandler_AccessorsReturnCopies(t *testing.T) {
	h := NewHandler("x", "x").
		ImportsTrait(CapabilityEventLog, okImport(nil)).
		Validator(okValidate).
		MustBuild()

	imps := h.TraitImporters()
	imps[0].Capability = CapabilitySemantics

	require.True(t, h.ImportsCapability(CapabilityEventLog))
	require.False(t, h.ImportsCapability(CapabilitySemantics))
}

func TestInteropHandler_Directions(t *testing.T) {
	identity := func(v any) (any, error) { return v, nil }

	require.False(t, (*InteropHandler)(nil).ImportsFromHost())
	require.True(t, (&InteropHandler{FromHost: identity}).ImportsFromHost())
	require.False(t, (&InteropHandler{ToHost: identity}).ImportsFromHost())
	require.True(t, (&InteropHandler{ToHost: identity}).ExportsToHost())
}
