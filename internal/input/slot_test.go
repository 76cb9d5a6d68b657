package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ebi/internal/registry"
)

func testCatalog(t *testing.T) (cat *registry.Catalog, xes, lang, slang *registry.FormatHandler) {
	t.Helper()
	var c calls
	xes = registry.NewHandler("event log", "xes").Article("an").
		ImportsTrait(registry.CapabilityEventLog, c.importer("xes", true)).
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("xes", true)).
		ImportsObject(registry.ObjectEventLog, c.importer("xes", true)).
		Validator(okValidate).MustBuild()
	lang = registry.NewHandler("finite language", "lang").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("lang", true)).
		ImportsObject(registry.ObjectFiniteLanguage, c.importer("lang", true)).
		Validator(okValidate).MustBuild()
	slang = registry.NewHandler("finite stochastic language", "slang").
		ImportsTrait(registry.CapabilityFiniteLanguage, c.importer("slang", true)).
		ImportsTrait(registry.CapabilityFiniteStochasticLanguage, c.importer("slang", true)).
		ImportsObject(registry.ObjectFiniteStochasticLanguage, c.importer("slang", true)).
		Validator(okValidate).MustBuild()
	return registry.NewCatalog(xes, lang, slang), xes, lang, slang
}

func TestSlotSpec_ArticleAndString(t *testing.T) {
	tests := []struct {
		spec    SlotSpec
		article string
		name    string
	}{
		{CapabilitySlot(registry.CapabilityEventLog), "an", "event log"},
		{CapabilitySlot(registry.CapabilityFiniteLanguage), "a", "finite language"},
		{ObjectSlot(registry.ObjectEventLog), "an", "event log"},
		{ObjectSlot(registry.ObjectExecutions), "", "executions"},
		{AnyObjectSlot, "an", "object"},
		{TextSlot, "a", "text"},
		{IntegerSlot, "an", "integer"},
		{FileHandlerSlot, "a", "file"},
		{FractionSlot, "a", "fraction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.article, tt.spec.Article())
			require.Equal(t, tt.name, tt.spec.String())
		})
	}
}

func TestSlotSpec_Comparable(t *testing.T) {
	require.Equal(t, CapabilitySlot(registry.CapabilityEventLog), CapabilitySlot(registry.CapabilityEventLog))
	require.NotEqual(t, CapabilitySlot(registry.CapabilityEventLog), ObjectSlot(registry.ObjectEventLog))
	require.True(t, TextSlot == SlotSpec{kind: slotText})
	require.False(t, SlotSpec{} == TextSlot)

	c, ok := CapabilitySlot(registry.CapabilitySemantics).Capability()
	require.True(t, ok)
	require.Equal(t, registry.CapabilitySemantics, c)
	_, ok = TextSlot.Capability()
	require.False(t, ok)
	require.NotEqual(t, CapabilitySlot(registry.CapabilityEventLog).Key(), ObjectSlot(registry.ObjectEventLog).Key())
	require.Equal(t, "object:process tree", ObjectSlot(registry.ObjectProcessTree).Key())
	require.Equal(t, "fraction", FractionSlot.Key())

	k, ok := ObjectSlot(registry.ObjectProcessTree).ObjectKind()
	require.True(t, ok)
	require.Equal(t, registry.ObjectProcessTree, k)
}

func TestPossibleInputs(t *testing.T) {
	cat, _, _, _ := testCatalog(t)

	tests := []struct {
		name         string
		alternatives []SlotSpec
		want         []string
	}{
		{
			name:         "capability lists supporting handlers",
			alternatives: []SlotSpec{CapabilitySlot(registry.CapabilityFiniteLanguage)},
			want:         []string{"event log (.xes)", "finite language (.lang)", "finite stochastic language (.slang)"},
		},
		{
			name: "overlapping alternatives are deduplicated",
			alternatives: []SlotSpec{
				CapabilitySlot(registry.CapabilityFiniteLanguage),
				CapabilitySlot(registry.CapabilityFiniteStochasticLanguage),
				ObjectSlot(registry.ObjectFiniteStochasticLanguage),
			},
			want: []string{"event log (.xes)", "finite language (.lang)", "finite stochastic language (.slang)"},
		},
		{
			name:         "primitives",
			alternatives: []SlotSpec{TextSlot, IntegerSlot, FractionSlot, TextSlot},
			want:         []string{"fraction", "integer", "text"},
		},
		{
			name:         "file handler",
			alternatives: []SlotSpec{FileHandlerSlot},
			want:         []string{"the file extension of any file type supported by Ebi (xes, lang or slang)"},
		},
		{
			name:         "unsupported capability",
			alternatives: []SlotSpec{CapabilitySlot(registry.CapabilitySemantics)},
			want:         []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PossibleInputs(cat, tt.alternatives))
		})
	}
}

func TestPossibleInputsLatex(t *testing.T) {
	cat, _, _, _ := testCatalog(t)

	got := PossibleInputsLatex(cat, []SlotSpec{ObjectSlot(registry.ObjectFiniteLanguage), IntegerSlot})

	require.Equal(t, []string{
		`\hyperref[filehandler:finite language]{finite language (.lang)}`,
		"integer",
	}, got)
}

func TestPossibleInputsWithArticles(t *testing.T) {
	cat, _, _, _ := testCatalog(t)

	got := PossibleInputsWithArticles(cat, []SlotSpec{AnyObjectSlot}, " or ")

	require.Equal(t, "event log (.xes), finite language (.lang) or finite stochastic language (.slang)", got)
}

func TestSlotSpec_Handlers(t *testing.T) {
	cat, xes, lang, slang := testCatalog(t)

	require.Equal(t, []*registry.FormatHandler{xes, lang, slang}, CapabilitySlot(registry.CapabilityFiniteLanguage).Handlers(cat))
	require.Equal(t, []*registry.FormatHandler{slang}, ObjectSlot(registry.ObjectFiniteStochasticLanguage).Handlers(cat))
	require.Equal(t, []*registry.FormatHandler{xes, lang, slang}, AnyObjectSlot.Handlers(cat))
	require.Nil(t, TextSlot.Handlers(cat))
}

func TestInteropHandlers(t *testing.T) {
	shared := &registry.InteropHandler{Name: "finite language", HostType: "FiniteLanguage", FromHost: func(v any) (any, error) { return v, nil }}
	exportOnly := &registry.InteropHandler{Name: "event log", HostType: "EventLog", ToHost: func(v any) (any, error) { return v, nil }}
	xes := registry.NewHandler("event log", "xes").
		ImportsTrait(registry.CapabilityFiniteLanguage, okImport).
		Validator(okValidate).Interop(exportOnly, shared).MustBuild()
	lang := registry.NewHandler("finite language", "lang").
		ImportsTrait(registry.CapabilityFiniteLanguage, okImport).
		Validator(okValidate).Interop(shared).MustBuild()
	cat := registry.NewCatalog(xes, lang)

	got := InteropHandlers(cat, []SlotSpec{CapabilitySlot(registry.CapabilityFiniteLanguage), TextSlot, FileHandlerSlot, TextSlot})

	require.Equal(t, []*registry.InteropHandler{shared, TextInterop[0]}, got)
}
