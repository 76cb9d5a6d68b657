package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/zjrosen/ebi/internal/registry"
)

const languageHeader = "finite language"

// LanguageHandler reads finite languages (.lang).
var LanguageHandler = registry.NewHandler("finite language", "lang").
	ImportsTrait(registry.CapabilityFiniteLanguage, importLanguage).
	ImportsObject(registry.ObjectFiniteLanguage, importLanguage).
	Validator(func(r io.Reader) error {
		_, err := ParseLanguage(r)
		return err
	}).
	Interop(LanguageInterop).
	MustBuild()

func importLanguage(r io.Reader) (any, error) {
	return ParseLanguage(r)
}

// ParseLanguage reads a .lang file. Repeated traces collapse into one.
func ParseLanguage(r io.Reader) (*Language, error) {
	lines := newLineReader(r)
	if err := lines.header(languageHeader); err != nil {
		return nil, err
	}
	n, err := lines.count("the number of traces")
	if err != nil {
		return nil, err
	}

	lang := NewLanguage()
	for i := 0; i < n; i++ {
		trace, err := lines.trace(i)
		if err != nil {
			return nil, err
		}
		lang.add(trace)
	}
	if err := lines.end(); err != nil {
		return nil, err
	}
	return lang, nil
}

// String renders the language in the .lang format.
func (l *Language) String() string {
	var b strings.Builder
	b.WriteString(languageHeader + "\n")
	fmt.Fprintf(&b, "# number of traces\n%d\n", len(l.traces))
	for i, t := range l.traces {
		fmt.Fprintf(&b, "# trace %d\n", i)
		writeTrace(&b, t)
	}
	return b.String()
}

// Summary describes the language in one line.
func (l *Language) Summary() string {
	return fmt.Sprintf("finite language with %d distinct traces", len(l.traces))
}

func writeTrace(b *strings.Builder, t Trace) {
	fmt.Fprintf(b, "# number of events\n%d\n", len(t))
	for _, activity := range t {
		b.WriteString(activity)
		b.WriteByte('\n')
	}
}
