package registry

import (
	"fmt"
	"io"
	"strings"
)

// ImportFunc parses a whole object from r. It fails when r does not hold a
// well-formed instance of the format.
type ImportFunc func(r io.Reader) (any, error)

// ValidateFunc parses r and discards the result.
type ValidateFunc func(r io.Reader) error

// TraitImporter imports an object exposing one capability.
type TraitImporter struct {
	Capability Capability
	Import     ImportFunc
}

// ObjectImporter imports a concrete object of one kind.
type ObjectImporter struct {
	Kind   ObjectKind
	Import ImportFunc
}

// FormatHandler bundles the import logic of one on-disk encoding.
// Importers are kept in declaration order; that order is the tie-break
// between importers of the same handler during resolution.
type FormatHandler struct {
	name            string            // e.g. "finite stochastic language"
	article         string            // e.g. "a"
	extension       string            // e.g. "slang", without the dot
	traitImporters  []TraitImporter   // in declaration order
	objectImporters []ObjectImporter  // in declaration order
	validator       ValidateFunc      // parse and discard
	interop         []*InteropHandler // host-runtime translators
}

// Name returns the handler name.
func (h *FormatHandler) Name() string {
	return h.name
}

// Article returns the indefinite article used in front of the name.
func (h *FormatHandler) Article() string {
	return h.article
}

// Extension returns the canonical file extension, without the leading dot.
func (h *FormatHandler) Extension() string {
	return h.extension
}

// TraitImporters returns the capability importers in declaration order.
func (h *FormatHandler) TraitImporters() []TraitImporter {
	return append([]TraitImporter(nil), h.traitImporters...)
}

// ObjectImporters returns the object importers in declaration order.
func (h *FormatHandler) ObjectImporters() []ObjectImporter {
	return append([]ObjectImporter(nil), h.objectImporters...)
}

// Validator returns the handler's validator.
func (h *FormatHandler) Validator() ValidateFunc {
	return h.validator
}

// InteropHandlers returns the handler's interop handlers.
func (h *FormatHandler) InteropHandlers() []*InteropHandler {
	return append([]*InteropHandler(nil), h.interop...)
}

// ImportsCapability reports whether the handler declares an importer for c.
func (h *FormatHandler) ImportsCapability(c Capability) bool {
	for _, imp := range h.traitImporters {
		if imp.Capability == c {
			return true
		}
	}
	return false
}

// ImportsObjectKind reports whether the handler declares an importer for k.
func (h *FormatHandler) ImportsObjectKind(k ObjectKind) bool {
	for _, imp := range h.objectImporters {
		if imp.Kind == k {
			return true
		}
	}
	return false
}

// String returns the display name used in listings and error messages.
func (h *FormatHandler) String() string {
	return fmt.Sprintf("%s (.%s)", h.name, h.extension)
}

// LatexRef returns a LaTeX cross-reference to the handler's manual entry.
func (h *FormatHandler) LatexRef() string {
	return fmt.Sprintf(`\hyperref[filehandler:%s]{%s}`, h.name, h.String())
}

// HandlerBuilder declares a FormatHandler.
type HandlerBuilder struct {
	h    FormatHandler
	errs []error
}

// NewHandler starts the declaration of a handler for the given name and extension.
func NewHandler(name, extension string) *HandlerBuilder {
	return &HandlerBuilder{h: FormatHandler{
		name:      name,
		article:   "a",
		extension: strings.TrimPrefix(extension, "."),
	}}
}

// Article overrides the default "a" article.
func (b *HandlerBuilder) Article(article string) *HandlerBuilder {
	b.h.article = article
	return b
}

// ImportsTrait appends a capability importer.
func (b *HandlerBuilder) ImportsTrait(c Capability, fn ImportFunc) *HandlerBuilder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: capability %s", ErrHandlerNilImporter, c))
	}
	if !c.IsValid() {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrHandlerInvalidTarget, c))
	}
	b.h.traitImporters = append(b.h.traitImporters, TraitImporter{Capability: c, Import: fn})
	return b
}

// ImportsObject appends an object importer.
func (b *HandlerBuilder) ImportsObject(k ObjectKind, fn ImportFunc) *HandlerBuilder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: object %s", ErrHandlerNilImporter, k))
	}
	if !k.IsValid() {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrHandlerInvalidTarget, k))
	}
	b.h.objectImporters = append(b.h.objectImporters, ObjectImporter{Kind: k, Import: fn})
	return b
}

// Validator sets the handler's validator.
func (b *HandlerBuilder) Validator(fn ValidateFunc) *HandlerBuilder {
	b.h.validator = fn
	return b
}

// Interop appends interop handlers.
func (b *HandlerBuilder) Interop(handlers ...*InteropHandler) *HandlerBuilder {
	b.h.interop = append(b.h.interop, handlers...)
	return b
}

// Build validates the declaration and returns the immutable handler.
func (b *HandlerBuilder) Build() (*FormatHandler, error) {
	if b.h.name == "" {
		return nil, ErrHandlerEmptyName
	}
	if b.h.extension == "" {
		return nil, ErrHandlerEmptyExtension
	}
	if b.h.validator == nil {
		return nil, ErrHandlerNoValidator
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("file handler %s: %w", b.h.name, b.errs[0])
	}

	h := b.h
	h.traitImporters = append([]TraitImporter(nil), b.h.traitImporters...)
	h.objectImporters = append([]ObjectImporter(nil), b.h.objectImporters...)
	h.interop = append([]*InteropHandler(nil), b.h.interop...)
	return &h, nil
}

// MustBuild is Build for static declarations; it panics on an invalid handler.
func (b *HandlerBuilder) MustBuild() *FormatHandler {
	h, err := b.Build()
	if err != nil {
		panic(err)
	}
	return h
}
