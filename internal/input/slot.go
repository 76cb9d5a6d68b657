package input

import (
	"sort"

	"github.com/zjrosen/ebi/internal/registry"
	"github.com/zjrosen/ebi/internal/text"
)

type slotKind int

const (
	slotInvalid slotKind = iota
	slotCapability
	slotObject
	slotAnyObject
	slotFileHandler
	slotText
	slotInteger
	slotFraction
)

// SlotSpec describes one alternative a command argument accepts. SlotSpecs
// are comparable with ==. They carry no runtime value.
type SlotSpec struct {
	kind       slotKind
	capability registry.Capability
	object     registry.ObjectKind
}

// Primitive slot alternatives.
var (
	AnyObjectSlot   = SlotSpec{kind: slotAnyObject}
	FileHandlerSlot = SlotSpec{kind: slotFileHandler}
	TextSlot        = SlotSpec{kind: slotText}
	IntegerSlot     = SlotSpec{kind: slotInteger}
	FractionSlot    = SlotSpec{kind: slotFraction}
)

// CapabilitySlot accepts any file that can be read as c.
func CapabilitySlot(c registry.Capability) SlotSpec {
	return SlotSpec{kind: slotCapability, capability: c}
}

// ObjectSlot accepts any file that can be read as an object of kind k.
func ObjectSlot(k registry.ObjectKind) SlotSpec {
	return SlotSpec{kind: slotObject, object: k}
}

// Capability returns the capability of a capability slot.
func (s SlotSpec) Capability() (registry.Capability, bool) {
	return s.capability, s.kind == slotCapability
}

// ObjectKind returns the object kind of an object slot.
func (s SlotSpec) ObjectKind() (registry.ObjectKind, bool) {
	return s.object, s.kind == slotObject
}

// IsFile reports whether the slot is read from a file (capability, object or
// any object).
func (s SlotSpec) IsFile() bool {
	return s.kind == slotCapability || s.kind == slotObject || s.kind == slotAnyObject
}

// Article returns the indefinite article for the described type.
func (s SlotSpec) Article() string {
	switch s.kind {
	case slotCapability:
		return s.capability.Article()
	case slotObject:
		return s.object.Article()
	case slotAnyObject, slotInteger:
		return "an"
	default:
		return "a"
	}
}

// String returns the name of the described type.
func (s SlotSpec) String() string {
	switch s.kind {
	case slotCapability:
		return s.capability.String()
	case slotObject:
		return s.object.String()
	case slotAnyObject:
		return "object"
	case slotText:
		return "text"
	case slotInteger:
		return "integer"
	case slotFileHandler:
		return "file"
	case slotFraction:
		return "fraction"
	default:
		return "invalid"
	}
}

// Key identifies the slot alternative uniquely, e.g. "capability:event log"
// or "object:event log".
func (s SlotSpec) Key() string {
	switch s.kind {
	case slotCapability:
		return "capability:" + s.capability.String()
	case slotObject:
		return "object:" + s.object.String()
	default:
		return s.String()
	}
}

// Handlers returns the file handlers, in catalog order, that can produce a
// value for a file slot. Primitive slots have none.
func (s SlotSpec) Handlers(catalog *registry.Catalog) []*registry.FormatHandler {
	switch s.kind {
	case slotCapability:
		return catalog.ForCapability(s.capability)
	case slotObject:
		return catalog.ForObjectKind(s.object)
	case slotAnyObject:
		return catalog.Handlers()
	default:
		return nil
	}
}

// PossibleInputs describes everything the alternatives accept, one entry per
// file handler or primitive, without duplicates. The result is a set; it is
// returned sorted.
func PossibleInputs(catalog *registry.Catalog, alternatives []SlotSpec) []string {
	return possibleInputs(catalog, alternatives, (*registry.FormatHandler).String)
}

// PossibleInputsLatex is PossibleInputs with LaTeX cross-references to the
// file handlers.
func PossibleInputsLatex(catalog *registry.Catalog, alternatives []SlotSpec) []string {
	return possibleInputs(catalog, alternatives, (*registry.FormatHandler).LatexRef)
}

// PossibleInputsWithArticles renders PossibleInputs as a list joined by ", "
// with lastConnector before the final entry.
func PossibleInputsWithArticles(catalog *registry.Catalog, alternatives []SlotSpec, lastConnector string) string {
	return text.Join(PossibleInputs(catalog, alternatives), ", ", lastConnector)
}

func possibleInputs(catalog *registry.Catalog, alternatives []SlotSpec, show func(*registry.FormatHandler) string) []string {
	set := make(map[string]struct{})
	for _, alt := range alternatives {
		switch alt.kind {
		case slotCapability, slotObject, slotAnyObject:
			for _, h := range alt.Handlers(catalog) {
				set[show(h)] = struct{}{}
			}
		case slotText, slotInteger, slotFraction:
			set[alt.String()] = struct{}{}
		case slotFileHandler:
			set[fileHandlerDescription(catalog)] = struct{}{}
		}
	}

	result := make([]string, 0, len(set))
	for s := range set {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

func fileHandlerDescription(catalog *registry.Catalog) string {
	return "the file extension of any file type supported by Ebi (" + text.Join(catalog.Extensions(), ", ", " or ") + ")"
}

// InteropHandlers returns the interop handlers able to import host objects
// for any of the alternatives, without duplicates.
func InteropHandlers(catalog *registry.Catalog, alternatives []SlotSpec) []*registry.InteropHandler {
	seen := make(map[*registry.InteropHandler]bool)
	var result []*registry.InteropHandler
	for _, alt := range alternatives {
		for _, i := range alt.interopHandlers(catalog) {
			if seen[i] || !i.ImportsFromHost() {
				continue
			}
			seen[i] = true
			result = append(result, i)
		}
	}
	return result
}

func (s SlotSpec) interopHandlers(catalog *registry.Catalog) []*registry.InteropHandler {
	switch s.kind {
	case slotCapability, slotObject, slotAnyObject:
		return registry.InteropHandlers(s.Handlers(catalog))
	case slotText:
		return TextInterop
	case slotInteger:
		return IntegerInterop
	case slotFraction:
		return FractionInterop
	default:
		// file handlers cannot be passed from the host
		return nil
	}
}

func withArticle(article, name string) string {
	if article == "" {
		return name
	}
	return article + " " + name
}
