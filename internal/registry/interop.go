package registry

// TranslateFunc converts an object between the host runtime's representation
// and ebi's.
type TranslateFunc func(any) (any, error)

// InteropHandler describes how one kind of object crosses the boundary with
// an external host runtime. Identity is the pointer: two handlers with equal
// fields are still distinct.
type InteropHandler struct {
	Name     string        // e.g. "finite stochastic language"
	HostType string        // host-native type name
	ToHost   TranslateFunc // nil when ebi objects cannot be exported
	FromHost TranslateFunc // nil when host objects cannot be imported
}

// ImportsFromHost reports whether the handler can translate host objects into
// ebi objects.
func (i *InteropHandler) ImportsFromHost() bool {
	return i != nil && i.FromHost != nil
}

// ExportsToHost reports whether the handler can translate ebi objects into
// host objects.
func (i *InteropHandler) ExportsToHost() bool {
	return i != nil && i.ToHost != nil
}
