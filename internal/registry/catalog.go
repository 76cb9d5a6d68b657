package registry

import (
	"fmt"
	"strings"
)

// Catalog is the ordered, immutable list of format handlers. Declaration
// order is the tie-break when several handlers accept the same bytes.
type Catalog struct {
	handlers []*FormatHandler
}

// NewCatalog builds a catalog from handlers in the given order.
// It panics on a nil handler or on a duplicate name or extension: catalogs
// are declared statically, so either is a programming error.
func NewCatalog(handlers ...*FormatHandler) *Catalog {
	names := make(map[string]bool, len(handlers))
	extensions := make(map[string]bool, len(handlers))
	for i, h := range handlers {
		if h == nil {
			panic(fmt.Sprintf("registry: nil file handler at position %d", i))
		}
		if names[h.name] {
			panic(fmt.Sprintf("registry: duplicate file handler name %q", h.name))
		}
		if extensions[h.extension] {
			panic(fmt.Sprintf("registry: duplicate file handler extension %q", h.extension))
		}
		names[h.name] = true
		extensions[h.extension] = true
	}
	return &Catalog{handlers: append([]*FormatHandler(nil), handlers...)}
}

// Handlers returns the handlers in declaration order.
func (c *Catalog) Handlers() []*FormatHandler {
	return append([]*FormatHandler(nil), c.handlers...)
}

// Len returns the number of handlers.
func (c *Catalog) Len() int {
	return len(c.handlers)
}

// ForCapability returns, in catalog order, the handlers that declare an
// importer for capability.
func (c *Catalog) ForCapability(capability Capability) []*FormatHandler {
	var result []*FormatHandler
	for _, h := range c.handlers {
		if h.ImportsCapability(capability) {
			result = append(result, h)
		}
	}
	return result
}

// ForObjectKind returns, in catalog order, the handlers that declare an
// importer for kind.
func (c *Catalog) ForObjectKind(kind ObjectKind) []*FormatHandler {
	var result []*FormatHandler
	for _, h := range c.handlers {
		if h.ImportsObjectKind(kind) {
			result = append(result, h)
		}
	}
	return result
}

// Lookup finds a handler by file extension (with or without the leading dot)
// or by name.
func (c *Catalog) Lookup(token string) (*FormatHandler, error) {
	ext := strings.TrimPrefix(token, ".")
	for _, h := range c.handlers {
		if h.extension == ext {
			return h, nil
		}
	}
	for _, h := range c.handlers {
		if h.name == token {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFileHandler, token, strings.Join(c.Extensions(), ", "))
}

// Extensions returns the handlers' file extensions in catalog order.
func (c *Catalog) Extensions() []string {
	result := make([]string, len(c.handlers))
	for i, h := range c.handlers {
		result[i] = h.extension
	}
	return result
}

// InteropHandlers flattens the interop handlers of the given file handlers,
// keeping the first occurrence of each handler.
func InteropHandlers(handlers []*FormatHandler) []*InteropHandler {
	seen := make(map[*InteropHandler]bool)
	var result []*InteropHandler
	for _, h := range handlers {
		for _, i := range h.interop {
			if seen[i] {
				continue
			}
			seen[i] = true
			result = append(result, i)
		}
	}
	return result
}
