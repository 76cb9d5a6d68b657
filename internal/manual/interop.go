package manual

import (
	"fmt"
	"strings"

	"github.com/zjrosen/ebi/internal/input"
)

// Interop lists, per command input, the host types it can be called with.
func (g *Generator) Interop() string {
	var b strings.Builder
	for _, path := range g.sortedPaths() {
		for i, alternatives := range g.tree.InputSlots(path) {
			handlers := input.InteropHandlers(g.catalog, alternatives)
			if len(handlers) == 0 {
				fmt.Fprintf(&b, "%s, input %d: not importable from the host\n", commandName(path), i+1)
				continue
			}
			parts := make([]string, len(handlers))
			for j, h := range handlers {
				parts[j] = fmt.Sprintf("%s (%s)", h.Name, h.HostType)
			}
			fmt.Fprintf(&b, "%s, input %d: %s\n", commandName(path), i+1, strings.Join(parts, ", "))
		}
	}
	return b.String()
}
