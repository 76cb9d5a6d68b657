// Package manual generates the ebi manual from the command tree and the
// format catalog.
package manual

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/ebi/internal/cachemanager"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/log"
	"github.com/zjrosen/ebi/internal/registry"
	"github.com/zjrosen/ebi/internal/text"
)

// Describer is implemented by command trees that carry a short description
// per command.
type Describer interface {
	Description(path []string) string
}

// Generator writes the manual.
type Generator struct {
	catalog  *registry.Catalog
	tree     input.CommandTree
	commands *cachemanager.ReadThroughCache[string, [][]string, input.SlotSpec]
	ttl      time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithCache memoises applicable-command lookups in cache for ttl.
func WithCache(cache cachemanager.CacheManager[string, [][]string], ttl time.Duration) Option {
	return func(g *Generator) {
		g.commands = cachemanager.NewReadThroughCache[string, [][]string, input.SlotSpec](cache, g.lookup, false)
		g.ttl = ttl
	}
}

// NewGenerator returns a generator over catalog and tree.
func NewGenerator(catalog *registry.Catalog, tree input.CommandTree, opts ...Option) *Generator {
	g := &Generator{catalog: catalog, tree: tree}
	g.commands = cachemanager.NewReadThroughCache[string, [][]string, input.SlotSpec](nil, g.lookup, true)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) lookup(_ context.Context, spec input.SlotSpec) ([][]string, error) {
	return input.ApplicableCommands(g.tree, spec), nil
}

// CommandsFor returns the commands with an argument accepting spec.
func (g *Generator) CommandsFor(ctx context.Context, spec input.SlotSpec) ([][]string, error) {
	return g.commands.Get(ctx, spec.Key(), spec, g.ttl)
}

// HandlerCommands returns the commands that accept files of handler h,
// through any of its capabilities, its object kinds, or as any object.
func (g *Generator) HandlerCommands(ctx context.Context, h *registry.FormatHandler) ([][]string, error) {
	var specs []input.SlotSpec
	for _, imp := range h.TraitImporters() {
		specs = append(specs, input.CapabilitySlot(imp.Capability))
	}
	for _, imp := range h.ObjectImporters() {
		specs = append(specs, input.ObjectSlot(imp.Kind))
	}
	if len(h.ObjectImporters()) > 0 {
		specs = append(specs, input.AnyObjectSlot)
	}

	seen := make(map[string]bool)
	var result [][]string
	for _, spec := range specs {
		paths, err := g.CommandsFor(ctx, spec)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			key := strings.Join(path, " ")
			if !seen[key] {
				seen[key] = true
				result = append(result, path)
			}
		}
	}
	slices.SortFunc(result, func(a, b []string) int { return slices.Compare(a, b) })
	return result, nil
}

// Markdown renders the manual as markdown.
func (g *Generator) Markdown(ctx context.Context) (string, error) {
	var b strings.Builder
	b.WriteString("# Ebi manual\n\n## Commands\n\n")
	for _, path := range g.sortedPaths() {
		fmt.Fprintf(&b, "### `%s`\n\n", commandName(path))
		if d := g.description(path); d != "" {
			b.WriteString(d + "\n\n")
		}
		slots := g.tree.InputSlots(path)
		if len(slots) == 0 {
			b.WriteString("No inputs.\n\n")
			continue
		}
		b.WriteString("Inputs:\n\n")
		for i, alternatives := range slots {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, acceptedTypes(alternatives),
				input.PossibleInputsWithArticles(g.catalog, alternatives, " or "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## File handlers\n\n")
	for _, h := range g.catalog.Handlers() {
		fmt.Fprintf(&b, "### %s\n\n", h)
		if err := g.writeHandler(ctx, &b, h, "`%s`"); err != nil {
			return "", err
		}
	}
	log.Debug(log.CatManual, "generated markdown manual", "bytes", b.Len())
	return b.String(), nil
}

// Latex renders the manual as LaTeX sections, with cross-references between
// commands and file handlers.
func (g *Generator) Latex(ctx context.Context) (string, error) {
	var b strings.Builder
	b.WriteString("\\section{Commands}\n\n")
	for _, path := range g.sortedPaths() {
		fmt.Fprintf(&b, "\\subsection{\\texttt{%s}}\\label{command:%s}\n\n", commandName(path), commandName(path))
		if d := g.description(path); d != "" {
			b.WriteString(d + "\n\n")
		}
		slots := g.tree.InputSlots(path)
		if len(slots) == 0 {
			continue
		}
		b.WriteString("\\begin{enumerate}\n")
		for _, alternatives := range slots {
			fmt.Fprintf(&b, "\\item %s: %s\n", acceptedTypes(alternatives),
				text.Join(input.PossibleInputsLatex(g.catalog, alternatives), ", ", " or "))
		}
		b.WriteString("\\end{enumerate}\n\n")
	}

	b.WriteString("\\section{File handlers}\n\n")
	for _, h := range g.catalog.Handlers() {
		fmt.Fprintf(&b, "\\subsection{%s}\\label{filehandler:%s}\n\n", h, h.Name())
		if err := g.writeHandler(ctx, &b, h, "\\hyperref[command:%[1]s]{\\texttt{%[1]s}}"); err != nil {
			return "", err
		}
	}
	log.Debug(log.CatManual, "generated latex manual", "bytes", b.Len())
	return b.String(), nil
}

func (g *Generator) writeHandler(ctx context.Context, b *strings.Builder, h *registry.FormatHandler, commandFormat string) error {
	fmt.Fprintf(b, "File extension: .%s\n\n", h.Extension())

	var caps, kinds []string
	for _, imp := range h.TraitImporters() {
		caps = append(caps, imp.Capability.String())
	}
	for _, imp := range h.ObjectImporters() {
		kinds = append(kinds, imp.Kind.String())
	}
	if len(kinds) > 0 {
		fmt.Fprintf(b, "Imports as object: %s\n\n", text.Join(kinds, ", ", " and "))
	}
	if len(caps) > 0 {
		fmt.Fprintf(b, "Imports as: %s\n\n", text.Join(caps, ", ", " and "))
	}

	paths, err := g.HandlerCommands(ctx, h)
	if err != nil {
		return fmt.Errorf("commands of %s: %w", h, err)
	}
	if len(paths) == 0 {
		b.WriteString("Not accepted by any command.\n\n")
		return nil
	}
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = fmt.Sprintf(commandFormat, commandName(path))
	}
	fmt.Fprintf(b, "Accepted by: %s\n\n", text.Join(names, ", ", " and "))
	return nil
}

func (g *Generator) sortedPaths() [][]string {
	paths := slices.Clone(g.tree.CommandPaths())
	slices.SortFunc(paths, func(a, b []string) int { return slices.Compare(a, b) })
	return paths
}

func (g *Generator) description(path []string) string {
	if d, ok := g.tree.(Describer); ok {
		return d.Description(path)
	}
	return ""
}

func commandName(path []string) string {
	return strings.Join(append([]string{"ebi"}, path...), " ")
}

// acceptedTypes names the alternatives with their articles, e.g.
// "a finite language or an event log".
func acceptedTypes(alternatives []input.SlotSpec) string {
	names := make([]string, len(alternatives))
	for i, alt := range alternatives {
		if a := alt.Article(); a != "" {
			names[i] = a + " " + alt.String()
		} else {
			names[i] = alt.String()
		}
	}
	return text.Join(names, ", ", " or ")
}
