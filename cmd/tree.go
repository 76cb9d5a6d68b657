package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/text"
)

// inputSlots holds the positional arguments declared by each command.
var inputSlots = map[*cobra.Command][][]input.SlotSpec{}

// declareInputs records the positional arguments of c, one list of
// alternatives per argument, and validates the argument count from them.
func declareInputs(c *cobra.Command, slots ...[]input.SlotSpec) {
	inputSlots[c] = slots
	c.Args = slotArgs(slots)
}

func slotArgs(slots [][]input.SlotSpec) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) == len(slots) {
			return nil
		}
		names := make([]string, len(slots))
		for i, alternatives := range slots {
			names[i] = describeAlternatives(alternatives)
		}
		return fmt.Errorf("expected %d inputs (%s), got %d", len(slots), strings.Join(names, "; "), len(args))
	}
}

func describeAlternatives(alternatives []input.SlotSpec) string {
	names := make([]string, len(alternatives))
	for i, alt := range alternatives {
		names[i] = strings.TrimSpace(alt.Article() + " " + alt.String())
	}
	return text.Join(names, ", ", " or ")
}

// commandTree exposes the cobra command tree to input and manual.
type commandTree struct {
	root *cobra.Command
}

func newCommandTree() commandTree {
	return commandTree{root: rootCmd}
}

// CommandPaths lists every runnable, visible command below the root.
func (t commandTree) CommandPaths() [][]string {
	var paths [][]string
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			if sub.Runnable() {
				paths = append(paths, t.path(sub))
			}
			walk(sub)
		}
	}
	walk(t.root)
	return paths
}

func (t commandTree) path(c *cobra.Command) []string {
	return strings.Fields(c.CommandPath())[1:]
}

func (t commandTree) find(path []string) *cobra.Command {
	c, rest, err := t.root.Find(path)
	if err != nil || len(rest) > 0 || c == t.root {
		return nil
	}
	return c
}

// InputSlots returns the declared inputs of the command at path.
func (t commandTree) InputSlots(path []string) [][]input.SlotSpec {
	if c := t.find(path); c != nil {
		return inputSlots[c]
	}
	return nil
}

// Description returns the short description of the command at path.
func (t commandTree) Description(path []string) string {
	if c := t.find(path); c != nil {
		return c.Short
	}
	return ""
}

// possibleInputsHelp documents the inputs of c in its long help.
func possibleInputsHelp(c *cobra.Command) string {
	var b strings.Builder
	for i, alternatives := range inputSlots[c] {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, describeAlternatives(alternatives),
			input.PossibleInputsWithArticles(formats.Catalog, alternatives, " or "))
	}
	return b.String()
}
