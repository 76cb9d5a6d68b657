package input

import (
	"slices"
	"strings"
)

// CommandTree exposes the commands of the CLI together with the inputs they
// declare.
type CommandTree interface {
	// CommandPaths lists the path of every runnable command, e.g.
	// ["analyse", "most-likely"].
	CommandPaths() [][]string
	// InputSlots returns, per positional argument of the command at path,
	// the alternatives it accepts.
	InputSlots(path []string) [][]SlotSpec
}

// ApplicableCommands returns the distinct command paths that have at least
// one argument accepting spec, sorted.
func ApplicableCommands(tree CommandTree, spec SlotSpec) [][]string {
	seen := make(map[string]bool)
	var result [][]string
	for _, path := range tree.CommandPaths() {
		if !accepts(tree.InputSlots(path), spec) {
			continue
		}
		key := strings.Join(path, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, slices.Clone(path))
	}
	slices.SortFunc(result, func(a, b []string) int { return slices.Compare(a, b) })
	return result
}

func accepts(slots [][]SlotSpec, spec SlotSpec) bool {
	for _, alternatives := range slots {
		if slices.Contains(alternatives, spec) {
			return true
		}
	}
	return false
}
