// Package text holds small helpers for producing user-facing prose.
package text

import "strings"

// Join renders items as a natural-language list: every item but the last is
// separated by sep, and the last one is attached with last.
//
//	Join([]string{"x", "y", "z"}, ", ", " or ") == "x, y or z"
func Join(items []string, sep, last string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], sep) + last + items[len(items)-1]
}
