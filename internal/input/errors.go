package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/ebi/internal/registry"
)

// ValidateCommand is the command suggested when a file cannot be read as the
// requested capability.
const ValidateCommand = "ebi validate"

// ErrNotRecognised is returned by ReadAsObject and ReadAsAnyObject when every
// candidate importer rejected the input. It deliberately carries no cause.
var ErrNotRecognised = errors.New("file could not be recognised")

// FormatParseError is one handler's rejection of the input.
type FormatParseError struct {
	Handler *registry.FormatHandler
	Err     error
}

func (e *FormatParseError) Error() string {
	return fmt.Sprintf("the last attempted importer was: %s: %v", e.Handler, e.Err)
}

func (e *FormatParseError) Unwrap() error {
	return e.Err
}

// TraitResolutionError is returned by ReadAsTrait when every candidate
// importer rejected the input. It wraps the last rejection only.
type TraitResolutionError struct {
	Capability registry.Capability
	Attempted  []*registry.FormatHandler
	Err        *FormatParseError
}

func (e *TraitResolutionError) Error() string {
	names := make([]string, len(e.Attempted))
	for i, h := range e.Attempted {
		names[i] = h.String()
	}
	return fmt.Sprintf("could not read file as %s %s; attempted to parse it as either %s. If you know the type of your file, use `%s` to check it: %v",
		e.Capability.Article(), e.Capability, strings.Join(names, ", "), ValidateCommand, e.Err)
}

func (e *TraitResolutionError) Unwrap() error {
	return e.Err
}

// NoCandidatesError is returned when nothing in the catalog declares an
// importer for the request, so no attempt was made at all.
type NoCandidatesError struct {
	Requested string
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no file handler can import %s; nothing was attempted", e.Requested)
}
