package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/ebi/internal/registry"
)

// ValueParser is the grammar used for a raw command-line argument before it
// is resolved.
type ValueParser int

const (
	// ParsePath accepts a file path ("-" is standard input).
	ParsePath ValueParser = iota
	// ParseText accepts any text.
	ParseText
	// ParseInteger accepts an unsigned integer.
	ParseInteger
	// ParseFileHandler accepts the name or extension of a file handler.
	ParseFileHandler
	// ParseFraction accepts a fraction token without interpreting it.
	ParseFraction
)

var errEmptyPath = errors.New("empty path")

func (p ValueParser) String() string {
	switch p {
	case ParsePath:
		return "path"
	case ParseText:
		return "text"
	case ParseInteger:
		return "integer"
	case ParseFileHandler:
		return "file handler"
	case ParseFraction:
		return "fraction"
	default:
		return fmt.Sprintf("parser(%d)", int(p))
	}
}

// ValueParserFor selects the grammar of an argument from the first of its
// alternatives. Later alternatives never change the grammar, so an argument
// declared as [Text, Integer] is parsed as text. Without alternatives the
// argument is text.
func ValueParserFor(alternatives []SlotSpec) ValueParser {
	if len(alternatives) == 0 {
		return ParseText
	}
	switch alternatives[0].kind {
	case slotCapability, slotObject, slotAnyObject:
		return ParsePath
	case slotInteger:
		return ParseInteger
	case slotFileHandler:
		return ParseFileHandler
	case slotFraction:
		return ParseFraction
	default:
		return ParseText
	}
}

// Parse applies the grammar to arg. Paths come back as strings, to be opened
// and resolved by the caller; the other grammars return the matching
// Resolved value.
func (p ValueParser) Parse(catalog *registry.Catalog, arg string) (any, error) {
	switch p {
	case ParsePath:
		if arg == "" {
			return nil, errEmptyPath
		}
		return arg, nil
	case ParseInteger:
		n, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an unsigned integer: %w", arg, err)
		}
		return IntegerInput(n), nil
	case ParseFileHandler:
		h, err := catalog.Lookup(arg)
		if err != nil {
			return nil, err
		}
		return &FileHandlerInput{Handler: h}, nil
	case ParseFraction:
		return FractionInput(arg), nil
	default:
		return TextInput(arg), nil
	}
}
