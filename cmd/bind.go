package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/log"
	"github.com/zjrosen/ebi/internal/source"
)

// bindInputs turns the positional arguments of c into resolved values, one
// per declared input.
func bindInputs(ctx context.Context, c *cobra.Command, args []string) ([]input.Resolved, error) {
	slots := inputSlots[c]
	if len(args) != len(slots) {
		return nil, fmt.Errorf("%s: expected %d inputs, got %d", c.CommandPath(), len(slots), len(args))
	}
	out := make([]input.Resolved, len(slots))
	for i, alternatives := range slots {
		r, err := bindArg(ctx, alternatives, args[i])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i+1, err)
		}
		out[i] = r
	}
	return out, nil
}

func bindArg(ctx context.Context, alternatives []input.SlotSpec, arg string) (input.Resolved, error) {
	parser := input.ValueParserFor(alternatives)
	v, err := parser.Parse(formats.Catalog, arg)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatCLI, "parsed argument", "parser", parser, "arg", arg)
	if parser != input.ParsePath {
		return v.(input.Resolved), nil
	}

	src, err := source.Open(v.(string))
	if err != nil {
		return nil, err
	}
	return resolveFile(ctx, src, alternatives)
}

// resolveFile tries the file alternatives in declaration order. The first
// success wins; when all fail the error of the last one is returned.
func resolveFile(ctx context.Context, src source.Source, alternatives []input.SlotSpec) (input.Resolved, error) {
	var lastErr error
	for _, alt := range alternatives {
		var (
			r   input.Resolved
			err error
		)
		if c, ok := alt.Capability(); ok {
			r, err = resolver.ReadAsTrait(ctx, c, src)
		} else if k, ok := alt.ObjectKind(); ok {
			r, err = resolver.ReadAsObject(ctx, k, src)
		} else if alt == input.AnyObjectSlot {
			r, err = resolver.ReadAsAnyObject(ctx, src)
		} else {
			continue
		}
		if err == nil {
			return r, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return nil, fmt.Errorf("%s cannot be read as %s", src.Name(), describeAlternatives(alternatives))
	}
	return nil, lastErr
}
