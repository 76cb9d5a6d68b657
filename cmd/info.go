package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/registry"
	"github.com/zjrosen/ebi/internal/source"
)

var infoAs string

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show information about a file",
	Long: `Detect the type of a file and show a summary of its contents.

Without --as, every file handler is tried in order and the first object that
can be read wins. With --as, only importers of that object kind are tried.

Examples:
  ebi info log.xes
  ebi info --as "finite language" model.lang
  cat model.slang | ebi info -`,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoAs, "as", "", "object kind to read the file as (e.g. \"finite language\")")
	declareInputs(infoCmd, []input.SlotSpec{input.AnyObjectSlot})
	rootCmd.AddCommand(infoCmd)
}

type summarizer interface {
	Summary() string
}

func runInfo(cmd *cobra.Command, args []string) error {
	var object *input.ObjectInput
	if infoAs == "" {
		resolved, err := bindInputs(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		object = resolved[0].(*input.ObjectInput)
	} else {
		kind, err := registry.ParseObjectKind(infoAs)
		if err != nil {
			return err
		}
		src, err := source.Open(args[0])
		if err != nil {
			return err
		}
		if object, err = resolver.ReadAsObject(cmd.Context(), kind, src); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "object type: %s\n", object.Kind)
	fmt.Fprintf(out, "file handler: %s\n", object.Handler)
	if s, ok := object.Value.(summarizer); ok {
		fmt.Fprintln(out, s.Summary())
	}
	return nil
}
