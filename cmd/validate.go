package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/source"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file-handler> <file>",
	Short: "Check a file against one file handler",
	Long: `Check whether a file is a valid instance of the given file handler and show
the parse error if it is not. Only that handler is tried.

Examples:
  ebi validate slang model.slang
  ebi validate "finite language" model.lang`,
	RunE: runValidate,
}

func init() {
	declareInputs(validateCmd, []input.SlotSpec{input.FileHandlerSlot}, []input.SlotSpec{input.AnyObjectSlot})
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	handler, err := bindArg(cmd.Context(), inputSlots[cmd][0], args[0])
	if err != nil {
		return err
	}
	h := handler.(*input.FileHandlerInput).Handler

	src, err := source.Open(args[1])
	if err != nil {
		return err
	}
	if err := resolver.ValidateObjectOf(cmd.Context(), src, h); err != nil {
		return fmt.Errorf("%s is not a valid %s: %w", src.Name(), h, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s\n", src.Name(), h)
	return nil
}
