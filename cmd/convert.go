package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/registry"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert objects into other types",
}

var convertLangCmd = &cobra.Command{
	Use:   "lang <file>",
	Short: "Convert a file into a finite language",
	Long: `Read any file that has a finite language and write it in the .lang format.

Accepted inputs:
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := bindInputs(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		lang, err := input.As[formats.FiniteLanguage](resolved[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), formats.NewLanguage(lang.Traces()...).String())
		return err
	},
}

func init() {
	declareInputs(convertLangCmd, []input.SlotSpec{input.CapabilitySlot(registry.CapabilityFiniteLanguage)})
	convertLangCmd.Long += possibleInputsHelp(convertLangCmd)
	convertCmd.AddCommand(convertLangCmd)
	rootCmd.AddCommand(convertCmd)
}
