package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/registry"
)

var analyseCmd = &cobra.Command{
	Use:   "analyse",
	Short: "Analyse stochastic languages",
}

var analyseMostLikelyCmd = &cobra.Command{
	Use:   "most-likely <model> <number-of-traces>",
	Short: "Find the most likely traces",
	Long: `Write the given number of most likely traces of a finite stochastic language,
most likely first, in the .slang format. Probabilities are not renormalised.

Accepted inputs:
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := bindInputs(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		lang, err := input.As[formats.FiniteStochasticLanguage](resolved[0])
		if err != nil {
			return err
		}
		n := uint64(resolved[1].(input.IntegerInput))
		if n > uint64(lang.Len()) {
			n = uint64(lang.Len())
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), formats.FormatStochastic(formats.MostLikely(lang, int(n))))
		return err
	},
}

var analyseMinProbabilityCmd = &cobra.Command{
	Use:   "min-probability <model> <fraction>",
	Short: "Find the traces with at least a given probability",
	Long: `Write the traces of a finite stochastic language whose probability is at least
the given fraction, most likely first, in the .slang format.

Accepted inputs:
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := bindInputs(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		lang, err := input.As[formats.FiniteStochasticLanguage](resolved[0])
		if err != nil {
			return err
		}
		threshold, err := input.FractionToken(resolved[1].(input.FractionInput)).Rat()
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), formats.FormatStochastic(formats.AtLeast(lang, threshold)))
		return err
	},
}

func init() {
	fsl := input.CapabilitySlot(registry.CapabilityFiniteStochasticLanguage)
	declareInputs(analyseMostLikelyCmd, []input.SlotSpec{fsl}, []input.SlotSpec{input.IntegerSlot})
	declareInputs(analyseMinProbabilityCmd, []input.SlotSpec{fsl}, []input.SlotSpec{input.FractionSlot})
	analyseMostLikelyCmd.Long += possibleInputsHelp(analyseMostLikelyCmd)
	analyseMinProbabilityCmd.Long += possibleInputsHelp(analyseMinProbabilityCmd)

	analyseCmd.AddCommand(analyseMostLikelyCmd, analyseMinProbabilityCmd)
	rootCmd.AddCommand(analyseCmd)
}
