package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ebi/internal/formats"
	"github.com/zjrosen/ebi/internal/input"
	"github.com/zjrosen/ebi/internal/registry"
)

var probabilityCmd = &cobra.Command{
	Use:   "probability",
	Short: "Compute probabilities",
}

var probabilityTraceCmd = &cobra.Command{
	Use:   "trace <model> <trace>",
	Short: "Compute the probability of a trace",
	Long: `Compute the probability of a trace in a stochastic language. The trace is
given as its activities separated by spaces.

Example:
  ebi probability trace model.slang "a b c"

Accepted inputs:
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := bindInputs(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		model, err := input.As[formats.QueriableStochasticLanguage](resolved[0])
		if err != nil {
			return err
		}
		trace := formats.Trace(strings.Fields(string(resolved[1].(input.TextInput))))

		p := model.Probability(trace)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", p.RatString())
		return err
	},
}

func init() {
	declareInputs(probabilityTraceCmd,
		[]input.SlotSpec{input.CapabilitySlot(registry.CapabilityQueriableStochasticLanguage)},
		[]input.SlotSpec{input.TextSlot},
	)
	probabilityTraceCmd.Long += possibleInputsHelp(probabilityTraceCmd)
	probabilityCmd.AddCommand(probabilityTraceCmd)
	rootCmd.AddCommand(probabilityCmd)
}
