package cmd

import (
	"bytes"
	"fmt"

	"pricing-modeller/core/logger"
	"pricing-modeller/core/pricing"
	"pricing-modeller/core/projection"
	"pricing-modeller/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <stream.ndjson>",
	Short: "Apply a recorded model stream to an empty model",
	Long: `Reads newline-delimited stream envelopes ({"type":"delta|done|abort","object":...})
and applies them in order to a fresh engine, then prints the resulting model as cards.
With --verbose every merge is logged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(args[0])
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		logg := zap.NewNop()
		if verbose {
			if logg, err = logger.New(&logger.Config{Level: "debug", Format: "console"}); err != nil {
				return err
			}
			defer logg.Sync()
		}

		engine := reconcile.NewEngine(pricing.Empty(), logg)
		res, err := reconcile.ReplayNDJSON(cmd.Context(), engine, bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("replay stopped: %w", err)
		}

		model := engine.Snapshot()
		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(out, map[string]any{"result": res, "pricing_model": model})
		}

		state := "finalized"
		if !res.Finalized {
			state = "aborted, model kept at the last merged state"
		}
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d deltas applied, %d ignored, %s", res.Deltas, res.Ignored, state)))
		fmt.Fprintln(out, renderTable(projection.BuildTable(model)))
		return nil
	},
}

func init() {
	replayCmd.Flags().Bool("json", false, "Output the result and model as JSON")
	replayCmd.Flags().BoolP("verbose", "v", false, "Log every merge")
	RootCmd.AddCommand(replayCmd)
}
