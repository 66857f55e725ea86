package cmd

import (
	"fmt"

	"pricing-modeller/core/projection"

	"github.com/spf13/cobra"
)

// tableCmd represents the table command
var tableCmd = &cobra.Command{
	Use:   "table <model.json>",
	Short: "Render a pricing model as pricing cards",
	Long:  `Reads a pricing model file ("-" for stdin) and prints its products as cards ordered from the lowest to the highest tier.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readModelFile(args[0])
		if err != nil {
			return err
		}

		table := projection.BuildTable(m)
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(cmd.OutOrStdout(), table)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(table))
		return nil
	},
}

func init() {
	tableCmd.Flags().Bool("json", false, "Output the projection as JSON")
	RootCmd.AddCommand(tableCmd)
}
