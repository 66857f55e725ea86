package cmd

import (
	"fmt"

	"pricing-modeller/core/config"
	"pricing-modeller/core/database"
	"pricing-modeller/feature/integrity/checks"

	"github.com/spf13/cobra"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity <model.json>",
	Short: "Check a pricing model for cross-record problems",
	Long:  `Checks duplicate ids, credit schema references, item references, duplicate item features and multiple flat prices.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readModelFile(args[0])
		if err != nil {
			return err
		}

		report := checks.CheckModel(m)
		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if err := printJSON(out, report); err != nil {
				return err
			}
		} else {
			for _, issue := range report.Issues {
				style := dimStyle
				if issue.Severity == checks.SeverityError {
					style = errorStyle
				}
				fmt.Fprintf(out, "%s [%s] %s: %s\n", style.Render(string(issue.Severity)), issue.Check, issue.Subject, issue.Message)
			}
			if len(report.Issues) == 0 {
				fmt.Fprintln(out, "No issues found.")
			}
		}

		if !report.OK {
			return fmt.Errorf("model has %d issues", len(report.Issues))
		}
		return nil
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the submissions table schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		report, err := checks.CheckServerIntegrity(db)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if !report.Matched {
			return fmt.Errorf("table %s does not match", report.Table)
		}
		return nil
	},
}

func init() {
	integrityCmd.Flags().Bool("json", false, "Output the report as JSON")
	integrityCmd.AddCommand(serverCmd)
	RootCmd.AddCommand(integrityCmd)
}
