package cmd

import (
	"context"
	"fmt"
	"time"

	"pricing-modeller/core/config"
	"pricing-modeller/core/database"
	"pricing-modeller/core/logger"
	"pricing-modeller/core/storage"
	"pricing-modeller/feature/submission"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit <model.json>",
	Short: "Store a pricing model as a submission",
	Long:  `Removes invalid features, stores the model in the submissions table and, when storage is enabled, exports it to the bucket. Prints the submission id.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readModelFile(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := submission.Migrate(db); err != nil {
			return err
		}

		var exporter *submission.Exporter
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return err
			}
			exporter = submission.NewExporter(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Database.TimeoutSeconds)*time.Second)
		defer cancel()

		svc := submission.NewService(submission.NewRepository(db), exporter, nil, logg)
		res, err := svc.Submit(ctx, submission.Request{PricingModel: &m})
		if err != nil {
			return err
		}

		logg.Info("Model submitted", zap.String("id", res.ID))
		fmt.Fprintln(cmd.OutOrStdout(), res.ID)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(submitCmd)
}
