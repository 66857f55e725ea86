package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricing-modeller/core/config"
	"pricing-modeller/core/database"
	"pricing-modeller/core/drafts"
	"pricing-modeller/core/loader"
	"pricing-modeller/core/logger"
	"pricing-modeller/core/middleware/rayid"
	"pricing-modeller/core/middleware/requestlog"
	"pricing-modeller/core/reconcile"
	"pricing-modeller/core/storage"
	"pricing-modeller/feature/integrity"
	"pricing-modeller/feature/modeller"
	"pricing-modeller/feature/submission"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pricing modeller server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := context.WithCancel(context.Background())
		defer stop()

		// 3. Connect to Database (Optional)
		db := connectDatabase(cfg, logg)

		// 4. Draft store: Redis when configured, memory otherwise
		store := draftStore(cfg, logg)
		registry := reconcile.NewRegistry(store, cfg.Session.IdleTTL(), logg)
		go registry.Run(ctx, cfg.Session.SweepInterval())

		// 5. Initialize Storage (Optional)
		client, exporter := exportStorage(ctx, cfg, logg)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(requestlog.New(logg))

		// 7. Register and load features
		mgr := loader.NewManager(logg)
		mgr.Register(modeller.NewFeature(registry, logg, time.Duration(cfg.Server.StreamIdleSeconds)*time.Second))
		mgr.Register(submission.NewFeature(db, exporter, registry, logg))
		mgr.Register(integrity.NewFeature(registry, db, client, cfg.Storage.Bucket, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stop()
		_ = app.Shutdown()
	},
}

func connectDatabase(cfg *config.Config, logg *zap.Logger) *gorm.DB {
	if !cfg.Database.Enabled {
		logg.Info("Database disabled, submissions are off")
		return nil
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	if cfg.Database.AutoMigrate {
		if err := submission.Migrate(db); err != nil {
			logg.Warn("Submission table migration failed", zap.Error(err))
		}
	}
	logg.Info("Connected to database", zap.String("driver", db.Dialector.Name()))
	return db
}

func draftStore(cfg *config.Config, logg *zap.Logger) reconcile.DraftStore {
	if !cfg.Redis.Enabled {
		return drafts.NewMemoryStore()
	}
	client, err := drafts.Connect(cfg.Redis)
	if err != nil {
		logg.Warn("Redis unavailable, keeping drafts in memory", zap.Error(err))
		return drafts.NewMemoryStore()
	}
	logg.Info("Drafts stored in Redis", zap.String("addr", cfg.Redis.Addr))
	return drafts.NewRedisStore(client, cfg.Redis.KeyPrefix, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
}

func exportStorage(ctx context.Context, cfg *config.Config, logg *zap.Logger) (storage.Client, *submission.Exporter) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Failed to create storage client", zap.Error(err))
		return nil, nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(checkCtx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		logg.Warn("Export bucket unavailable", zap.Error(err))
	}
	return client, submission.NewExporter(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
}

func init() {
	RootCmd.AddCommand(startCmd)
}
