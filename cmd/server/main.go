package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/team-task-api/internal/config"
	"github.com/yukikurage/team-task-api/internal/database"
	"github.com/yukikurage/team-task-api/internal/logger"
	"github.com/yukikurage/team-task-api/internal/metrics"
	"github.com/yukikurage/team-task-api/internal/server"
	"github.com/yukikurage/team-task-api/internal/services"
	"github.com/yukikurage/team-task-api/internal/version"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "team-task-api",
	Short: "Team task management API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(envFile)
		log := logger.New(cfg.LogLevel)
		defer log.Sync()

		gin.SetMode(cfg.GinMode)

		db, err := database.Connect(cfg, log)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		store, err := server.NewSessionStore(cfg)
		if err != nil {
			return err
		}

		// Keep the interface nil when no key is configured.
		var drafter services.TaskDrafter
		if cfg.OpenAIAPIKey != "" {
			drafter = services.NewAIService(cfg.OpenAIAPIKey)
		} else {
			log.Warn("OPENAI_API_KEY not set, task drafting disabled")
		}

		router := server.NewRouter(server.Dependencies{
			Config:       cfg,
			Logger:       log,
			DB:           db,
			SessionStore: store,
			Metrics:      metrics.New(),
			Drafter:      drafter,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = server.Run(ctx, ":"+cfg.Port, router, log)

		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(envFile)
		log := logger.New(cfg.LogLevel)
		defer log.Sync()

		db, err := database.Connect(cfg, log)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		log.Info("migrations applied", zap.String("driver", cfg.DBDriver))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd, version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
