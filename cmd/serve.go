package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/codegenius/internal/api"
	"github.com/abhisek/codegenius/internal/config"
	"github.com/abhisek/codegenius/internal/httpserver"
	"github.com/abhisek/codegenius/internal/question"
	"github.com/abhisek/codegenius/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("store") {
			driver, _ := cmd.Flags().GetString("store")
			cfg.Store.Driver = driver
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := cfg.Log.NewLogger(os.Stderr)

		repo, closeRepo := openQuestionRepo(cfg, logger)
		defer closeRepo()

		gateway := question.NewGateway(repo, question.NewCatalog(),
			question.WithLogger(logger),
			question.WithStoreTimeout(cfg.Store.Timeout),
		)
		handler := api.NewHandler(api.Config{Gateway: gateway, Logger: logger})

		logger.Info("question service starting", "addr", cfg.Server.Addr(), "store", cfg.Store.Driver)
		return httpserver.Run(cmd.Context(), cfg.Server.Addr(), handler, serverConfig(cfg), logger)
	},
}

// openQuestionRepo returns the durable repository for the configured store.
// When the database cannot be opened the service still starts and serves
// the fallback catalog, so the returned repository is nil.
func openQuestionRepo(cfg *config.Config, logger *slog.Logger) (question.Repository, func()) {
	noop := func() {}
	if cfg.Store.Driver == config.StoreMemory {
		return question.NewMemoryRepository(), noop
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		logger.Warn("store unavailable, serving fallback catalog", "err", err)
		return nil, noop
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("store unavailable, serving fallback catalog", "path", dbPath, "err", err)
		return nil, noop
	}
	logger.Info("store opened", "path", dbPath)
	return st.QuestionRepo(), func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", "err", err)
		}
	}
}

func serverConfig(cfg *config.Config) httpserver.Config {
	return httpserver.Config{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides PORT)")
	serveCmd.Flags().String("store", "", fmt.Sprintf("Question store: %s or %s", config.StoreSQLite, config.StoreMemory))
}
