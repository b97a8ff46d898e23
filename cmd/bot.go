package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/abhisek/codegenius/internal/config"
	"github.com/abhisek/codegenius/internal/feedback"
	"github.com/abhisek/codegenius/internal/httpserver"
	"github.com/abhisek/codegenius/internal/llm"
	"github.com/abhisek/codegenius/internal/store"
	"github.com/spf13/cobra"
)

// botWriteSlack is added to the feedback timeout so a slow provider reply
// can still be written back.
const botWriteSlack = 15 * time.Second

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the feedback service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Bot.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("provider") {
			cfg.Bot.LLMProvider, _ = cmd.Flags().GetString("provider")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := cfg.Log.NewLogger(os.Stderr)

		events, closeEvents := openEventRepo(cfg, logger)
		defer closeEvents()

		llmCfg := llm.DefaultConfig()
		if cfg.Bot.LLMProvider != "" {
			llmCfg.Provider = cfg.Bot.LLMProvider
		}
		llmCfg = llm.ResolveConfig(llmCfg)

		provider, err := llm.NewProvider(cmd.Context(), llmCfg, events, logger)
		if err != nil {
			return err
		}
		if provider == nil {
			logger.Warn("no LLM provider configured, using local feedback")
		} else {
			logger.Info("LLM provider ready", "provider", llmCfg.Provider)
		}

		fbCfg := feedback.DefaultConfig()
		svc := feedback.NewService(provider, fbCfg, logger)
		handler := feedback.NewHandler(svc, logger)

		srvCfg := serverConfig(cfg)
		if floor := fbCfg.Timeout + botWriteSlack; srvCfg.WriteTimeout < floor {
			srvCfg.WriteTimeout = floor
		}

		logger.Info("feedback service starting", "addr", cfg.Bot.Addr())
		return httpserver.Run(cmd.Context(), cfg.Bot.Addr(), handler, srvCfg, logger)
	},
}

// openEventRepo opens the request log. Logging is best effort: without a
// database the bot still answers.
func openEventRepo(cfg *config.Config, logger *slog.Logger) (store.EventRepo, func()) {
	noop := func() {}
	if cfg.Store.Driver == config.StoreMemory {
		return nil, noop
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		logger.Warn("request log disabled", "err", err)
		return nil, noop
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("request log disabled", "path", dbPath, "err", err)
		return nil, noop
	}
	return st.EventRepo(), func() {
		if err := st.Close(); err != nil {
			logger.Warn("close store", "err", err)
		}
	}
}

func init() {
	botCmd.Flags().IntP("port", "p", 0, "Listen port (overrides BOT_PORT)")
	botCmd.Flags().String("provider", "", "LLM provider: anthropic, openai, gemini, openrouter, mock or none")
}
