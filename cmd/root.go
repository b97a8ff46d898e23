package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/codegenius/internal/config"
	"github.com/abhisek/codegenius/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codegenius",
	Short: "Mock technical interview trainer",
	Long:  "CodeGenius: practice technical interviews out loud in the terminal, backed by a question service and an AI feedback bot.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML or TOML config file")
	pf.String("env-file", "", "Path to a dotenv file (default .env)")
	pf.String("db", "", "Path to SQLite database file (overrides CODEGENIUS_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	addInterviewFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the layered configuration and applies the persistent
// flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(config.LoadOptions{ConfigFile: file, EnvFile: envFile})
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if _, err := config.ParseLevel(lvl); err != nil {
			return nil, err
		}
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (--db flag, then
// CODEGENIUS_DB), falling back to the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
