package cmd

import (
	"fmt"

	"github.com/abhisek/codegenius/internal/app"
	"github.com/abhisek/codegenius/internal/client"
	"github.com/abhisek/codegenius/internal/feedback"
	"github.com/abhisek/codegenius/internal/speech"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Start a mock interview in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func init() {
	addInterviewFlags(interviewCmd)
}

func addInterviewFlags(c *cobra.Command) {
	c.Flags().String("api", "", "Question service base URL (overrides CODEGENIUS_API_BASE)")
	c.Flags().String("bot", "", "Feedback service URL (overrides CODEGENIUS_BOT_URL)")
	c.Flags().String("tts", "", "Speech engine: none, espeak or say (overrides CODEGENIUS_TTS)")
	c.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

func runInterview(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.Client.APIBase = v
	}
	if v, _ := cmd.Flags().GetString("bot"); v != "" {
		cfg.Client.BotURL = v
	}
	if v, _ := cmd.Flags().GetString("tts"); v != "" {
		cfg.Speech.Engine = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	// The terminal belongs to the TUI, so logs go to a file or nowhere.
	logger, closer, err := cfg.Log.NewFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	speaker, err := speech.New(cfg.Speech.Engine, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Speech disabled: %v\n", err)
		logger.Warn("speech disabled", "err", err)
	}

	logger.Info("interview client starting",
		"api", cfg.Client.APIBase,
		"bot", cfg.Client.BotURL,
		"speech", cfg.Speech.Engine,
	)

	return app.Run(cmd.Context(), app.Options{
		Questions:    client.New(cfg.Client.APIBase, cfg.Client.FetchTimeout),
		Feedback:     feedback.NewClient(cfg.Client.BotURL, cfg.Client.ChatTimeout),
		Speaker:      speaker,
		APIBase:      cfg.Client.APIBase,
		FetchTimeout: cfg.Client.FetchTimeout,
		Logger:       logger,
		SkipSplash:   noSplash,
	})
}
