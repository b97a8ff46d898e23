package cmd

import (
	"fmt"
	"strconv"

	"github.com/abhisek/codegenius/internal/client"
	"github.com/abhisek/codegenius/internal/question"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Add or list questions through the question service",
}

var questionsAddCmd = &cobra.Command{
	Use:   "add <question>",
	Short: "Add a question to a track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := questionClient(cmd)
		if err != nil {
			return err
		}
		track, _ := cmd.Flags().GetString("track")

		msg, err := c.Add(cmd.Context(), question.Question{Question: args[0], TechStack: track})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of a track",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := questionClient(cmd)
		if err != nil {
			return err
		}
		track, _ := cmd.Flags().GetString("track")

		qs, err := c.Questions(cmd.Context(), track)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(qs) == 0 {
			fmt.Fprintln(out, "No questions found.")
			return nil
		}

		tbl := newTable("#", "Track", "Question")
		for i, q := range qs {
			tbl.Row(strconv.Itoa(i+1), truncate(q.TechStack, 12), q.Question)
		}
		fmt.Fprintln(out, tbl)
		return nil
	},
}

func questionClient(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.Client.APIBase = v
	}
	return client.New(cfg.Client.APIBase, cfg.Client.FetchTimeout), nil
}

func init() {
	questionsCmd.PersistentFlags().String("api", "", "Question service base URL (overrides CODEGENIUS_API_BASE)")

	questionsAddCmd.Flags().StringP("track", "t", "", "Tech stack the question belongs to (default general)")
	questionsListCmd.Flags().StringP("track", "t", "", "Tech stack to list (empty lists every track)")

	questionsCmd.AddCommand(questionsAddCmd)
	questionsCmd.AddCommand(questionsListCmd)
}
