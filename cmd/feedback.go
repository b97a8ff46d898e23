package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/codegenius/internal/llm"
	"github.com/abhisek/codegenius/internal/store"
	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Inspect feedback requests the bot sent to its LLM provider",
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent feedback requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		tbl := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		var shown int
		for _, e := range events {
			if (purpose != "" && e.Purpose != purpose) || (failedOnly && e.Success) {
				continue
			}
			shown++
			tbl.Row(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(time.DateTime),
				truncate(e.Purpose, 10),
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				mark(e.Success),
			)
		}

		out := cmd.OutOrStdout()
		if shown == 0 {
			fmt.Fprintln(out, "No feedback requests found.")
			return nil
		}
		fmt.Fprintln(out, tbl)
		return nil
	},
}

var feedbackViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of one feedback call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var feedbackStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost of feedback calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		usage := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		var calls, in, outTok int
		for _, u := range byPurpose {
			usage.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.Itoa(u.InputTokens+u.OutputTokens),
				strconv.FormatInt(u.AvgLatencyMs, 10))
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		usage.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")
		fmt.Fprintln(out, "Usage by Purpose")
		fmt.Fprintln(out, usage)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		costs := newTable("Model", "Calls", "Input", "Output", "Cost")
		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if price := llm.LookupCost(u.Model); price != nil {
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			costs.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), cost)
		}
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		costs.Row(label, "", "", "", formatCost(total))

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, costs)
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func printEvent(out io.Writer, e *store.LLMRequestEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "ID:        %d\n", e.ID)
	fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(out, "Model:     %s\n", e.Model)
	fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(out, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ name, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, part.name)
		fmt.Fprintln(out, sep)
		if part.body == "" {
			fmt.Fprintln(out, "(not captured)")
		} else {
			fmt.Fprintln(out, part.body)
		}
	}
}

func init() {
	feedbackListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	feedbackListCmd.Flags().StringP("purpose", "p", llm.PurposeFeedback, "Filter by purpose label (empty shows all)")
	feedbackListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 24h)")
	feedbackListCmd.Flags().Bool("failed", false, "Only show failed requests")

	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackViewCmd)
	feedbackCmd.AddCommand(feedbackStatsCmd)
}
