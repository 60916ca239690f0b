package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/venusquiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		full, _ := cmd.Flags().GetBool("full")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.EventRepo().QueryAttempts(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		printAttempts(cmd.OutOrStdout(), attempts, full)
		return nil
	},
}

func printAttempts(w io.Writer, attempts []store.AttemptRecord, full bool) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No finished attempts yet.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-7s  %5s  %-8s  %s\n", "Timestamp", "Score", "%", "Duration", "Evaluation")
	fmt.Fprintln(w, rule(100))
	for _, a := range attempts {
		var pct float64
		if a.TotalQuestions > 0 {
			pct = float64(a.Score) / float64(a.TotalQuestions) * 100
		}
		eval := a.Evaluation
		if a.EvaluationFallback {
			eval = "(fallback) " + eval
		}
		if !full {
			eval = truncate(eval, 56)
		}
		fmt.Fprintf(w, "%-19s  %-7s  %4.0f%%  %-8s  %s\n",
			a.Timestamp.Local().Format(timeLayout),
			fmt.Sprintf("%d/%d", a.Score, a.TotalQuestions),
			pct,
			fmt.Sprintf("%d:%02d", a.DurationSecs/60, a.DurationSecs%60),
			eval,
		)
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().Bool("full", false, "Show the whole evaluation text")
}
