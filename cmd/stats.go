package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizflip/internal/screens/dashboard"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/abhisek/quizflip/internal/store"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session statistics and the analytics dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if err := rt.open(ctx); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printStats(out, rt.engine)

		events := rt.store.EventRepo()
		totals, err := events.AnswerTotals(ctx)
		if err != nil {
			return fmt.Errorf("query answer totals: %w", err)
		}
		hardest, err := events.HardestQuestions(ctx, 5)
		if err != nil {
			return fmt.Errorf("query hardest questions: %w", err)
		}
		printHistory(out, totals, hardest)
		return nil
	},
}

// printStats writes the current session's counters and analytics.
func printStats(out io.Writer, e *session.Engine) {
	st := e.Stats()
	d := e.Dashboard()
	sep := strings.Repeat("─", 48)

	fmt.Fprintln(out, "Session")
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "%-20s %d\n", "Questions", st.Total)
	fmt.Fprintf(out, "%-20s %d\n", "Answered", st.Answered)
	fmt.Fprintf(out, "%-20s %d\n", "Wrong", st.Wrong)
	fmt.Fprintf(out, "%-20s %d%%\n", "Accuracy", st.Accuracy)
	fmt.Fprintf(out, "%-20s %d%% (%s)\n", "Progress", e.Progress(), e.Mode())

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Timing")
	fmt.Fprintln(out, sep)
	if d.TimedQuestions == 0 {
		fmt.Fprintln(out, "No answers timed yet.")
	} else {
		fmt.Fprintf(out, "%-20s %s\n", "Average", dashboard.FormatDuration(d.Average))
		fmt.Fprintf(out, "%-20s %s\n", "Total", dashboard.FormatDuration(d.Total))
		fmt.Fprintf(out, "%-20s %s\n", "Fastest", dashboard.FormatDuration(d.Fastest))
		fmt.Fprintf(out, "%-20s %s\n", "Slowest", dashboard.FormatDuration(d.Slowest))
	}

	if len(d.WeakTopics) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Weak topics")
		fmt.Fprintln(out, sep)
		for _, wt := range d.WeakTopics {
			fmt.Fprintf(out, "%s %s\n", mark(wt.LastCorrect), runewidth.Truncate(firstLine(wt.Title), 46, "…"))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recommendations")
	fmt.Fprintln(out, sep)
	for _, r := range d.Recommendations {
		fmt.Fprintf(out, "• %s\n", r)
	}
}

// printHistory writes all-time figures from the event store.
func printHistory(out io.Writer, totals store.AnswerTotals, hardest []store.QuestionTally) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "All time")
	fmt.Fprintln(out, strings.Repeat("─", 48))
	fmt.Fprintf(out, "%-20s %d\n", "Sessions", totals.Sessions)
	fmt.Fprintf(out, "%-20s %d\n", "Answers", totals.Answers)
	fmt.Fprintf(out, "%-20s %d\n", "Correct", totals.Correct)

	if len(hardest) == 0 {
		return
	}
	fmt.Fprintln(out)
	tbl := newTable(out,
		column{title: "Most missed", width: 30},
		column{title: "Wrong", width: 8, right: true},
		column{title: "Avg", width: 8, right: true},
	)
	tbl.header()
	for _, q := range hardest {
		tbl.row(firstLine(q.Title),
			fmt.Sprintf("%d/%d", q.Attempts-q.Correct, q.Attempts),
			fmt.Sprintf("%.1fs", float64(q.AvgTimeMs)/1000))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
