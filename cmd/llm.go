package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizflip/internal/llm"
	"github.com/abhisek/quizflip/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the recorded LLM calls behind explanations",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printLLMEvents(cmd.OutOrStdout(), events, purpose)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
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
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printLLMUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

// printLLMEvents lists events, newest first as queried, keeping only
// purpose when it is set.
func printLLMEvents(out io.Writer, events []store.LLMRequestEvent, purpose string) {
	tbl := newTable(out,
		column{title: "ID", width: 5, right: true},
		column{title: "Time", width: len(timeLayout)},
		column{title: "Purpose", width: 10},
		column{title: "Model", width: 28},
		column{title: "In", width: 6, right: true},
		column{title: "Out", width: 6, right: true},
		column{title: "Ms", width: 6, right: true},
		column{title: "OK", width: 2},
	)
	shown := 0
	for _, e := range events {
		if purpose != "" && e.Purpose != purpose {
			continue
		}
		if shown == 0 {
			tbl.header()
		}
		shown++
		tbl.row(e.ID, e.Timestamp.Local().Format(timeLayout), e.Purpose, e.Model,
			e.InputTokens, e.OutputTokens, e.LatencyMs, mark(e.Success))
	}
	if shown == 0 {
		fmt.Fprintln(out, "No LLM calls recorded.")
	}
}

func printLLMEvent(out io.Writer, e *store.LLMRequestEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Result", map[bool]string{true: "ok", false: "failed"}[e.Success]},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
	}

	for _, part := range [][2]string{{"Request", e.RequestBody}, {"Response", e.ResponseBody}} {
		fmt.Fprintf(out, "\n── %s %s\n", part[0], strings.Repeat("─", 56-len(part[0])))
		fmt.Fprintln(out, prettyBody(part[1]))
	}
}

// printLLMUsage writes token totals per purpose and an estimated cost per
// model. Models without known pricing make the total a lower bound.
func printLLMUsage(out io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(out, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(out, "Usage by purpose")
	tbl := newTable(out,
		column{title: "Purpose", width: 16},
		column{title: "Calls", width: 6, right: true},
		column{title: "Input", width: 10, right: true},
		column{title: "Output", width: 10, right: true},
		column{title: "Avg ms", width: 8, right: true},
	)
	tbl.header()
	var calls, in, outTok int
	for _, u := range byPurpose {
		tbl.row(u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		outTok += u.OutputTokens
	}
	tbl.rule()
	tbl.row("total", calls, in, outTok)

	if len(byModel) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated cost (USD)")
	costs := newTable(out,
		column{title: "Model", width: 32},
		column{title: "Calls", width: 6, right: true},
		column{title: "Input", width: 10, right: true},
		column{title: "Output", width: 10, right: true},
		column{title: "Cost", width: 9, right: true},
	)
	costs.header()
	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if p := llm.LookupCost(u.Model); p != nil {
			c := p.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		costs.row(u.Model, u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	costs.rule()
	label := "total"
	if len(unpriced) > 0 {
		label = "total, at least"
	}
	costs.row(label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// prettyBody indents JSON bodies and passes anything else through.
func prettyBody(body string) string {
	if body == "" {
		return "(not captured)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "only show calls for this purpose, such as explain")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

// openStore opens the event store without the session runtime.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
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
