package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/playground"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <set> <n>",
	Short: "Run the code snippet of question n in a set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid question number %q", args[1])
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx := cmd.Context()
		c, err := catalog.NewLoader().Load(ctx, []catalog.Source{catalog.ParseSource(args[0], cfg.QuestionsDir)})
		if err != nil {
			return err
		}
		if n > c.Len() {
			return fmt.Errorf("%s has %d questions", args[0], c.Len())
		}
		q := c.Questions[n-1]
		if strings.TrimSpace(q.Code) == "" {
			return fmt.Errorf("question %d has no code", n)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n", firstLine(q.Title))
		res, err := playground.NewRunner(cfg.PlaygroundTimeout).Run(ctx, q.Language(), q.Code)
		switch {
		case errors.Is(err, playground.ErrUnsupportedLanguage):
			return fmt.Errorf("cannot run %s snippets", q.Language())
		case err != nil:
			return err
		}

		for _, e := range res.Lines() {
			if e.Kind == playground.KindError {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", e.Message)
				continue
			}
			fmt.Fprintln(out, e.Message)
		}
		fmt.Fprintf(out, "\nexit %d · %s\n", res.ExitCode, res.Duration.Round(time.Millisecond))
		return nil
	},
}
