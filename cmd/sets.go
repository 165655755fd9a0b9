package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List available question sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		names := catalog.DiscoverSets(cfg.QuestionsDir)
		listSets(cmd.Context(), cmd.OutOrStdout(), names, cfg.QuestionsDir)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate question set files",
	Long: `Validate question set files against the set schema and report questions
whose answer does not resolve to an option letter.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if !checkFile(cmd.OutOrStdout(), path) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed validation", failed, len(args))
		}
		return nil
	},
}

// listSets loads each set on its own and prints its size and key health.
func listSets(ctx context.Context, out io.Writer, names []string, dir string) {
	loader := catalog.NewLoader()
	tbl := newTable(out,
		column{title: "Set", width: 40},
		column{title: "Questions", width: 9, right: true},
		column{title: "Unresolved", width: 10, right: true},
	)
	tbl.header()
	for _, name := range names {
		c, err := loader.Load(ctx, []catalog.Source{catalog.ParseSource(name, dir)})
		if err != nil {
			tbl.note(name, fmt.Sprintf("error: %v", sourceCause(err)))
			continue
		}
		tbl.row(name, c.Len(), len(unresolved(c.Questions)))
	}
}

// checkFile validates one file and reports its problems. It returns false
// when the file cannot be used.
func checkFile(out io.Writer, path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return false
	}
	qs, err := catalog.Decode(raw)
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return false
	}

	bad := unresolved(qs)
	if len(bad) == 0 {
		fmt.Fprintf(out, "✓ %s: %d questions\n", path, len(qs))
		return true
	}
	fmt.Fprintf(out, "! %s: %d questions, %d with an unresolvable answer\n", path, len(qs), len(bad))
	for _, i := range bad {
		q := qs[i]
		fmt.Fprintf(out, "    #%d %s (answer %q)\n", i+1, runewidth.Truncate(firstLine(q.Title), 50, "…"), q.Answer)
	}
	return true
}

// unresolved returns the positions of questions whose answer has no key or
// names a key none of the options carries.
func unresolved(qs []catalog.Question) []int {
	var out []int
	for i := range qs {
		k, ok := qs[i].CorrectKey()
		if !ok {
			out = append(out, i)
			continue
		}
		if _, found := qs[i].OptionFor(k); !found {
			out = append(out, i)
		}
	}
	return out
}

func sourceCause(err error) error {
	var se *catalog.SourceError
	if errors.As(err, &se) {
		return se.Err
	}
	return err
}
