package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizflip/internal/answerkey"
	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/session"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review questions line by line on stdin/stdout",
	Long: `Review questions without the full-screen interface.

Type an option letter to answer. Lower-case commands:
  n next   p prev   r random   s shuffle   w toggle wrong-only
  stats    reset    q quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.open(cmd.Context()); err != nil {
			return err
		}
		return runLineReview(cmd.Context(), rt.engine, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runLineReview drives e from line commands read from in until EOF or quit.
func runLineReview(ctx context.Context, e *session.Engine, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	printCard(out, e)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		case "n", "next":
			e.Next()
		case "p", "prev":
			e.Prev()
		case "r", "random":
			e.RandomNext()
		case "s", "shuffle":
			e.Shuffle()
		case "w", "wrong":
			e.ToggleMode()
			fmt.Fprintf(out, "Mode: %s\n", e.Mode())
		case "reset":
			e.ResetSession()
			fmt.Fprintln(out, "Session reset.")
		case "stats":
			printStats(out, e)
			continue
		default:
			answerLine(out, e, line)
			continue
		}
		printCard(out, e)
	}
}

func answerLine(out io.Writer, e *session.Engine, line string) {
	q, ok := e.CurrentQuestion()
	if !ok {
		fmt.Fprintln(out, "No questions loaded.")
		return
	}
	if e.Locked() {
		fmt.Fprintln(out, "Already answered. Type n for the next question.")
		return
	}
	k, ok := lineKey(line)
	if !ok {
		fmt.Fprintf(out, "Unknown command %q. Type an option letter or q to quit.\n", line)
		return
	}
	if _, offered := q.OptionFor(k); !offered {
		fmt.Fprintf(out, "No option %s on this question.\n", k)
		return
	}

	o := e.SubmitAnswer(k)
	switch {
	case !o.Scored:
		fmt.Fprintln(out, "Not scored.")
	case !o.CorrectResolved:
		fmt.Fprintln(out, "This question's answer has no option letter.")
	case o.IsCorrect:
		fmt.Fprintln(out, "Correct!")
	default:
		fmt.Fprintf(out, "Not quite. Answer: %s\n", o.Correct)
	}
	if q.Explain != "" {
		fmt.Fprintln(out, plainText(q.Explain))
	}
	done, total := e.Counts()
	fmt.Fprintf(out, "Progress: %d/%d (%d%%)\n", done, total, e.Progress())
	if e.Finished() {
		fmt.Fprintln(out, "All done! Type reset to start over or w to review missed questions.")
	}
}

// lineKey accepts a bare letter or an option label such as "b)".
func lineKey(line string) (answerkey.Key, bool) {
	if len(line) == 1 {
		return answerkey.Resolve(line)
	}
	return answerkey.ResolvePlain(line)
}

func printCard(out io.Writer, e *session.Engine) {
	q, ok := e.CurrentQuestion()
	if !ok {
		fmt.Fprintln(out, "No questions loaded. Select at least one question set with --set.")
		return
	}
	fmt.Fprintf(out, "\n[%d/%d] %s", e.Cursor()+1, len(e.ActiveList()), plainText(q.Title))
	if e.IsMissed(q.ID) {
		fmt.Fprint(out, " (missed before)")
	}
	fmt.Fprintln(out)
	if q.Code != "" {
		fmt.Fprintf(out, "\n%s\n", indent(q.Code, "    "))
	}
	fmt.Fprintln(out)
	for _, o := range q.Options {
		fmt.Fprintf(out, "  %s\n", o.Display())
	}
}

// plainText renders rich text without styling.
func plainText(s string) string {
	var b strings.Builder
	for _, seg := range catalog.RichText(s) {
		switch seg.Kind {
		case catalog.SegmentCodeBlock:
			b.WriteString("\n" + indent(seg.Text, "    ") + "\n")
		case catalog.SegmentInlineCode:
			b.WriteString("`" + seg.Text + "`")
		default:
			b.WriteString(seg.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
