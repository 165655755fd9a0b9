package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/session"
)

func lineEngine(t *testing.T) *session.Engine {
	t.Helper()
	qs := []catalog.Question{
		{Title: "Pick `one`", Options: []catalog.Option{catalog.PlainOption("A) one"), catalog.PlainOption("B) two")}, Answer: "A"},
		{Title: "Pick two", Code: "x := 2", Options: []catalog.Option{catalog.PlainOption("A) one"), catalog.PlainOption("B) two")}, Answer: "B", Explain: "Two is two."},
	}
	e := session.NewEngine()
	if err := e.ApplyCatalog(catalog.New([]string{"t.json"}, [][]catalog.Question{qs})); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRunLineReview(t *testing.T) {
	e := lineEngine(t)
	var out strings.Builder
	in := strings.NewReader("B\nA\nn\nb)\nstats\nq\nA\n")

	if err := runLineReview(context.Background(), e, in, &out); err != nil {
		t.Fatalf("runLineReview: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[1/2] Pick `one`",
		"Not quite. Answer: A",
		"Already answered.",
		"[2/2] Pick two",
		"    x := 2",
		"Correct!",
		"Two is two.",
		"Progress: 2/2 (100%)",
		"All done!",
		"Accuracy",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	// Input after q is never read.
	if st := e.Stats(); st.Answered != 2 || st.Wrong != 1 {
		t.Errorf("Stats() = %+v, want 2 answered, 1 wrong", st)
	}
}

func TestRunLineReview_Commands(t *testing.T) {
	e := lineEngine(t)
	var out strings.Builder
	in := strings.NewReader("hello\nw\nreset\n")

	if err := runLineReview(context.Background(), e, in, &out); err != nil {
		t.Fatalf("runLineReview: %v", err)
	}
	got := out.String()
	for _, want := range []string{`Unknown command "hello"`, "Mode: wrongs", "Session reset."} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if e.Stats().Answered != 0 {
		t.Error("unknown command was scored as an answer")
	}
}

func TestRunLineReview_UnofferedLetter(t *testing.T) {
	e := lineEngine(t)
	var out strings.Builder
	in := strings.NewReader("z\nC)\nB\n")

	if err := runLineReview(context.Background(), e, in, &out); err != nil {
		t.Fatalf("runLineReview: %v", err)
	}
	got := out.String()
	for _, want := range []string{"No option Z on this question.", "No option C on this question.", "Not quite. Answer: A"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if st := e.Stats(); st.Answered != 1 || st.Wrong != 1 {
		t.Errorf("Stats() = %+v, want only the offered letter scored", st)
	}
}

func TestRunLineReview_Empty(t *testing.T) {
	e := session.NewEngine()
	var out strings.Builder
	if err := runLineReview(context.Background(), e, strings.NewReader("A\n"), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No questions loaded") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPlainText(t *testing.T) {
	got := plainText("Use `map`:\n```js\nxs.map(f)\n```")
	if !strings.Contains(got, "Use `map`:") || !strings.Contains(got, "    xs.map(f)") {
		t.Errorf("plainText = %q", got)
	}
}
