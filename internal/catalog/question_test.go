package catalog

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/quizflip/internal/answerkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption_UnmarshalMixed(t *testing.T) {
	raw := `["A) first", {"label": " b ", "text": "second"}, {"text": "C) third", "code": "x()"}, "plain"]`

	var opts []Option
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))
	require.Len(t, opts, 4)

	assert.False(t, opts[0].Structured)
	assert.Equal(t, "A) first", opts[0].Text)
	assert.True(t, opts[1].Structured)
	assert.Equal(t, "x()", opts[2].Code)

	wantKeys := []struct {
		key answerkey.Key
		ok  bool
	}{
		{"A", true},
		{"B", true},
		{"C", true},
		{answerkey.None, false},
	}
	for i, w := range wantKeys {
		k, ok := opts[i].Key()
		assert.Equal(t, w.key, k, "option %d key", i)
		assert.Equal(t, w.ok, ok, "option %d resolved", i)
	}
}

func TestOption_MarshalKeepsShape(t *testing.T) {
	opts := []Option{PlainOption("A) one"), {Label: "B", Text: "two", Structured: true}}
	data, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `["A) one", {"label": "B", "text": "two"}]`, string(data))
}

func TestOption_Display(t *testing.T) {
	assert.Equal(t, "A) one", PlainOption("A) one").Display())
	assert.Equal(t, "B) two", Option{Label: "b", Text: "two", Structured: true}.Display())
	assert.Equal(t, "C) three", Option{Label: "C", Text: "C) three", Structured: true}.Display())
	assert.Equal(t, "D)", Option{Label: "D", Structured: true}.Display())
}

func TestQuestion_OptionFor(t *testing.T) {
	q := Question{
		Options: []Option{PlainOption("A) one"), PlainOption("B) two"), PlainOption("inert")},
		Answer:  "b",
	}
	k, ok := q.CorrectKey()
	require.True(t, ok)
	opt, found := q.OptionFor(k)
	require.True(t, found)
	assert.Equal(t, "B) two", opt.Text)

	_, found = q.OptionFor(answerkey.None)
	assert.False(t, found)
}

func TestNormalizeLang(t *testing.T) {
	tests := map[string]string{
		"":         "javascript",
		"nodejs":   "javascript",
		"NodeJS":   "javascript",
		"python3":  "python",
		"golang":   "go",
		"bash":     "sh",
		"rust":     "rust",
		" Python ": "python",
	}
	for in, want := range tests {
		if got := NormalizeLang(in); got != want {
			t.Errorf("NormalizeLang(%q) = %q, want %q", in, got, want)
		}
	}
}
