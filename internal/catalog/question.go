package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizflip/internal/answerkey"
)

// DefaultLang is the snippet language assumed when a question omits "lang".
const DefaultLang = "javascript"

// Question is a single flashcard as read from a question-set file.
type Question struct {
	// ID is assigned at load time ("q_1", "q_2", ...) by position in the
	// merged input. It is not derived from content.
	ID string `json:"-"`

	// Set is the name of the source this question was read from.
	Set string `json:"-"`

	Title   string   `json:"title"`
	Code    string   `json:"code,omitempty"`
	Lang    string   `json:"lang,omitempty"`
	Options []Option `json:"options"`
	Answer  string   `json:"answer"`
	Explain string   `json:"explain,omitempty"`
}

// Language returns the normalized snippet language.
func (q *Question) Language() string {
	return NormalizeLang(q.Lang)
}

// CorrectKey resolves the canonical answer key.
func (q *Question) CorrectKey() (answerkey.Key, bool) {
	return answerkey.Resolve(q.Answer)
}

// OptionFor returns the first option whose key equals k.
func (q *Question) OptionFor(k answerkey.Key) (Option, bool) {
	if k == answerkey.None {
		return Option{}, false
	}
	for _, o := range q.Options {
		if ok, resolved := o.Key(); resolved && ok == k {
			return o, true
		}
	}
	return Option{}, false
}

// NormalizeLang lower-cases a language tag, maps aliases and applies the
// default for an empty tag.
func NormalizeLang(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "":
		return DefaultLang
	case "nodejs", "node", "js":
		return "javascript"
	case "py", "python3":
		return "python"
	case "golang":
		return "go"
	case "shell", "bash":
		return "sh"
	}
	return l
}

// Option is one answer choice. In files it is either a plain string such as
// "C) 10" or an object {label, text, code}.
type Option struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text,omitempty"`
	Code  string `json:"code,omitempty"`

	// Structured is true when the option was written as an object.
	Structured bool `json:"-"`
}

// PlainOption builds a plain-text option.
func PlainOption(text string) Option {
	return Option{Text: text}
}

// Key resolves the option's key. Options that do not resolve are inert: they
// can never match the correct key.
func (o Option) Key() (answerkey.Key, bool) {
	if o.Structured {
		return answerkey.ResolveLabeled(o.Label, o.Text)
	}
	return answerkey.ResolvePlain(o.Text)
}

// Display returns the text shown for the option. Structured options with a
// label are prefixed with it unless the text already carries one.
func (o Option) Display() string {
	if !o.Structured || o.Label == "" {
		return o.Text
	}
	if _, ok := answerkey.ResolvePlain(o.Text); ok {
		return o.Text
	}
	label := strings.ToUpper(strings.TrimSpace(o.Label))
	if o.Text == "" {
		return label + ")"
	}
	return label + ") " + o.Text
}

// UnmarshalJSON accepts either a JSON string or an object.
func (o *Option) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Option{Text: s}
		return nil
	}

	var raw struct {
		Label string `json:"label"`
		Text  string `json:"text"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("option must be a string or an object: %w", err)
	}
	*o = Option{Label: raw.Label, Text: raw.Text, Code: raw.Code, Structured: true}
	return nil
}

// MarshalJSON writes plain options back as strings.
func (o Option) MarshalJSON() ([]byte, error) {
	if !o.Structured {
		return json.Marshal(o.Text)
	}
	type structured struct {
		Label string `json:"label,omitempty"`
		Text  string `json:"text,omitempty"`
		Code  string `json:"code,omitempty"`
	}
	return json.Marshal(structured{Label: o.Label, Text: o.Text, Code: o.Code})
}
