// Package answerkey resolves the letter keys that identify multiple-choice
// options and canonical answers in question sets.
package answerkey

import (
	"regexp"
	"strings"
)

// Key identifies a choice, normally a single upper-case letter ("A", "B", ...).
// Structured options may carry a longer label; it is kept verbatim after
// trimming and upper-casing.
type Key string

// None is the zero Key. Resolvers report it together with ok=false.
const None Key = ""

// plainOptionPattern matches a leading letter followed by a closing
// parenthesis, e.g. "C) 10" or "b )foo".
var plainOptionPattern = regexp.MustCompile(`(?i)^([A-Z])\s*\)`)

// Resolve returns the first character of the trimmed, upper-cased text when
// it is a letter A-Z. It is used for canonical answer fields.
//
//	Resolve("c) 10")  // "C", true
//	Resolve(" 42")    // "", false
func Resolve(text string) (Key, bool) {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return None, false
	}
	c := s[0]
	if c < 'A' || c > 'Z' {
		return None, false
	}
	return Key(c), true
}

// ResolvePlain resolves a plain-text option. Unlike Resolve it requires the
// letter to be followed by ")", so option text that merely starts with a
// letter ("Array") does not resolve.
func ResolvePlain(text string) (Key, bool) {
	m := plainOptionPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return None, false
	}
	return Key(strings.ToUpper(m[1])), true
}

// ResolveLabeled resolves a structured option. A non-empty label wins and is
// returned trimmed and upper-cased; otherwise text is parsed like a plain
// option.
func ResolveLabeled(label, text string) (Key, bool) {
	if l := strings.ToUpper(strings.TrimSpace(label)); l != "" {
		return Key(l), true
	}
	return ResolvePlain(text)
}

// Letter returns the key for the zero-based option position i ("A" for 0).
// It reports false outside A-Z.
func Letter(i int) (Key, bool) {
	if i < 0 || i >= 26 {
		return None, false
	}
	return Key(rune('A' + i)), true
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if k == None {
		return "-"
	}
	return string(k)
}
