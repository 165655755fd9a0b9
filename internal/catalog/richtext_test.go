package catalog

import (
	"reflect"
	"testing"
)

func TestRichText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "plain",
			in:   "no code here",
			want: []Segment{{SegmentText, "no code here"}},
		},
		{
			name: "inline",
			in:   "call `f()` twice",
			want: []Segment{{SegmentText, "call "}, {SegmentInlineCode, "f()"}, {SegmentText, " twice"}},
		},
		{
			name: "block with lang tag",
			in:   "see:\n```js\nlet x = 1;\n```\ndone",
			want: []Segment{{SegmentText, "see:\n"}, {SegmentCodeBlock, "let x = 1;"}, {SegmentText, "\ndone"}},
		},
		{
			name: "unterminated inline",
			in:   "a ` b",
			want: []Segment{{SegmentText, "a ` b"}},
		},
		{
			name: "unterminated block",
			in:   "```x",
			want: []Segment{{SegmentText, "```x"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RichText(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("RichText(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
