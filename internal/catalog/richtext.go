package catalog

import "strings"

// SegmentKind classifies a piece of rich text.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentInlineCode
	SegmentCodeBlock
)

// Segment is a run of text with a single presentation.
type Segment struct {
	Kind SegmentKind
	Text string
}

// RichText splits question text into plain runs, `inline code` and
// ```fenced blocks```. Unterminated markers are kept as plain text.
func RichText(s string) []Segment {
	var out []Segment
	for s != "" {
		open := strings.Index(s, "```")
		if open < 0 {
			out = append(out, inlineSegments(s)...)
			break
		}
		end := strings.Index(s[open+3:], "```")
		if end < 0 {
			out = append(out, inlineSegments(s)...)
			break
		}
		out = append(out, inlineSegments(s[:open])...)
		block := s[open+3 : open+3+end]
		out = append(out, Segment{Kind: SegmentCodeBlock, Text: trimFence(block)})
		s = s[open+3+end+3:]
	}
	return out
}

// trimFence drops an optional language tag line and surrounding newlines.
func trimFence(block string) string {
	if nl := strings.IndexByte(block, '\n'); nl >= 0 {
		first := strings.TrimSpace(block[:nl])
		if first != "" && !strings.ContainsAny(first, " \t(){};=") {
			block = block[nl+1:]
		}
	}
	return strings.Trim(block, "\n")
}

func inlineSegments(s string) []Segment {
	var out []Segment
	for s != "" {
		open := strings.IndexByte(s, '`')
		if open < 0 {
			out = append(out, Segment{Kind: SegmentText, Text: s})
			break
		}
		end := strings.IndexByte(s[open+1:], '`')
		if end < 0 || strings.ContainsRune(s[open+1:open+1+end], '\n') || end == 0 {
			out = append(out, Segment{Kind: SegmentText, Text: s[:open+1]})
			s = s[open+1:]
			continue
		}
		if open > 0 {
			out = append(out, Segment{Kind: SegmentText, Text: s[:open]})
		}
		out = append(out, Segment{Kind: SegmentInlineCode, Text: s[open+1 : open+1+end]})
		s = s[open+1+end+1:]
	}
	return merge(out)
}

// merge joins adjacent plain segments.
func merge(in []Segment) []Segment {
	var out []Segment
	for _, seg := range in {
		if n := len(out); n > 0 && seg.Kind == SegmentText && out[n-1].Kind == SegmentText {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}
