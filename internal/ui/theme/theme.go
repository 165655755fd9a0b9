package theme

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colors. Apply installs one as the package-level
// colors and styles.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
	Code      color.Color
	CodeBg    color.Color
}

// DefaultName is the theme used when none is selected or the selected one is
// unknown.
const DefaultName = "default"

var palettes = map[string]Palette{
	DefaultName: {
		Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgDark:    lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
		Code:      lipgloss.Color("#FDE68A"),
		CodeBg:    lipgloss.Color("#111827"),
	},
	"light": {
		Primary:   lipgloss.Color("#6D28D9"),
		Secondary: lipgloss.Color("#0F766E"),
		Accent:    lipgloss.Color("#C2410C"),
		Success:   lipgloss.Color("#15803D"),
		Error:     lipgloss.Color("#BE123C"),
		Text:      lipgloss.Color("#0F172A"),
		TextDim:   lipgloss.Color("#475569"),
		BgDark:    lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#94A3B8"),
		Code:      lipgloss.Color("#9A3412"),
		CodeBg:    lipgloss.Color("#F1F5F9"),
	},
}

// Color palette of the active theme.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
	Code      color.Color
	CodeBg    color.Color
)

// Styles of the active theme. They are rebuilt by Apply.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style

	InlineCode lipgloss.Style
	CodeBlock  lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
)

var current = DefaultName

func init() {
	Apply(DefaultName)
}

// Names returns the known theme names, default first.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		if n != DefaultName {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultName}, names...)
}

// Current returns the name of the applied theme.
func Current() string { return current }

// Resolve returns name if it is a known theme, else DefaultName.
func Resolve(name string) string {
	if _, ok := palettes[name]; ok {
		return name
	}
	return DefaultName
}

// Next returns the theme after name in Names order, wrapping around.
func Next(name string) string {
	names := Names()
	name = Resolve(name)
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return DefaultName
}

// Apply installs the named theme and returns the name actually applied.
func Apply(name string) string {
	name = Resolve(name)
	p := palettes[name]
	current = name

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border
	Code, CodeBg = p.Code, p.CodeBg

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	InlineCode = lipgloss.NewStyle().
		Foreground(Code).
		Background(CodeBg)

	CodeBlock = lipgloss.NewStyle().
		Foreground(Code).
		Background(CodeBg).
		Padding(0, 1)

	ProgressFilled = lipgloss.NewStyle().
		Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Foreground(Border)

	return name
}
