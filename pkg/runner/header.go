package runner

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// timestampLayout is the header timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// headerStyles renders the two header fields.
// The zero value renders plain text.
type headerStyles struct {
	enabled bool
	left    lipgloss.Style
	right   lipgloss.Style
}

func newHeaderStyles(w io.Writer, color bool) headerStyles {
	if !color {
		return headerStyles{}
	}

	r := lipgloss.NewRenderer(w)
	return headerStyles{
		enabled: true,
		left:    r.NewStyle().Bold(true),
		right:   r.NewStyle().Faint(true),
	}
}

func (s headerStyles) renderLeft(text string) string {
	if !s.enabled {
		return text
	}
	return s.left.Render(text)
}

func (s headerStyles) renderRight(text string) string {
	if !s.enabled {
		return text
	}
	return s.right.Render(text)
}

// formatHeader builds the header line without the trailing newline.
//
// The left field is args joined by single spaces. When right is non-empty
// it is pushed to the last columns of a terminal width columns wide; with
// width 0 or too little room it follows the left field directly.
func formatHeader(styles headerStyles, args []string, right string, width int) string {
	left := strings.Join(args, " ")

	var b strings.Builder
	b.WriteString(styles.renderLeft(left))

	if right == "" {
		return b.String()
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding > 0 {
		b.WriteString(strings.Repeat(" ", padding))
	}
	b.WriteString(styles.renderRight(right))

	return b.String()
}
