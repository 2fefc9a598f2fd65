package runner

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ansiTerminal drives a terminal with ANSI escape sequences.
type ansiTerminal struct {
	out *termenv.Output
	fd  int
	tty bool
}

// NewTerminal returns a Terminal writing control sequences to w.
// The width is only known when w is a terminal device.
func NewTerminal(w io.Writer) Terminal {
	t := &ansiTerminal{
		out: termenv.NewOutput(w),
		fd:  -1,
	}

	if f, ok := w.(*os.File); ok {
		t.fd = int(f.Fd())
		t.tty = term.IsTerminal(t.fd)
	}

	return t
}

// Clear implements Terminal.Clear.
func (t *ansiTerminal) Clear() {
	t.out.ClearScreen()
}

// Width implements Terminal.Width.
func (t *ansiTerminal) Width() int {
	if !t.tty {
		return 0
	}

	width, _, err := term.GetSize(t.fd)
	if err != nil || width < 0 {
		return 0
	}

	return width
}

// EnterAltScreen implements Terminal.EnterAltScreen.
func (t *ansiTerminal) EnterAltScreen() {
	t.out.AltScreen()
}

// ExitAltScreen implements Terminal.ExitAltScreen.
func (t *ansiTerminal) ExitAltScreen() {
	t.out.ExitAltScreen()
}
