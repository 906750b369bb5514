package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal switches an input file in and out of raw mode so single key
// presses arrive without waiting for Enter.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	isRaw    bool
}

// NewTerminal creates a Terminal that reads from in and writes to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:  in,
		out: out,
	}
}

// IsTerminal reports whether the input is an interactive terminal.
func (t *Terminal) IsTerminal() bool {
	return t.in != nil && term.IsTerminal(int(t.in.Fd()))
}

// EnterRaw puts the terminal into raw mode.
// Returns an error if already in raw mode or if the operation fails.
func (t *Terminal) EnterRaw() error {
	if t.isRaw {
		return fmt.Errorf("terminal already in raw mode")
	}

	fd := int(t.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}

	t.oldState = oldState
	t.isRaw = true
	return nil
}

// ExitRaw restores the terminal to its original state.
// Safe to call even if not in raw mode.
func (t *Terminal) ExitRaw() error {
	if !t.isRaw || t.oldState == nil {
		return nil
	}

	fd := int(t.in.Fd())
	if err := term.Restore(fd, t.oldState); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}

	t.isRaw = false
	t.oldState = nil
	return nil
}

// IsRaw returns true if the terminal is in raw mode.
func (t *Terminal) IsRaw() bool {
	return t.isRaw
}

// Read reads up to len(p) bytes from the terminal input.
func (t *Terminal) Read(p []byte) (n int, err error) {
	return t.in.Read(p)
}

// Output returns a writer for the terminal output.
func (t *Terminal) Output() io.Writer {
	return t.Writer(t.out)
}

// Writer wraps w for use while t may be in raw mode, where the terminal no
// longer turns "\n" into "\r\n" on its own.
func (t *Terminal) Writer(w io.Writer) io.Writer {
	return &rawWriter{t: t, w: w}
}

type rawWriter struct {
	t *Terminal
	w io.Writer
}

func (w *rawWriter) Write(p []byte) (int, error) {
	if !w.t.isRaw {
		return w.w.Write(p)
	}
	if _, err := w.w.Write(CRLF(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// CRLF replaces every "\n" in p that is not already preceded by "\r".
func CRLF(p []byte) []byte {
	if !bytes.Contains(p, []byte{'\n'}) {
		return p
	}
	out := make([]byte, 0, len(p)+8)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	return out
}

// ANSI escape sequences used for line editing.
const (
	ClearLine = "\033[K" // Clear from cursor to end of line
	Bell      = "\a"
)

// CursorBack returns an ANSI escape sequence to move the cursor back n columns.
func CursorBack(n int) string {
	return fmt.Sprintf("\033[%dD", n)
}
