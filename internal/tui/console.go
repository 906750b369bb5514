package tui

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/thruflo/turing/internal/logging"
)

// Console multiplexes one input stream into single key presses, for the
// pause signal, and whole lines, for input strings. A background goroutine
// decodes keys into a buffered channel; Poll drains it without blocking and
// ReadLine blocks on it.
//
// In raw mode every key stands alone and typed lines are echoed. Otherwise
// the input arrives a line at a time, so a key consumed by Poll also
// consumes the rest of its line.
type Console struct {
	keys      chan KeyEvent
	err       error // set before keys is closed
	out       io.Writer
	errOut    io.Writer
	raw       bool
	terminal  *Terminal
	interrupt func()

	skipLine  bool
	closeOnce sync.Once
}

// NewConsole starts reading keys from in. out receives line echo in raw mode.
// interrupt, if set, is called on Ctrl+C.
func NewConsole(in io.Reader, out io.Writer, raw bool, interrupt func()) *Console {
	c := &Console{
		keys:      make(chan KeyEvent, 64),
		out:       out,
		errOut:    out,
		raw:       raw,
		interrupt: interrupt,
	}
	go c.readKeys(NewKeyReader(in))
	return c
}

// OpenConsole attaches a Console to stdin and stdout, entering raw mode when
// stdin is a terminal. Close restores the terminal.
func OpenConsole(interrupt func()) (*Console, error) {
	t := NewTerminal(os.Stdin, os.Stdout)
	if t.IsTerminal() {
		if err := t.EnterRaw(); err != nil {
			return nil, err
		}
	}

	c := NewConsole(t, t.Output(), t.IsRaw(), interrupt)
	c.errOut = t.Writer(os.Stderr)
	c.terminal = t
	logging.Debug("console opened", "raw", c.raw)
	return c, nil
}

func (c *Console) readKeys(r *KeyReader) {
	defer close(c.keys)
	for {
		ev, err := r.ReadKey()
		if err != nil {
			c.err = err
			return
		}
		if ev.Key == KeyCtrlC && c.interrupt != nil {
			c.interrupt()
			continue
		}
		c.keys <- ev
	}
}

// Out returns the writer for program output. On a raw terminal it translates
// line endings.
func (c *Console) Out() io.Writer {
	return c.out
}

// ErrOut returns the writer for diagnostics, with the same line ending
// handling as Out.
func (c *Console) ErrOut() io.Writer {
	return c.errOut
}

// Poll consumes one pending key press without blocking. Keys without a rune,
// such as Enter, are consumed and reported with a zero rune.
func (c *Console) Poll() (rune, bool) {
	for {
		select {
		case ev, ok := <-c.keys:
			if !ok {
				return 0, false
			}
			if c.skipLine {
				if ev.Key == KeyEnter {
					c.skipLine = false
				}
				continue
			}
			if !c.raw && ev.Key != KeyEnter {
				c.skipLine = true
			}
			if ev.Key == KeyRune {
				return ev.Rune, true
			}
			return 0, true
		default:
			return 0, false
		}
	}
}

// ReadLine blocks until a full line has been entered. A trailing line without
// a terminator is returned when the input ends; after that ReadLine returns
// the input's error, normally io.EOF. Ctrl+D on an empty raw line also ends
// the input.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	editor := NewLineEditor()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-c.keys:
			if !ok {
				if editor.Len() > 0 && !c.skipLine {
					return editor.Text(), nil
				}
				c.skipLine = false
				return "", c.err
			}
			if c.skipLine {
				if ev.Key == KeyEnter {
					c.skipLine = false
				}
				continue
			}
			if ev.Key == KeyCtrlD && c.raw && editor.Len() == 0 {
				return "", io.EOF
			}
			if editor.HandleKey(ev) {
				if c.raw {
					io.WriteString(c.out, "\n")
				}
				return editor.Text(), nil
			}
			if c.raw {
				io.WriteString(c.out, editor.Render())
			}
		}
	}
}

// Close restores the terminal if OpenConsole put it in raw mode. The key
// reading goroutine stays blocked on the input until the process exits.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.terminal != nil {
			err = c.terminal.ExitRaw()
		}
	})
	return err
}
