package tui

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key identifies a decoded key press.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune
)

// KeyEvent is one key press. Rune is set only for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// KeyReader decodes key presses from a byte stream. It works on a raw
// terminal and on piped input alike.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey blocks until the next key press has been decoded.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch {
	case b == 0x03:
		return KeyEvent{Key: KeyCtrlC}, nil
	case b == 0x04:
		return KeyEvent{Key: KeyCtrlD}, nil
	case b == '\t':
		return KeyEvent{Key: KeyTab}, nil
	case b == '\r':
		// Only swallow an LF that has already arrived; Peek would block a
		// raw terminal, which sends CR alone.
		if k.reader.Buffered() > 0 {
			if next, _ := k.reader.Peek(1); next[0] == '\n' {
				k.reader.ReadByte()
			}
		}
		return KeyEvent{Key: KeyEnter}, nil
	case b == '\n':
		return KeyEvent{Key: KeyEnter}, nil
	case b == 0x7F || b == 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case b == 0x1B:
		return k.readEscape()
	case b >= 0x20 && b < 0x7F:
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	case b >= 0xC0:
		return k.readUTF8(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readEscape decodes the cursor keys the line editor moves with. An Escape
// not followed by CSI or SS3 is reported on its own and the next byte is left
// for the following read. Other sequences, such as the up arrow or ESC [ 3 ~,
// are consumed and reported as KeyUnknown.
func (k *KeyReader) readEscape() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err = k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	switch b {
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	}

	// Parameter bytes run until a final byte in 0x40-0x7E.
	for (b < 0x40 || b > 0x7E) && k.reader.Buffered() > 0 {
		b, _ = k.reader.ReadByte()
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readUTF8 completes a multi-byte rune whose leading byte is first.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	n := 0
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	buf := []byte{first}
	for len(buf) < n {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf = append(buf, b)
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// LineEditor collects one line of input from key events.
type LineEditor struct {
	buffer []rune
	cursor int
}

// NewLineEditor creates an empty LineEditor.
func NewLineEditor() *LineEditor {
	return &LineEditor{
		buffer: make([]rune, 0, 64),
	}
}

// HandleKey applies ev to the line and reports whether it completed it.
func (e *LineEditor) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return true
	case KeyBackspace:
		if e.cursor > 0 {
			copy(e.buffer[e.cursor-1:], e.buffer[e.cursor:])
			e.buffer = e.buffer[:len(e.buffer)-1]
			e.cursor--
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
	case KeyTab:
		e.insert('\t')
	case KeyRune:
		e.insert(ev.Rune)
	}
	return false
}

func (e *LineEditor) insert(r rune) {
	e.buffer = append(e.buffer, 0)
	copy(e.buffer[e.cursor+1:], e.buffer[e.cursor:])
	e.buffer[e.cursor] = r
	e.cursor++
}

// Text returns the current line content.
func (e *LineEditor) Text() string {
	return string(e.buffer)
}

// Clear resets the line editor.
func (e *LineEditor) Clear() {
	e.buffer = e.buffer[:0]
	e.cursor = 0
}

// Cursor returns the current cursor position.
func (e *LineEditor) Cursor() int {
	return e.cursor
}

// Len returns the length of the current buffer.
func (e *LineEditor) Len() int {
	return len(e.buffer)
}

// Render returns the escape sequence that redraws the line in place and
// leaves the terminal cursor at the editor's cursor.
func (e *LineEditor) Render() string {
	s := "\r" + string(e.buffer) + ClearLine
	if back := len(e.buffer) - e.cursor; back > 0 {
		s += CursorBack(back)
	}
	return s
}
