package machine

// Tape is a two-way infinite tape backed by a finite buffer. Cells are
// addressed by logical index, 0 being the leftmost cell created so far.
//
// The buffer keeps spare capacity in front of the origin so that growing the
// tape to the left does not shift every cell on each move.
type Tape struct {
	buf    []Symbol
	origin int // physical index of logical cell 0
}

// NewTape returns a tape holding B + input + B.
func NewTape(input string) *Tape {
	t := &Tape{}
	t.Reset(input)
	return t
}

// Reset discards the tape contents and writes B + input + B.
func (t *Tape) Reset(input string) {
	t.buf = make([]Symbol, 0, len(input)+2)
	t.origin = 0
	t.buf = append(t.buf, Blank)
	for i := 0; i < len(input); i++ {
		t.buf = append(t.buf, Symbol(input[i]))
	}
	t.buf = append(t.buf, Blank)
}

// Len returns the number of cells.
func (t *Tape) Len() int {
	return len(t.buf) - t.origin
}

// At returns the symbol at index i.
func (t *Tape) At(i int) Symbol {
	return t.buf[t.origin+i]
}

// Set writes s at index i.
func (t *Tape) Set(i int, s Symbol) {
	t.buf[t.origin+i] = s
}

// Ensure appends a blank cell when i is one past the last cell.
func (t *Tape) Ensure(i int) {
	if i == t.Len() {
		t.buf = append(t.buf, Blank)
	}
}

// Move returns the index reached by moving from i in direction d. Moving right
// off the last cell appends a blank; moving left off cell 0 prepends one and
// the index stays 0. Any other direction leaves i where it is.
func (t *Tape) Move(d Direction, i int) int {
	switch d {
	case Right:
		if i == t.Len()-1 {
			t.buf = append(t.buf, Blank)
		}
		return i + 1
	case Left:
		if i == 0 {
			t.prepend()
			return 0
		}
		return i - 1
	default:
		return i
	}
}

func (t *Tape) prepend() {
	if t.origin == 0 {
		slack := len(t.buf)
		if slack < 8 {
			slack = 8
		}
		grown := make([]Symbol, slack+len(t.buf), slack+cap(t.buf))
		copy(grown[slack:], t.buf)
		t.buf = grown
		t.origin = slack
	}
	t.origin--
	t.buf[t.origin] = Blank
}

// String renders the tape, blanks included.
func (t *Tape) String() string {
	b := make([]byte, t.Len())
	for i, s := range t.buf[t.origin:] {
		b[i] = byte(s)
	}
	return string(b)
}
