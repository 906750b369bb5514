package machine

// Symbol is a single tape symbol or state name.
type Symbol byte

// Well-known symbols.
const (
	Blank       Symbol = 'B'
	Zero        Symbol = '0'
	One         Symbol = '1'
	StartState  Symbol = '0'
	AcceptState Symbol = 'f'
)

// String returns the symbol as a one-character string. The zero symbol left
// behind by short lenient lines renders as "\x00".
func (s Symbol) String() string {
	return string([]byte{byte(s)})
}

// Direction is a head movement. Lenient tables may hold any character here;
// only Left and Right move the head.
type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
)

// Valid reports whether d moves the head.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

// String returns the direction character.
func (d Direction) String() string {
	return string([]byte{byte(d)})
}

// IsInputSymbol reports whether r belongs to the input alphabet.
func IsInputSymbol(r rune) bool {
	return r == rune(Zero) || r == rune(One)
}
