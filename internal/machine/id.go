package machine

import "strings"

// FormatID renders an instantaneous description:
//
//	<left> [ q<state> ] <right>
//
// left runs from the first non-blank cell through head, right from head+1
// (the cell under the head) through the last non-blank cell. Blanks inside
// either range are printed.
func FormatID(t *Tape, head int, state Symbol) string {
	cells := t.String()
	first := strings.IndexFunc(cells, func(r rune) bool { return r != rune(Blank) })
	last := strings.LastIndexFunc(cells, func(r rune) bool { return r != rune(Blank) })

	var left, right string
	if first >= 0 && first <= head {
		left = cells[first : head+1]
	}
	if last >= head+1 {
		right = cells[head+1 : last+1]
	}

	var sb strings.Builder
	sb.Grow(len(left) + len(right) + 8)
	sb.WriteString(left)
	sb.WriteString(" [ q")
	sb.WriteByte(byte(state))
	sb.WriteString(" ] ")
	sb.WriteString(right)
	return sb.String()
}
