package machine

import (
	"strconv"
	"strings"
)

// LoopDetector reports when a machine comes back to a configuration it was in
// during the last Window observations. A deterministic machine that repeats a
// configuration never halts.
//
// Configurations are compared up to translation: leading and trailing blanks
// are dropped and the head is measured from the first non-blank cell. On an
// all-blank tape the head position does not matter.
type LoopDetector struct {
	window int
	ring   []string
	next   int
	count  int
	seen   map[string]int
	step   int
}

// NewLoopDetector returns a detector that remembers the last window
// configurations. window must be positive.
func NewLoopDetector(window int) *LoopDetector {
	return &LoopDetector{
		window: window,
		ring:   make([]string, window),
		seen:   make(map[string]int, window),
	}
}

// Observe records the configuration and, if it was already seen within the
// window, returns the number of observations since then.
func (d *LoopDetector) Observe(state Symbol, head int, t *Tape) (period int, looping bool) {
	key := configurationKey(state, head, t)
	d.step++
	if at, ok := d.seen[key]; ok {
		return d.step - at, true
	}

	if d.count == d.window {
		delete(d.seen, d.ring[d.next])
	} else {
		d.count++
	}
	d.ring[d.next] = key
	d.seen[key] = d.step
	d.next = (d.next + 1) % d.window
	return 0, false
}

// Reset forgets every configuration.
func (d *LoopDetector) Reset() {
	for k := range d.seen {
		delete(d.seen, k)
	}
	d.next, d.count, d.step = 0, 0, 0
}

func configurationKey(state Symbol, head int, t *Tape) string {
	cells := t.String()
	first := strings.IndexFunc(cells, func(r rune) bool { return r != rune(Blank) })
	if first < 0 {
		return string(rune(state)) + "|"
	}
	last := strings.LastIndexFunc(cells, func(r rune) bool { return r != rune(Blank) })
	return string(rune(state)) + "|" + strconv.Itoa(head-first) + "|" + cells[first:last+1]
}
