package machine

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/thruflo/turing/internal/logging"
)

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = "//"

// ParseMode selects how strictly description lines are checked.
type ParseMode int

const (
	// Lenient reads the first five non-space characters of each line and
	// fills missing fields with the zero symbol. Malformed lines are kept
	// and recorded as warnings.
	Lenient ParseMode = iota
	// Strict requires five single-character fields with an L or R direction
	// and unique keys.
	Strict
)

// String returns the mode name.
func (m ParseMode) String() string {
	switch m {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// Key identifies a rule: the current state and the symbol under the head.
type Key struct {
	State  Symbol
	Symbol Symbol
}

// Rule is the action taken for a Key.
type Rule struct {
	Next  Symbol
	Write Symbol
	Move  Direction
}

// Entry pairs a Key with its Rule.
type Entry struct {
	Key
	Rule
}

// String renders the entry in description format.
func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s %s %s", e.State, e.Symbol, e.Next, e.Write, e.Move)
}

// LineError describes a malformed description line.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Table is an immutable transition function.
type Table struct {
	rules    map[Key]Rule
	warnings []LineError
}

// ParseTable reads a description, one rule per line.
func ParseTable(r io.Reader, mode ParseMode) (*Table, error) {
	t := &Table{rules: make(map[Key]Rule)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line, ok := stripComment(scanner.Text())
		if !ok {
			continue
		}

		var (
			entry Entry
			err   *LineError
		)
		if mode == Strict {
			entry, err = parseStrict(lineNum, line)
			if err == nil {
				if _, dup := t.rules[entry.Key]; dup {
					err = &LineError{Line: lineNum, Text: line, Reason: "duplicate rule for " + entry.State.String() + " " + entry.Symbol.String()}
				}
			}
			if err != nil {
				return nil, err
			}
		} else {
			entry, err = parseLenient(lineNum, line)
			if err != nil {
				t.warnings = append(t.warnings, *err)
				logging.Debug("malformed description line", "line", lineNum, "reason", err.Reason)
			}
		}

		t.rules[entry.Key] = entry.Rule
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}

	return t, nil
}

// stripComment drops comment text and reports whether anything is left to
// parse.
func stripComment(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, CommentMarker) {
		return "", false
	}
	if i := strings.Index(line, CommentMarker); i >= 0 {
		line = line[:i]
	}
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// parseLenient takes the first five non-space characters as the fields. The
// entry is always usable; the error only explains what was off about it.
func parseLenient(lineNum int, line string) (Entry, *LineError) {
	var fields [5]Symbol
	n := 0
	for i := 0; i < len(line) && n < len(fields); i++ {
		if isSpace(line[i]) {
			continue
		}
		fields[n] = Symbol(line[i])
		n++
	}

	entry := Entry{
		Key:  Key{State: fields[0], Symbol: fields[1]},
		Rule: Rule{Next: fields[2], Write: fields[3], Move: Direction(fields[4])},
	}

	if n < len(fields) {
		return entry, &LineError{Line: lineNum, Text: line, Reason: fmt.Sprintf("expected 5 fields, got %d", n)}
	}
	if !entry.Move.Valid() {
		return entry, &LineError{Line: lineNum, Text: line, Reason: "direction must be L or R"}
	}
	return entry, nil
}

func parseStrict(lineNum int, line string) (Entry, *LineError) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return Entry{}, &LineError{Line: lineNum, Text: line, Reason: fmt.Sprintf("expected 5 fields, got %d", len(tokens))}
	}
	for i, tok := range tokens {
		if len(tok) != 1 {
			return Entry{}, &LineError{Line: lineNum, Text: line, Reason: fmt.Sprintf("field %d must be a single character", i+1)}
		}
	}

	entry := Entry{
		Key:  Key{State: Symbol(tokens[0][0]), Symbol: Symbol(tokens[1][0])},
		Rule: Rule{Next: Symbol(tokens[2][0]), Write: Symbol(tokens[3][0]), Move: Direction(tokens[4][0])},
	}
	if !entry.Move.Valid() {
		return Entry{}, &LineError{Line: lineNum, Text: line, Reason: "direction must be L or R"}
	}
	return entry, nil
}

// Lookup returns the rule for (state, symbol).
func (t *Table) Lookup(state, symbol Symbol) (Rule, bool) {
	rule, ok := t.rules[Key{State: state, Symbol: symbol}]
	return rule, ok
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns all entries ordered by state then symbol.
func (t *Table) Rules() []Entry {
	entries := make([]Entry, 0, len(t.rules))
	for k, r := range t.rules {
		entries = append(entries, Entry{Key: k, Rule: r})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].State != entries[j].State {
			return entries[i].State < entries[j].State
		}
		return entries[i].Symbol < entries[j].Symbol
	})
	return entries
}

// Warnings returns the malformed lines accepted by a lenient parse.
func (t *Table) Warnings() []LineError {
	out := make([]LineError, len(t.warnings))
	copy(out, t.warnings)
	return out
}
