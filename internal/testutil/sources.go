package testutil

import (
	"context"
	"io"
	"sync"
)

// ScriptedPause returns the key in Keys for the n-th call to Poll (1-based)
// and reports nothing pending otherwise.
type ScriptedPause struct {
	Keys map[int]rune

	mu    sync.Mutex
	calls int
}

// PauseAt returns a ScriptedPause that delivers key on poll call n.
func PauseAt(n int, key rune) *ScriptedPause {
	return &ScriptedPause{Keys: map[int]rune{n: key}}
}

// Poll implements machine.PauseSource.
func (p *ScriptedPause) Poll() (rune, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	key, ok := p.Keys[p.calls]
	return key, ok
}

// Calls returns how many times Poll was called.
func (p *ScriptedPause) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// ScriptedLines returns Lines in order, then io.EOF. Err, when set, is
// returned instead of io.EOF.
type ScriptedLines struct {
	Lines []string
	Err   error

	mu    sync.Mutex
	reads int
}

// NewScriptedLines returns a ScriptedLines over lines.
func NewScriptedLines(lines ...string) *ScriptedLines {
	return &ScriptedLines{Lines: lines}
}

// ReadLine implements machine.LineSource.
func (s *ScriptedLines) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reads >= len(s.Lines) {
		if s.Err != nil {
			return "", s.Err
		}
		return "", io.EOF
	}
	line := s.Lines[s.reads]
	s.reads++
	return line, nil
}

// Reads returns how many lines have been handed out.
func (s *ScriptedLines) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}
