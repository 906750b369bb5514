// Package testutil provides shared test helpers for turing.
//
// # Fixtures
//
// fixtures.go holds sample machine descriptions:
//
//   - ScanToBlank - moves right over the input and accepts on the first blank
//   - OnlyZero - a single rule for (0, 0), so any 1 is rejected
//   - Complement - flips every input bit, then accepts
//   - WalkLeft - walks off the left end of the tape before accepting
//   - Commented - one rule surrounded by comments and blank lines
//
// # Scripted sources
//
// sources.go provides stand-ins for the terminal:
//
//   - ScriptedPause - delivers keys on chosen poll calls
//   - ScriptedLines - hands out a fixed list of lines, then io.EOF
//
// # Helpers
//
//   - WriteDescription(t, dir, content) - writes a description file
//   - TraceLines(output) - splits engine output into lines
//   - AssertTrace(t, output, want...) - compares the printed IDs
//   - ContextWithTimeout(t, d) - context bounded by the test deadline
package testutil
