// Package machine simulates a deterministic, single-tape Turing machine whose
// tape is infinite in both directions.
//
// A Table is parsed once from a textual description and never changes. An
// Engine owns a Tape and the current state and steps them until the machine
// halts:
//   - Accepted: the current state is the accept state
//   - Rejected: no rule exists for (state, symbol under the head)
//
// The symbol under the head is the cell at head+1: rules read and write that
// cell, then move head itself. Every step prints the instantaneous
// description (ID) of the machine before anything else happens.
//
// While running, the Engine polls a PauseSource once per step. When the pause
// key arrives it reads a replacement input from a LineSource, validates it
// with ValidateInput, and restarts from the start state on a fresh tape. The
// Table is kept.
//
// Run can also stop a machine that will never halt: with Options.LoopWindow
// set, a LoopDetector watches for a repeated configuration.
package machine
