package machine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/thruflo/turing/internal/logging"
)

// Messages printed by the engine.
const (
	AcceptedMessage = "String was accepted by the Turing Machine."
	RejectedMessage = "There is no transition out of this state.\nString was rejected by the Turing Machine."
	HaltedMessage   = "Turing Machine halted.\nEnter a new input string to be processed."
)

// DefaultPauseKey pauses a run and asks for a new input string.
const DefaultPauseKey = 'h'

// Phase is the engine's position in its run cycle.
type Phase int

const (
	PhaseRunning  Phase = iota
	PhasePaused         // Waiting for replacement input
	PhaseAccepted       // Reached the accept state
	PhaseRejected       // No rule for (state, symbol)
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseAccepted:
		return "accepted"
	case PhaseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Halted reports whether p ends the run.
func (p Phase) Halted() bool {
	return p == PhaseAccepted || p == PhaseRejected
}

// Outcome indicates why Run returned.
type Outcome int

const (
	OutcomeUnknown   Outcome = iota
	OutcomeAccepted          // Machine reached the accept state
	OutcomeRejected          // No applicable transition
	OutcomeCancelled         // Context cancelled or input failed
	OutcomeStepLimit         // MaxSteps reached
	OutcomeLooping           // A configuration repeated
)

// String returns a human-readable description of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeStepLimit:
		return "step limit"
	case OutcomeLooping:
		return "looping"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a run.
type Result struct {
	Outcome  Outcome
	Steps    int
	Restarts int
	State    Symbol
	Error    error
}

// PauseSource reports operator key presses. Poll never blocks; it returns
// false when no key is pending.
type PauseSource interface {
	Poll() (rune, bool)
}

// Options holds configuration for creating an Engine. Zero values select the
// defaults: start state 0, accept state f, pause key h, no step limit, no
// delay and no loop detection. Nil writers discard output.
type Options struct {
	Out         io.Writer
	ErrOut      io.Writer
	Pause       PauseSource
	Lines       LineSource
	StartState  Symbol
	AcceptState Symbol
	PauseKey    rune
	MaxSteps    int
	StepDelay   time.Duration
	LoopWindow  int // configurations remembered by the loop detector
	Logger      *logging.Logger
}

// Snapshot is a copy of the engine's observable state.
type Snapshot struct {
	Phase Phase
	State Symbol
	Head  int
	Tape  string
}

// Engine steps a machine over its tape.
type Engine struct {
	table    *Table
	tape     *Tape
	state    Symbol
	head     int
	phase    Phase
	steps    int
	restarts int
	loops    *LoopDetector
	opts     Options
	log      *logging.Logger
}

// NewEngine creates an Engine at the start state over input. input should
// already have passed ValidateInput.
func NewEngine(table *Table, input string, opts Options) *Engine {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ErrOut == nil {
		opts.ErrOut = io.Discard
	}
	if opts.StartState == 0 {
		opts.StartState = StartState
	}
	if opts.AcceptState == 0 {
		opts.AcceptState = AcceptState
	}
	if opts.PauseKey == 0 {
		opts.PauseKey = DefaultPauseKey
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	e := &Engine{
		table: table,
		tape:  &Tape{},
		opts:  opts,
	}
	if opts.LoopWindow > 0 {
		e.loops = NewLoopDetector(opts.LoopWindow)
	}
	e.reset(input)
	return e
}

// reset puts the machine at the start state on a fresh tape and tags the
// new run segment for logging.
func (e *Engine) reset(input string) {
	e.tape.Reset(input)
	e.state = e.opts.StartState
	e.head = 0
	e.phase = PhaseRunning
	if e.loops != nil {
		e.loops.Reset()
	}
	e.log = e.opts.Logger.With("run", uuid.NewString())
	e.log.Info("run started", "input", input, "rules", e.table.Len())
}

// Reseed restarts the machine on input without touching the table.
func (e *Engine) Reseed(input string) {
	e.restarts++
	e.reset(input)
}

// Snapshot returns a copy of the current state, head and tape.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase: e.phase,
		State: e.state,
		Head:  e.head,
		Tape:  e.tape.String(),
	}
}

// Step runs one cycle: print the ID, honour a pending pause, then apply the
// rule for the symbol under the head or halt. Step on a halted engine is a
// no-op. The only errors come from reading replacement input.
func (e *Engine) Step(ctx context.Context) error {
	if e.phase.Halted() {
		return nil
	}

	fmt.Fprintln(e.opts.Out, FormatID(e.tape, e.head, e.state))
	e.steps++

	if e.opts.Pause != nil {
		if key, ok := e.opts.Pause.Poll(); ok && key == e.opts.PauseKey {
			if err := e.pause(ctx); err != nil {
				return err
			}
		}
	}

	under := e.head + 1
	e.tape.Ensure(under)
	symbol := e.tape.At(under)
	rule, found := e.table.Lookup(e.state, symbol)

	switch {
	case e.state == e.opts.AcceptState:
		fmt.Fprintln(e.opts.Out, AcceptedMessage)
		e.phase = PhaseAccepted
		e.log.Info("accepted", "steps", e.steps)
	case found:
		e.log.Debug("transition", "state", e.state, "symbol", symbol, "next", rule.Next, "write", rule.Write, "move", rule.Move)
		e.state = rule.Next
		e.tape.Set(under, rule.Write)
		e.head = e.tape.Move(rule.Move, e.head)
	default:
		fmt.Fprintln(e.opts.Out, RejectedMessage)
		e.phase = PhaseRejected
		e.log.Info("rejected", "steps", e.steps, "state", e.state, "symbol", symbol)
	}
	return nil
}

func (e *Engine) pause(ctx context.Context) error {
	e.phase = PhasePaused
	e.log.Info("paused", "steps", e.steps)
	fmt.Fprintln(e.opts.Out)
	fmt.Fprintln(e.opts.Out, HaltedMessage)

	var input string
	if e.opts.Lines != nil {
		var err error
		input, err = ReadInput(ctx, e.opts.Lines, e.opts.ErrOut)
		if err != nil {
			return fmt.Errorf("failed to read replacement input: %w", err)
		}
	}
	e.Reseed(input)
	return nil
}

// Run steps the engine until it halts, the context is cancelled, MaxSteps
// steps have run, or the loop detector sees a configuration repeat.
func (e *Engine) Run(ctx context.Context) Result {
	for !e.phase.Halted() {
		if ctx.Err() != nil {
			return e.result(OutcomeCancelled, ctx.Err())
		}
		if e.opts.MaxSteps > 0 && e.steps >= e.opts.MaxSteps {
			e.log.Warn("step limit reached", "max_steps", e.opts.MaxSteps)
			return e.result(OutcomeStepLimit, nil)
		}
		if e.loops != nil {
			if period, looping := e.loops.Observe(e.state, e.head, e.tape); looping {
				e.log.Warn("machine is looping", "period", period, "steps", e.steps)
				return e.result(OutcomeLooping, nil)
			}
		}

		if err := e.Step(ctx); err != nil {
			return e.result(OutcomeCancelled, err)
		}

		if e.opts.StepDelay > 0 && !e.phase.Halted() {
			select {
			case <-ctx.Done():
				return e.result(OutcomeCancelled, ctx.Err())
			case <-time.After(e.opts.StepDelay):
			}
		}
	}

	if e.phase == PhaseAccepted {
		return e.result(OutcomeAccepted, nil)
	}
	return e.result(OutcomeRejected, nil)
}

func (e *Engine) result(outcome Outcome, err error) Result {
	return Result{
		Outcome:  outcome,
		Steps:    e.steps,
		Restarts: e.restarts,
		State:    e.state,
		Error:    err,
	}
}
