package machine

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/turing/internal/logging"
	"github.com/thruflo/turing/internal/testutil"
)

func quietLogger() *logging.Logger {
	l := logging.New()
	l.SetOutput(log.New(&bytes.Buffer{}, "", 0))
	return l
}

func newTestEngine(t *testing.T, description, input string, opts Options) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts.Out = &out
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return NewEngine(mustParse(t, description, Lenient), input, opts), &out
}

func TestEngine_AcceptsEmptyInput(t *testing.T) {
	t.Parallel()

	e, out := newTestEngine(t, testutil.ScanToBlank, "", Options{})
	result := e.Run(context.Background())

	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 2, result.Steps)
	assert.Equal(t, Symbol('f'), result.State)
	assert.NoError(t, result.Error)
	assert.Equal(t, " [ q0 ] \n [ qf ] \n"+AcceptedMessage+"\n", out.String())
}

func TestEngine_Rejects(t *testing.T) {
	t.Parallel()

	e, out := newTestEngine(t, testutil.OnlyZero, "1", Options{})
	result := e.Run(context.Background())

	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, PhaseRejected, e.Snapshot().Phase)
	assert.Equal(t, []string{
		" [ q0 ] 1",
		"There is no transition out of this state.",
		"String was rejected by the Turing Machine.",
	}, testutil.TraceLines(out.String()))
}

func TestEngine_Traces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		input       string
		trace       []string
		tape        string
	}{
		{
			name:        "scan to blank",
			description: testutil.ScanToBlank,
			input:       "01",
			trace:       []string{" [ q0 ] 01", "0 [ q0 ] 1", "01 [ q0 ] ", "01B [ qf ] "},
			tape:        "B01BB",
		},
		{
			name:        "complement",
			description: testutil.Complement,
			input:       "01",
			trace:       []string{" [ q0 ] 01", "1 [ q0 ] 1", "10 [ q0 ] ", "10B [ qf ] "},
			tape:        "B10BB",
		},
		{
			name:        "walk left off the tape",
			description: testutil.WalkLeft,
			input:       "0",
			trace:       []string{" [ q0 ] 0", " [ q1 ] B0", " [ q2 ] B10", " [ qf ] 10"},
			tape:        "BB10B",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, out := newTestEngine(t, tt.description, tt.input, Options{})
			result := e.Run(context.Background())

			require.Equal(t, OutcomeAccepted, result.Outcome)
			assert.Equal(t, len(tt.trace), result.Steps)
			assert.Equal(t, append(tt.trace, AcceptedMessage), testutil.TraceLines(out.String()))
			assert.Equal(t, tt.tape, e.Snapshot().Tape)
		})
	}
}

func TestEngine_CustomStates(t *testing.T) {
	t.Parallel()

	e, out := newTestEngine(t, "s 0 a 0 R\n", "0", Options{StartState: 's', AcceptState: 'a'})
	result := e.Run(context.Background())

	assert.Equal(t, OutcomeAccepted, result.Outcome)
	testutil.AssertTrace(t, out.String(), " [ qs ] 0", "0 [ qa ] ")
}

func TestEngine_StepOnHaltedIsNoop(t *testing.T) {
	t.Parallel()

	e, out := newTestEngine(t, testutil.OnlyZero, "1", Options{})
	ctx := context.Background()

	require.NoError(t, e.Step(ctx))
	require.Equal(t, PhaseRejected, e.Snapshot().Phase)
	written := out.Len()

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, written, out.Len())
	assert.Equal(t, 1, e.Run(ctx).Steps)
}

func TestEngine_PauseReseedsAndContinuesStep(t *testing.T) {
	t.Parallel()

	pause := testutil.PauseAt(1, DefaultPauseKey)
	e, out := newTestEngine(t, "", "1", Options{
		Pause: pause,
		Lines: testutil.NewScriptedLines("0 1 1"),
	})

	require.NoError(t, e.Step(context.Background()))

	snap := e.Snapshot()
	assert.Equal(t, PhaseRejected, snap.Phase)
	assert.Equal(t, Symbol('0'), snap.State)
	assert.Equal(t, 0, snap.Head)
	assert.Equal(t, "B011B", snap.Tape)
	assert.Equal(t, []string{
		" [ q0 ] 1",
		"",
		"Turing Machine halted.",
		"Enter a new input string to be processed.",
		"There is no transition out of this state.",
		"String was rejected by the Turing Machine.",
	}, testutil.TraceLines(out.String()))
}

func TestEngine_PauseDuringRun(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer
	e, out := newTestEngine(t, testutil.ScanToBlank, "1", Options{
		ErrOut: &errOut,
		Pause:  testutil.PauseAt(2, 'h'),
		Lines:  testutil.NewScriptedLines("x", "0"),
	})

	result := e.Run(context.Background())

	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 4, result.Steps)
	assert.Equal(t, 1, result.Restarts)
	assert.Equal(t, []string{
		" [ q0 ] 1",
		"1 [ q0 ] ",
		"",
		"Turing Machine halted.",
		"Enter a new input string to be processed.",
		"0 [ q0 ] ",
		"0B [ qf ] ",
		AcceptedMessage,
	}, testutil.TraceLines(out.String()))
	assert.Equal(t, InvalidInputNotice+"\n", errOut.String())
}

func TestEngine_OtherKeysIgnored(t *testing.T) {
	t.Parallel()

	pause := &testutil.ScriptedPause{Keys: map[int]rune{1: 'x', 2: 'H'}}
	lines := testutil.NewScriptedLines("0")
	e, _ := newTestEngine(t, testutil.ScanToBlank, "11", Options{Pause: pause, Lines: lines})

	result := e.Run(context.Background())

	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Zero(t, result.Restarts)
	assert.Zero(t, lines.Reads())
	assert.Equal(t, result.Steps, pause.Calls(), "one poll per step")
}

func TestEngine_CustomPauseKey(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testutil.ScanToBlank, "11", Options{
		Pause:    testutil.PauseAt(1, 'p'),
		PauseKey: 'p',
		Lines:    testutil.NewScriptedLines(""),
	})

	result := e.Run(context.Background())
	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 1, result.Restarts)
	assert.Equal(t, 2, result.Steps)
}

func TestEngine_PauseAtEOFRestartsEmpty(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testutil.ScanToBlank, "0101", Options{
		Pause: testutil.PauseAt(1, 'h'),
		Lines: testutil.NewScriptedLines(),
	})

	result := e.Run(context.Background())
	assert.Equal(t, OutcomeAccepted, result.Outcome)
	assert.Equal(t, 2, result.Steps)
	assert.Equal(t, "BBB", e.Snapshot().Tape)
}

func TestEngine_PauseWithoutLinesRestartsEmpty(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testutil.OnlyZero, "00", Options{Pause: testutil.PauseAt(1, 'h')})

	result := e.Run(context.Background())
	assert.Equal(t, OutcomeRejected, result.Outcome)
	assert.Equal(t, 1, result.Restarts)
}

func TestEngine_PauseReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("stdin closed")
	e, _ := newTestEngine(t, testutil.ScanToBlank, "1", Options{
		Pause: testutil.PauseAt(1, 'h'),
		Lines: &testutil.ScriptedLines{Err: boom},
	})

	result := e.Run(context.Background())
	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.ErrorIs(t, result.Error, boom)
	assert.Equal(t, PhasePaused, e.Snapshot().Phase)
}

func TestEngine_StepLimit(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := logging.New()
	logger.SetOutput(log.New(&logs, "", 0))

	e, out := newTestEngine(t, "0 B 0 B R\n", "", Options{MaxSteps: 10, Logger: logger})
	result := e.Run(context.Background())

	assert.Equal(t, OutcomeStepLimit, result.Outcome)
	assert.Equal(t, 10, result.Steps)
	assert.Len(t, testutil.TraceLines(out.String()), 10)
	assert.Contains(t, logs.String(), "WARN: step limit reached")
	assert.Contains(t, logs.String(), "max_steps=10")
}

func TestEngine_CancelledBeforeRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, out := newTestEngine(t, testutil.ScanToBlank, "01", Options{})
	result := e.Run(ctx)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.ErrorIs(t, result.Error, context.Canceled)
	assert.Zero(t, result.Steps)
	assert.Empty(t, out.String())
}

func TestEngine_DelayHonoursContext(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, 50*time.Millisecond)
	e, _ := newTestEngine(t, "0 B 0 B R\n", "", Options{StepDelay: time.Hour})

	result := e.Run(ctx)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.ErrorIs(t, result.Error, context.DeadlineExceeded)
	assert.Equal(t, 1, result.Steps)
}

func TestEngine_HeadStaysOnTape(t *testing.T) {
	t.Parallel()

	// Bounces left and right forever, growing the tape at both ends.
	description := `0 0 1 1 L
0 1 1 0 L
0 B 1 B L
1 0 0 1 R
1 1 0 0 R
1 B 0 1 R
`
	e, _ := newTestEngine(t, description, "0110", Options{})
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		require.NoError(t, e.Step(ctx))
		snap := e.Snapshot()
		require.Equal(t, PhaseRunning, snap.Phase)
		require.GreaterOrEqual(t, snap.Head, 0)
		require.Less(t, snap.Head, len(snap.Tape))
	}
}

func TestEngine_LogsRunSegments(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := logging.New()
	logger.SetOutput(log.New(&logs, "", 0))
	logger.SetLevel(logging.LevelInfo)

	e, _ := newTestEngine(t, testutil.ScanToBlank, "01", Options{
		Logger: logger,
		Pause:  testutil.PauseAt(1, 'h'),
		Lines:  testutil.NewScriptedLines("1"),
	})
	e.Run(context.Background())

	var runs []string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		if !strings.HasPrefix(line, "INFO: run started") {
			continue
		}
		i := strings.Index(line, "run=")
		require.GreaterOrEqual(t, i, 0, line)
		runs = append(runs, strings.Fields(line[i:])[0])
	}

	require.Len(t, runs, 2)
	assert.NotEqual(t, runs[0], runs[1], "each segment has its own run id")
	assert.Contains(t, logs.String(), "input=01")
	assert.Contains(t, logs.String(), "INFO: paused")
	assert.Contains(t, logs.String(), "INFO: accepted")
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "accepted", OutcomeAccepted.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "step limit", OutcomeStepLimit.String())
	assert.Equal(t, "unknown", Outcome(99).String())
	assert.Equal(t, "paused", PhasePaused.String())
	assert.True(t, PhaseAccepted.Halted())
	assert.False(t, PhasePaused.Halted())
}
