package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/turing/internal/logging"
	"github.com/thruflo/turing/internal/machine"
	"github.com/thruflo/turing/internal/tui"
)

// Console is the operator terminal the run command talks to: it supplies
// the pause key and input lines and receives the trace.
type Console interface {
	machine.PauseSource
	machine.LineSource
	Out() io.Writer
	ErrOut() io.Writer
	Close() error
}

// openConsole attaches to the process's terminal. It can be overridden in
// tests.
var openConsole = func(interrupt func()) (Console, error) {
	c, err := tui.OpenConsole(interrupt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func runMachine(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	table, err := loadTable(args[0], cfg.Parse.Strict)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	console, err := openConsole(cancel)
	if err != nil {
		return fmt.Errorf("failed to open console: %w", err)
	}
	defer console.Close()

	logging.SetOutput(log.New(console.ErrOut(), "", log.LstdFlags))
	defer logging.SetOutput(log.New(os.Stderr, "", log.LstdFlags))

	out := console.Out()
	fmt.Fprintln(out, machine.InputPrompt)
	input, err := machine.ReadInput(ctx, console, console.ErrOut())
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Fprintf(out, "The input string is: %s\n", input)
	fmt.Fprintln(out, "The Turing Machine is now running...")
	fmt.Fprintf(out, "To pause the simulation and enter a new input string, press the %s key.\n\n", cfg.Machine.PauseKey)

	engine := machine.NewEngine(table, input, machine.Options{
		Out:         out,
		ErrOut:      console.ErrOut(),
		Pause:       console,
		Lines:       console,
		StartState:  machine.Symbol(cfg.Machine.StartState[0]),
		AcceptState: machine.Symbol(cfg.Machine.AcceptState[0]),
		PauseKey:    rune(cfg.Machine.PauseKey[0]),
		MaxSteps:    cfg.Run.MaxSteps,
		StepDelay:   cfg.Run.StepDelay,
		LoopWindow:  cfg.Run.LoopWindow,
	})

	result := engine.Run(ctx)
	logging.Info("run finished", "outcome", result.Outcome, "steps", result.Steps, "restarts", result.Restarts)

	// An interrupt ends the run quietly; a failing terminal does not.
	if result.Outcome == machine.OutcomeCancelled && ctx.Err() == nil {
		return fmt.Errorf("run stopped: %w", result.Error)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
