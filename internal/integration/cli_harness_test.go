//go:build e2e

// cli_harness_test.go provides a test harness for E2E testing of the turing
// binary.
//
// The CLIHarness builds the binary once per test and runs it in a scratch
// workspace with piped stdin, so the console runs in line mode.
package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thruflo/turing/internal/testutil"
)

// CLIHarness manages a turing binary for E2E testing.
type CLIHarness struct {
	// BinaryPath is the path to the built turing binary.
	BinaryPath string

	// WorkDir is the working directory commands run in. A .turing.yaml
	// written here is picked up by the binary.
	WorkDir string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the turing binary and creates an empty workspace.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	projectRoot := findProjectRoot(t)
	require.NotEmpty(t, projectRoot, "could not find project root (directory containing go.mod)")

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "turing")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/turing")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build turing binary: %s", output)

	workDir := filepath.Join(tmpDir, "workspace")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	return &CLIHarness{
		BinaryPath: binaryPath,
		WorkDir:    workDir,
		t:          t,
	}
}

// WriteFile writes content to a file in the workspace and returns its path.
func (h *CLIHarness) WriteFile(name, content string) string {
	h.t.Helper()
	return testutil.WriteTestFile(h.t, h.WorkDir, name, []byte(content))
}

// Run executes turing with empty stdin and the default timeout.
func (h *CLIHarness) Run(args ...string) *CLIResult {
	return h.RunWithInput("", args...)
}

// RunWithInput executes turing with stdin as its standard input and a 30
// second timeout.
func (h *CLIHarness) RunWithInput(stdin string, args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return h.RunWithContext(ctx, stdin, args...)
}

// RunWithContext executes turing with the given context, which bounds the
// run.
func (h *CLIHarness) RunWithContext(ctx context.Context, stdin string, args ...string) *CLIResult {
	h.t.Helper()

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.WorkDir
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CLIResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result
}

// findProjectRoot walks up from the current directory to the directory
// holding go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RequireSuccess fails the test if the command result indicates failure.
func (h *CLIHarness) RequireSuccess(result *CLIResult, msg string) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("%s: exit=%d err=%v\nstdout: %s\nstderr: %s",
			msg, result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command result indicates success.
func (h *CLIHarness) RequireFailure(result *CLIResult, msg string) {
	h.t.Helper()
	if result.Success() {
		h.t.Fatalf("%s: command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			msg, result.Stdout, result.Stderr)
	}
}
