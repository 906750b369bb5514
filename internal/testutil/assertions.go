package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TraceLines splits engine output into lines, dropping the final newline.
func TraceLines(output string) []string {
	output = strings.TrimSuffix(output, "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

// AssertTrace checks that output starts with the given lines. Halt messages
// after them are ignored.
func AssertTrace(t *testing.T, output string, want ...string) {
	t.Helper()

	got := TraceLines(output)
	if !assert.GreaterOrEqual(t, len(got), len(want), "trace too short: %q", output) {
		return
	}
	assert.Equal(t, want, got[:len(want)])
}
