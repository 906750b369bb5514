package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTestBuffer is subtracted from the test deadline to leave time for
// cleanup.
const DefaultTestBuffer = 2 * time.Second

// ContextWithTimeout returns a context that expires after timeout or shortly
// before the test's own deadline, whichever comes first. It is cancelled when
// the test ends.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	deadline := time.Now().Add(timeout)
	if testDeadline, ok := t.Deadline(); ok {
		if adjusted := testDeadline.Add(-DefaultTestBuffer); adjusted.Before(deadline) {
			deadline = adjusted
		}
	}

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)
	return ctx
}
