package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDescription writes a machine description to dir/machine.tm and
// returns its path.
func WriteDescription(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteTestFile(t, dir, "machine.tm", []byte(content))
}

// WriteTestFile writes content to basePath/relativePath, creating parent
// directories, and returns the full path.
func WriteTestFile(t *testing.T, basePath, relativePath string, content []byte) string {
	t.Helper()

	fullPath := filepath.Join(basePath, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, content, 0o644))
	return fullPath
}
