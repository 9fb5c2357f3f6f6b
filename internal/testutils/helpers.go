package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// WriteFile creates name with content inside a fresh temporary directory and
// returns its absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	absPath, err := filepath.Abs(filepath.Join(dir, name))
	require.NoError(t, err, "Failed to get absolute path for temp file")

	require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0o755))
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write %s", name)
	return absPath
}

// Clock returns a time source frozen at the given UTC date.
func Clock(year int, month time.Month, day int) func() time.Time {
	at := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}
