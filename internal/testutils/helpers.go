package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// E100 is e to 100 decimal places, from an independent source.
const E100 = "2.7182818284590452353602874713526624977572470936999595749669676277240766303535475945713821785251664274"

// EPrefix returns "2." followed by n decimal places of e. n must not exceed 100.
func EPrefix(t *testing.T, n int) string {
	t.Helper()
	require.LessOrEqual(t, n, 100, "reference only covers 100 places")
	return E100[:n+2]
}

// WriteFile creates dir/name with content and returns its path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", path)
	return path
}
