package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, `|_|      |___/`)
	assert.NotContains(t, out, "\x1b[", "no escape codes for a buffer")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
