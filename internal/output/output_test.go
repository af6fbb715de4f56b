package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(fmt.Errorf("write stdout: %w", syscall.EPIPE)))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.True(t, IsBrokenPipe(&os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}))
	assert.True(t, IsBrokenPipe(fmt.Errorf("write tcp: %w", syscall.ECONNRESET)))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(errors.New("disk full")))
}

func TestLineWriter(t *testing.T) {
	t.Run("Wraps At Width", func(t *testing.T) {
		var sb strings.Builder
		lw := NewLineWriter(&sb, 4)
		n, err := lw.Write([]byte("2.718281828"))
		require.NoError(t, err)
		assert.Equal(t, 11, n)
		require.NoError(t, lw.Close())
		assert.Equal(t, "2.71\n8281\n828\n", sb.String())
	})

	t.Run("Exact Multiple Has No Blank Line", func(t *testing.T) {
		var sb strings.Builder
		lw := NewLineWriter(&sb, 3)
		for _, c := range []byte("271828") {
			require.NoError(t, lw.WriteByte(c))
		}
		require.NoError(t, lw.Close())
		assert.Equal(t, "271\n828\n", sb.String())
	})

	t.Run("No Wrapping", func(t *testing.T) {
		var sb strings.Builder
		lw := NewLineWriter(&sb, 0)
		_, err := lw.Write([]byte("2.71828"))
		require.NoError(t, err)
		require.NoError(t, lw.Close())
		assert.Equal(t, "2.71828\n", sb.String())
	})

	t.Run("Empty Close Writes Nothing", func(t *testing.T) {
		var sb strings.Builder
		lw := NewLineWriter(&sb, 10)
		require.NoError(t, lw.Close())
		assert.Empty(t, sb.String())
	})
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestLineWriter_PropagatesErrors(t *testing.T) {
	lw := NewLineWriter(failingWriter{err: syscall.EPIPE}, 60)
	_, err := lw.Write([]byte("2.7"))
	require.NoError(t, err, "buffered until flush")
	err = lw.Close()
	assert.True(t, IsBrokenPipe(err))
}

func TestLineWriter_ClosedPipeIsBrokenPipe(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("closed pipes report ERROR_NO_DATA on windows")
	}
	r, w, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	defer w.Close()

	lw := NewLineWriter(w, 60)
	_, err = lw.Write([]byte("2.71828"))
	require.NoError(t, err)
	assert.True(t, IsBrokenPipe(lw.Close()))
}
