package main

import (
	"bytes"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const execMainEnv = "ESPIGOT_EXEC_MAIN"

// TestEntryPoint_ClosedStdoutExitsZero runs the real entry point in a child process
// whose stdout is a pipe with no reader, as in `espigot -n 50000 | head -c 5`.
func TestEntryPoint_ClosedStdoutExitsZero(t *testing.T) {
	if args := os.Getenv(execMainEnv); args != "" {
		os.Args = append([]string{"espigot"}, strings.Fields(args)...)
		main()
		os.Exit(0)
	}
	if runtime.GOOS == "windows" {
		t.Skip("SIGPIPE is a unix signal")
	}

	tests := []struct {
		name string
		args string
	}{
		{"Wrapped", "-n 50000"},
		{"Raw", "-n 50000 --raw"},
		{"Series", "digits -n 20000 --engine series"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, err := os.Pipe()
			require.NoError(t, err)
			require.NoError(t, r.Close())
			defer w.Close()

			var stderr bytes.Buffer
			cmd := exec.Command(os.Args[0], "-test.run=^TestEntryPoint_ClosedStdoutExitsZero$")
			cmd.Env = append(os.Environ(), execMainEnv+"="+tt.args)
			cmd.Stdout = w
			cmd.Stderr = &stderr

			err = cmd.Run()
			require.NoError(t, err, "stderr: %s", stderr.String())
			assert.Equal(t, 0, cmd.ProcessState.ExitCode())
			assert.Empty(t, stderr.String())
		})
	}
}
