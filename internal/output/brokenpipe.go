package output

import (
	"errors"
	"io"
	"syscall"
)

// readerGone lists the write errors that mean the consumer stopped reading.
// ECONNRESET covers HTTP clients that drop a /digits response mid-stream.
var readerGone = []error{syscall.EPIPE, syscall.ECONNRESET, io.ErrClosedPipe}

// IsBrokenPipe reports whether a write failed because the reader of the
// digit stream went away. Such output is cut short, not failed.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range readerGone {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
