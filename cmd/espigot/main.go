package main

import (
	"os/signal"
	"syscall"
)

func main() {
	// A reader that goes away (head, less) must surface as EPIPE on write so
	// the runner can end output cleanly; the runtime default kills the process.
	signal.Ignore(syscall.SIGPIPE)
	Execute()
}
