package ports

import (
	"context"
	"io"
)

// Invocation is a single external process to run. Args[0] is the program.
// Nil streams are connected to pgdock's own stdin, stdout and stderr.
type Invocation struct {
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandExecutor defines an interface for spawning external programs.
type CommandExecutor interface {
	// Run starts the program, waits for it and returns its exit code.
	// A nonzero exit is not an error; err is set only when the program
	// could not be started (see shortcut.ExecutionError).
	Run(ctx context.Context, inv Invocation) (exitCode int, err error)
}
