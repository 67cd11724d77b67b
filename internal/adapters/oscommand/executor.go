package oscommand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Exit codes used when the program never ran, matching POSIX shells.
const (
	ExitNotExecutable = 126
	ExitNotFound      = 127
)

// defaultWaitDelay bounds how long a cancelled child gets to exit after the
// interrupt before it is killed.
const defaultWaitDelay = 5 * time.Second

// forwardedSignals are relayed to the running child instead of terminating
// pgdock, so the child decides how to shut down and its status is reported.
var forwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// OSCommandExecutor implements the CommandExecutor interface with os/exec.
type OSCommandExecutor struct {
	notify    func(c chan<- os.Signal, sig ...os.Signal)
	stop      func(c chan<- os.Signal)
	waitDelay time.Duration
	log       logrus.FieldLogger
}

// Option customizes an OSCommandExecutor.
type Option func(*OSCommandExecutor)

// WithSignalSource replaces signal.Notify/signal.Stop.
func WithSignalSource(notify func(c chan<- os.Signal, sig ...os.Signal), stop func(c chan<- os.Signal)) Option {
	return func(e *OSCommandExecutor) {
		e.notify = notify
		e.stop = stop
	}
}

// WithLogger sets the logger used for process lifecycle messages.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *OSCommandExecutor) { e.log = log }
}

// WithWaitDelay sets the grace period between interrupt and kill on cancel.
func WithWaitDelay(d time.Duration) Option {
	return func(e *OSCommandExecutor) { e.waitDelay = d }
}

// NewOSCommandExecutor creates a new OSCommandExecutor.
func NewOSCommandExecutor(opts ...Option) ports.CommandExecutor {
	e := &OSCommandExecutor{
		notify:    signal.Notify,
		stop:      signal.Stop,
		waitDelay: defaultWaitDelay,
		log:       logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run starts inv.Args, waits for it to exit and returns its exit code.
// A child killed by a signal reports 128+signal, the way shells do.
// Interrupts received while the child runs are relayed to it.
func (e *OSCommandExecutor) Run(ctx context.Context, inv ports.Invocation) (int, error) {
	if len(inv.Args) == 0 || inv.Args[0] == "" {
		return ExitNotFound, &shortcut.ExecutionError{Args: inv.Args, Err: errors.New("empty command")}
	}

	cmd := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	cmd.Stdin = readerOr(inv.Stdin, os.Stdin)
	cmd.Stdout = writerOr(inv.Stdout, os.Stdout)
	cmd.Stderr = writerOr(inv.Stderr, os.Stderr)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = e.waitDelay

	sigs := make(chan os.Signal, 1)
	e.notify(sigs, forwardedSignals...)
	defer e.stop(sigs)

	if err := cmd.Start(); err != nil {
		execErr := &shortcut.ExecutionError{Args: inv.Args, Err: err}
		if execErr.NotFound() {
			return ExitNotFound, execErr
		}
		return ExitNotExecutable, execErr
	}
	log := e.log.WithFields(logrus.Fields{"pid": cmd.Process.Pid, "program": inv.Args[0]})
	log.Debugf("+ %s", strings.Join(inv.Args, " "))

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				log.WithField("signal", sig.String()).Debug("forwarding signal to child")
				if err := cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
					log.WithError(err).Warn("could not forward signal")
				}
			case <-done:
				return
			}
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	if cmd.ProcessState == nil {
		return 1, fmt.Errorf("waiting for %s: %w", inv.Args[0], waitErr)
	}
	code := exitStatus(cmd.ProcessState)
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		// The process exited but copying its output did not finish cleanly.
		log.WithError(waitErr).Warn("child output was not fully copied")
	}
	log.WithField("exit_code", code).Debug("child exited")
	return code, nil
}

func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}

func readerOr(r io.Reader, fallback *os.File) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func writerOr(w io.Writer, fallback *os.File) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
