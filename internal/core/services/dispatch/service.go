package dispatch

import (
	"context"
	"errors"
	"strings"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"github.com/sirupsen/logrus"
)

type service struct {
	target   compose.Target
	table    *shortcut.Table
	executor ports.CommandExecutor
	log      logrus.FieldLogger
}

// NewService creates the command dispatcher.
// It panics if table or executor is nil.
func NewService(
	target compose.Target,
	table *shortcut.Table,
	executor ports.CommandExecutor,
	log logrus.FieldLogger,
) ports.DispatchService {
	if table == nil {
		panic("command table cannot be nil")
	}
	if executor == nil {
		panic("command executor cannot be nil")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{target: target, table: table, executor: executor, log: log}
}

// Command resolves name and returns the argument vector without running it.
func (s *service) Command(name string, extra []string) ([]string, error) {
	sc, err := s.table.Resolve(name)
	if err != nil {
		return nil, err
	}
	argv := s.target.Argv(s.target.Expand(sc.Args)...)
	return append(argv, extra...), nil
}

// Run executes the shortcut with the terminal's streams and blocks until the
// child exits. The child's exit code is returned as-is; only failures to
// start the program are reported as errors.
func (s *service) Run(ctx context.Context, name string, extra []string) (int, error) {
	argv, err := s.Command(name, extra)
	if err != nil {
		return 0, err
	}
	if name == "" {
		name = s.table.Default()
	}
	log := s.log.WithFields(logrus.Fields{"command": name, "argv": strings.Join(argv, " ")})
	log.Debug("running shortcut")

	code, err := s.executor.Run(ctx, ports.Invocation{Args: argv})
	if err != nil {
		var execErr *shortcut.ExecutionError
		if !errors.As(err, &execErr) {
			err = &shortcut.ExecutionError{Args: argv, Err: err}
		}
		log.WithError(err).Debug("shortcut failed to start")
		return code, err
	}
	log.WithField("exit_code", code).Debug("shortcut finished")
	return code, nil
}

func (s *service) Shortcuts() []shortcut.Shortcut { return s.table.Shortcuts() }

func (s *service) Default() string { return s.table.Default() }

func (s *service) Target() compose.Target { return s.target }
