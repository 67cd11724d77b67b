package maintenance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// restoreTailLines is how much pg_restore output is kept for the report.
const restoreTailLines = 5

type service struct {
	target   compose.Target
	dir      string
	format   backup.Format
	executor ports.CommandExecutor
	log      logrus.FieldLogger
	now      func() time.Time
}

// Option customizes the service.
type Option func(*service)

// WithClock replaces time.Now, which names backup files.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates the backup/restore service. dir and format are the
// defaults used when a request leaves them empty.
// It panics if executor is nil.
func NewService(
	target compose.Target,
	dir string,
	format backup.Format,
	executor ports.CommandExecutor,
	log logrus.FieldLogger,
	opts ...Option,
) ports.MaintenanceService {
	if executor == nil {
		panic("command executor cannot be nil")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if format == "" {
		format = backup.FormatCustom
	}
	s := &service{target: target, dir: dir, format: format, executor: executor, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Backup runs pg_dump inside the service container and streams the dump into
// a timestamped file under the backup directory. The TTY is disabled (-T) so
// binary output is not mangled.
func (s *service) Backup(ctx context.Context, req ports.BackupRequest) (backup.Result, error) {
	db := firstNonEmpty(req.Database, s.target.Database)
	dir := firstNonEmpty(req.Dir, s.dir)
	format := req.Format
	if format == "" {
		format = s.format
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return backup.Result{}, fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, backup.FileName(db, format, s.now()))

	f, err := os.Create(path)
	if err != nil {
		return backup.Result{}, fmt.Errorf("failed to create backup file %s: %w", path, err)
	}

	argv := s.target.Argv(s.execArgs("pg_dump", "-U", s.target.User, "-F", format.Flag(), db)...)
	log := s.log.WithFields(logrus.Fields{"database": db, "file": path})
	log.WithField("argv", strings.Join(argv, " ")).Debug("starting backup")

	var stderr bytes.Buffer
	code, runErr := s.executor.Run(ctx, ports.Invocation{Args: argv, Stdout: f, Stderr: &stderr})
	closeErr := f.Close()

	if runErr != nil || code != 0 {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.WithError(rmErr).Warn("could not remove incomplete backup file")
		}
		if runErr != nil {
			return backup.Result{}, runErr
		}
		return backup.Result{}, &CommandFailedError{Step: "pg_dump", Code: code, Stderr: strings.TrimSpace(stderr.String())}
	}
	if closeErr != nil {
		return backup.Result{}, fmt.Errorf("failed to write backup file %s: %w", path, closeErr)
	}

	info, err := os.Stat(path)
	if err != nil {
		return backup.Result{}, fmt.Errorf("failed to stat backup file %s: %w", path, err)
	}
	log.WithField("bytes", info.Size()).Info("backup complete")
	return backup.Result{Database: db, Path: path, Format: format, Bytes: info.Size()}, nil
}

// Restore replaces the database with the contents of a dump: drop, create,
// then load. Custom-format archives go through pg_restore; plain .sql files
// are fed to psql.
func (s *service) Restore(ctx context.Context, req ports.RestoreRequest) (backup.RestoreResult, error) {
	db := firstNonEmpty(req.Database, s.target.Database)
	result := backup.RestoreResult{Database: db, File: req.File}

	info, err := os.Stat(req.File)
	if err != nil {
		return result, fmt.Errorf("backup file not found: %w", err)
	}
	if info.IsDir() {
		return result, fmt.Errorf("backup file %s is a directory", req.File)
	}

	log := s.log.WithFields(logrus.Fields{"database": db, "file": req.File})

	log.Info("dropping database")
	if err := s.runSQL(ctx, db, "DROP DATABASE IF EXISTS "+backup.QuoteIdent(db)+";"); err != nil {
		return result, err
	}
	log.Info("creating database")
	if err := s.runSQL(ctx, db, "CREATE DATABASE "+backup.QuoteIdent(db)+";"); err != nil {
		return result, err
	}

	f, err := os.Open(req.File)
	if err != nil {
		return result, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	plain := isPlainDump(req.File)
	argv := s.target.Argv(s.loadArgs(db, plain)...)
	log.WithField("argv", strings.Join(argv, " ")).Info("loading dump")

	var output bytes.Buffer
	code, err := s.executor.Run(ctx, ports.Invocation{Args: argv, Stdin: f, Stdout: io.Discard, Stderr: &output})
	if err != nil {
		return result, err
	}
	tail := backup.Tail(output.String(), restoreTailLines)
	if code != 0 && plain {
		// ON_ERROR_STOP leaves the database partially loaded.
		log.WithField("exit_code", code).Error("plain dump failed to load")
		return result, &CommandFailedError{Step: "psql", Code: code, Stderr: strings.Join(tail, "\n")}
	}
	result.ExitCode = code
	if code != 0 {
		result.LogTail = tail
		log.WithField("exit_code", code).Warn("restore finished with warnings")
	}
	return result, nil
}

// runSQL executes a single statement through psql against a maintenance
// database other than the one being replaced.
func (s *service) runSQL(ctx context.Context, target, statement string) error {
	argv := s.target.Argv(s.execArgs("psql", "-U", s.target.User, "-d", maintenanceDB(target), "-c", statement)...)
	var stderr bytes.Buffer
	code, err := s.executor.Run(ctx, ports.Invocation{Args: argv, Stdout: io.Discard, Stderr: &stderr})
	if err != nil {
		return err
	}
	if code != 0 {
		return newSQLError(statement, code, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func isPlainDump(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".sql")
}

func (s *service) loadArgs(db string, plain bool) []string {
	if plain {
		return s.execArgs("psql", "-U", s.target.User, "-d", db, "-v", "ON_ERROR_STOP=1", "-q")
	}
	return s.execArgs("pg_restore", "-U", s.target.User, "-d", db, "-v", "--no-owner", "--no-acl")
}

// execArgs builds a non-interactive "exec" that keeps stdin open and
// disables the TTY, so data can be piped in or out.
func (s *service) execArgs(program string, args ...string) []string {
	out := []string{"exec", "-T", "-u", s.target.User, s.target.Service, program}
	return append(out, args...)
}

// maintenanceDB picks the database psql connects to while dropping target.
func maintenanceDB(target string) string {
	if target == "postgres" {
		return "template1"
	}
	return "postgres"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
