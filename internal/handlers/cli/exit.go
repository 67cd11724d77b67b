package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/AntonioJCosta/pgdock/internal/adapters/oscommand"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
	"github.com/AntonioJCosta/pgdock/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// Exit codes owned by pgdock itself. Child exit codes pass through unchanged.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ChildExitError carries a nonzero exit code from the spawned program.
// It is not a pgdock failure and is never printed.
type ChildExitError struct {
	Code int
}

func (e *ChildExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// Execute runs the root command, reports any error on stderr and returns the
// process exit code.
func Execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	return Report(err, rootCmd.ErrOrStderr())
}

// Report prints err (if any) and maps it to an exit code.
func Report(err error, w io.Writer) int {
	if err == nil {
		return ExitOK
	}

	var child *ChildExitError
	if errors.As(err, &child) {
		return child.Code
	}

	fmt.Fprintln(w, ui.ErrorColor("Error: "+err.Error()))

	var usage *shortcut.UsageError
	if errors.As(err, &usage) {
		if usage.Suggestion != "" {
			fmt.Fprintln(w, ui.DetailColor(fmt.Sprintf("Did you mean %q?", usage.Suggestion)))
		}
		fmt.Fprintln(w, ui.DetailColor("Run 'pgdock list' to see available commands."))
		return ExitUsage
	}

	var flagErr *flagError
	if errors.As(err, &flagErr) {
		fmt.Fprintln(w, ui.DetailColor("Run 'pgdock --help' for usage."))
		return ExitUsage
	}

	var execErr *shortcut.ExecutionError
	if errors.As(err, &execErr) {
		if execErr.NotFound() {
			fmt.Fprintln(w, ui.DetailColor("Is the container runtime installed and on your PATH?"))
			return oscommand.ExitNotFound
		}
		return oscommand.ExitNotExecutable
	}
	return ExitError
}
