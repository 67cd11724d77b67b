package cli

import (
	"fmt"
	"strings"

	"github.com/AntonioJCosta/pgdock/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// runShortcut resolves and runs a shortcut, or prints it with --dry-run.
// A nonzero child exit is returned as *ChildExitError so the process exits
// with the same code without an error message.
func runShortcut(cmd *cobra.Command, a *app, name string, extra []string) error {
	svcs, err := a.load()
	if err != nil {
		return err
	}

	if a.opts.DryRun {
		argv, err := svcs.Dispatch.Command(name, extra)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.CodeColor("+ "+strings.Join(argv, " ")))
		return nil
	}

	code, err := svcs.Dispatch.Run(cmd.Context(), name, extra)
	if err != nil {
		return err
	}
	if code != 0 {
		return &ChildExitError{Code: code}
	}
	return nil
}
