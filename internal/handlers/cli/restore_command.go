package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"github.com/AntonioJCosta/pgdock/internal/core/services/maintenance"
	"github.com/AntonioJCosta/pgdock/internal/handlers/ui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// errRestoreAborted is returned when the user declines the confirmation.
var errRestoreAborted = errors.New("restore aborted; no data was changed")

// NewRestoreCommand creates the 'restore' subcommand.
func NewRestoreCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the database with the contents of a backup file.",
		Long: `Drops the target database, creates it again and loads FILE into it.
Custom-format dumps are loaded with pg_restore (--no-owner --no-acl); .sql
files are loaded with psql.

This destroys the current database. You are asked to type its name unless
--yes is given; --yes is required when stdin is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestoreCmd(cmd, args, a)
		},
	}

	cmd.Flags().StringP("database", "d", "", "Database to replace (default from config).")
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation.")

	return cmd
}

func runRestoreCmd(cmd *cobra.Command, args []string, a *app) error {
	if err := requireNoDryRun(a, "restore"); err != nil {
		return err
	}
	file := args[0]
	database, _ := cmd.Flags().GetString("database")
	yes, _ := cmd.Flags().GetBool("yes")

	svcs, err := a.load()
	if err != nil {
		return err
	}
	if svcs.Maintenance == nil {
		return fmt.Errorf("maintenance service not initialized for command %s", cmd.Name())
	}
	if database == "" {
		database = svcs.Dispatch.Target().Database
	}

	if err := checkBackupFile(file); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.InfoColor(fmt.Sprintf("Preparing to restore %s into database '%s'.", file, database)))

	if !yes {
		if err := confirmRestore(cmd.InOrStdin(), out, database); err != nil {
			return err
		}
	}

	result, err := svcs.Maintenance.Restore(cmd.Context(), ports.RestoreRequest{Database: database, File: file})
	if err != nil {
		var sqlErr *maintenance.SQLError
		if errors.As(err, &sqlErr) && sqlErr.Hint != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.WarningColor("Suggestion: "+sqlErr.Hint))
		}
		return fmt.Errorf("restore failed: %w", err)
	}

	if result.Clean() {
		fmt.Fprintln(out, ui.SuccessColor("Database restore completed successfully!"))
		return nil
	}
	fmt.Fprintln(out, ui.WarningColor(fmt.Sprintf("Restore finished with exit code %d; this is often caused by harmless warnings.", result.ExitCode)))
	if len(result.LogTail) > 0 {
		fmt.Fprintln(out, ui.DetailColor("Last lines of output:"))
		for _, line := range result.LogTail {
			fmt.Fprintln(out, ui.DetailColor("  "+line))
		}
	}
	return nil
}

// checkBackupFile validates FILE before the user is asked to confirm.
func checkBackupFile(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("backup file %s is a directory", file)
	}
	return nil
}

// confirmRestore asks the user to type the database name.
func confirmRestore(in io.Reader, out io.Writer, database string) error {
	if !interactiveInput(in) {
		return &flagError{err: errors.New("refusing to restore without --yes when stdin is not a terminal")}
	}
	fmt.Fprint(out, ui.PromptColor(fmt.Sprintf("This will DROP database '%s'. Type its name to continue: ", database)))
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if strings.TrimSpace(answer) != database {
		return errRestoreAborted
	}
	return nil
}

// interactiveInput reports whether in is a terminal. Readers that are not
// files (tests, pipes wired by callers) are treated as interactive.
func interactiveInput(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
