package cli

import (
	"fmt"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"github.com/AntonioJCosta/pgdock/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// NewBackupCommand creates the 'backup' subcommand.
func NewBackupCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Dump the database to a timestamped file.",
		Long: `Runs pg_dump inside the postgres service and writes the dump to
<dir>/<database>_<YYYYmmdd_HHMMSS>.dump (custom format) or .sql (plain).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupCmd(cmd, args, a)
		},
	}

	cmd.Flags().StringP("database", "d", "", "Database to dump (default from config).")
	cmd.Flags().String("dir", "", "Directory for backup files (default from config, ./backups).")
	cmd.Flags().StringP("format", "F", "", "Dump format: custom or plain (default from config, custom).")

	return cmd
}

func runBackupCmd(cmd *cobra.Command, _ []string, a *app) error {
	if err := requireNoDryRun(a, "backup"); err != nil {
		return err
	}
	database, _ := cmd.Flags().GetString("database")
	dir, _ := cmd.Flags().GetString("dir")
	formatFlag, _ := cmd.Flags().GetString("format")

	var format backup.Format
	if formatFlag != "" {
		f, err := backup.ParseFormat(formatFlag)
		if err != nil {
			return &flagError{err: err}
		}
		format = f
	}

	svcs, err := a.load()
	if err != nil {
		return err
	}
	if svcs.Maintenance == nil {
		return fmt.Errorf("maintenance service not initialized for command %s", cmd.Name())
	}

	out := cmd.OutOrStdout()
	label := database
	if label == "" {
		label = svcs.Dispatch.Target().Database
	}
	fmt.Fprintln(out, ui.InfoColor(fmt.Sprintf("Starting backup for database '%s'...", label)))

	result, err := svcs.Maintenance.Backup(cmd.Context(), ports.BackupRequest{Database: database, Dir: dir, Format: format})
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintln(out, ui.SuccessColor("Backup successful!"))
	fmt.Fprintf(out, "  %s %s\n", ui.DetailColor("File:"), result.Path)
	fmt.Fprintf(out, "  %s %.2f MB\n", ui.DetailColor("Size:"), result.SizeMB())
	return nil
}
