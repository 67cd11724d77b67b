package cli

import (
	"errors"
	"fmt"

	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"github.com/spf13/cobra"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	DryRun     bool
}

// Services are the core services the commands call.
type Services struct {
	Dispatch    ports.DispatchService
	Maintenance ports.MaintenanceService
	// Source names where the configuration was loaded from.
	Source string
}

// ServiceFactory wires the services once flags have been parsed, since the
// command table depends on --config.
type ServiceFactory func(opts GlobalOptions) (Services, error)

// ReservedNames are command names shortcuts may not use.
var ReservedNames = []string{"list", "backup", "restore", "help", "completion"}

type app struct {
	opts     GlobalOptions
	factory  ServiceFactory
	services *Services
}

// load builds the services on first use.
func (a *app) load() (*Services, error) {
	if a.services != nil {
		return a.services, nil
	}
	if a.factory == nil {
		return nil, errors.New("services not initialized")
	}
	svcs, err := a.factory(a.opts)
	if err != nil {
		return nil, err
	}
	if svcs.Dispatch == nil {
		return nil, errors.New("dispatch service not initialized")
	}
	a.services = &svcs
	return a.services, nil
}

func NewRootCommand(version string, factory ServiceFactory) *cobra.Command {
	a := &app{factory: factory}

	rootCmd := &cobra.Command{
		Use:   "pgdock [command] [-- extra args]",
		Short: "pgdock runs shortcut commands against a docker compose Postgres service.",
		Long: `pgdock opens a psql shell, follows logs or opens a shell in the postgres
service of your docker compose project, and backs up or restores its database.

Run without a command to open psql. Arguments after "--" are appended to the
shortcut's command line.`,
		Example: `  pgdock
  pgdock logs
  pgdock psql -- -d app_dev
  pgdock backup --format plain`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging(a.opts.LogLevel, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, extra := splitShortcutArgs(args, cmd.ArgsLenAtDash())
			return runShortcut(cmd, a, name, extra)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.opts.ConfigPath, "config", "c", "", "Path to a pgdock.yaml config file (default $PGDOCK_CONFIG or ./pgdock.yaml).")
	rootCmd.PersistentFlags().StringVar(&a.opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default $PGDOCK_LOG_LEVEL or warn).")
	rootCmd.PersistentFlags().BoolVarP(&a.opts.DryRun, "dry-run", "n", false, "Print the command line instead of running it.")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &flagError{err: err}
	})

	rootCmd.AddCommand(NewListCommand(a))
	rootCmd.AddCommand(NewBackupCommand(a))
	rootCmd.AddCommand(NewRestoreCommand(a))

	return rootCmd
}

// splitShortcutArgs separates the shortcut name from the extra arguments.
// With "pgdock -- x y" there is no name and everything is extra.
func splitShortcutArgs(args []string, dashAt int) (string, []string) {
	if len(args) == 0 || dashAt == 0 {
		return "", args
	}
	return args[0], args[1:]
}

// flagError marks bad flags or arguments so they exit with the usage code.
type flagError struct {
	err error
}

func (e *flagError) Error() string { return e.err.Error() }

func (e *flagError) Unwrap() error { return e.err }

func requireNoDryRun(a *app, command string) error {
	if a.opts.DryRun {
		return &flagError{err: fmt.Errorf("--dry-run is not supported by %s", command)}
	}
	return nil
}
