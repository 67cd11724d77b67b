package main

import (
	"os"

	"github.com/AntonioJCosta/pgdock/internal/adapters/oscommand"
	"github.com/AntonioJCosta/pgdock/internal/adapters/settingsfile"
	"github.com/AntonioJCosta/pgdock/internal/core/services/dispatch"
	"github.com/AntonioJCosta/pgdock/internal/core/services/maintenance"
	"github.com/AntonioJCosta/pgdock/internal/handlers/cli"
	"github.com/sirupsen/logrus"
)

// Version is set at build time
var Version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(Version, newServices)
	os.Exit(cli.Execute(rootCmd))
}

// newServices loads the configuration and wires the core services. It runs
// after flag parsing so --config and --log-level are honored.
func newServices(opts cli.GlobalOptions) (cli.Services, error) {
	log := logrus.StandardLogger()

	path, explicit := settingsfile.ResolvePath(opts.ConfigPath)
	provider, err := settingsfile.NewYAMLProvider(path, explicit, settingsfile.WithReservedNames(cli.ReservedNames...))
	if err != nil {
		return cli.Services{}, err
	}
	cfg, err := provider.Load()
	if err != nil {
		return cli.Services{}, err
	}
	log.WithField("source", cfg.Source).Debug("configuration loaded")

	cmdExec := oscommand.NewOSCommandExecutor(oscommand.WithLogger(log))

	return cli.Services{
		Dispatch:    dispatch.NewService(cfg.Target, cfg.Shortcuts, cmdExec, log),
		Maintenance: maintenance.NewService(cfg.Target, cfg.BackupDir, cfg.BackupFormat, cmdExec, log),
		Source:      cfg.Source,
	}, nil
}
