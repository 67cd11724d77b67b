package testutil

import (
	"testing"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
)

// StockShortcuts returns the psql, logs and sh shortcuts as shipped in the
// built-in configuration.
func StockShortcuts() []shortcut.Shortcut {
	return []shortcut.Shortcut{
		{
			Name:        shortcut.Psql,
			Description: "Open an interactive SQL shell as the database user",
			Args:        []string{"exec", "-it", "-u", "$user", "$service", "psql", "-U", "$user"},
		},
		{
			Name:        shortcut.Logs,
			Description: "Follow container logs",
			Args:        []string{"logs", "-f"},
		},
		{
			Name:        shortcut.Shell,
			Description: "Open a shell inside the database container",
			Args:        []string{"exec", "$service", "bash"},
		},
	}
}

// StockTable builds the stock command table with psql as default.
func StockTable(t testing.TB) *shortcut.Table {
	t.Helper()
	table, err := shortcut.NewTable(shortcut.Psql, StockShortcuts()...)
	if err != nil {
		t.Fatalf("NewTable() unexpected error = %v", err)
	}
	return table
}
