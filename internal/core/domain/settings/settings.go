/*
Package settings is the resolved configuration pgdock runs with, after
built-in defaults and any user file have been merged.
*/
package settings

import (
	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
)

// DefaultBackupDir is where dumps are written when nothing else is configured.
const DefaultBackupDir = "./backups"

// Settings is constructed once at startup and never mutated.
type Settings struct {
	Target       compose.Target
	Shortcuts    *shortcut.Table
	BackupDir    string
	BackupFormat backup.Format
	// Source names where the settings came from, for diagnostics.
	Source string
}
