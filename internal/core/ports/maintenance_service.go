package ports

import (
	"context"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
)

// BackupRequest selects what to dump and where. Zero values fall back to the
// configured defaults.
type BackupRequest struct {
	Database string
	Dir      string
	Format   backup.Format
}

// RestoreRequest names the dump file and the database it replaces.
type RestoreRequest struct {
	Database string
	File     string
}

// MaintenanceService defines backup and restore of the service's database.
type MaintenanceService interface {
	Backup(ctx context.Context, req BackupRequest) (backup.Result, error)

	// Restore drops and recreates the target database, then loads the dump.
	// It is destructive; callers must confirm with the user first.
	Restore(ctx context.Context, req RestoreRequest) (backup.RestoreResult, error)
}
