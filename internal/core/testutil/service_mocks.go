package testutil

import (
	"context"
	"errors"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
	"github.com/AntonioJCosta/pgdock/internal/core/ports"
)

// MockDispatchService is a mock implementation of ports.DispatchService.
type MockDispatchService struct {
	RunFunc       func(ctx context.Context, name string, extra []string) (int, error)
	CommandFunc   func(name string, extra []string) ([]string, error)
	ShortcutsList []shortcut.Shortcut
	DefaultName   string
	TargetValue   compose.Target
}

func (m *MockDispatchService) Run(ctx context.Context, name string, extra []string) (int, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, extra)
	}
	return 0, errors.New("MockDispatchService.RunFunc not implemented")
}

func (m *MockDispatchService) Command(name string, extra []string) ([]string, error) {
	if m.CommandFunc != nil {
		return m.CommandFunc(name, extra)
	}
	return nil, errors.New("MockDispatchService.CommandFunc not implemented")
}

func (m *MockDispatchService) Shortcuts() []shortcut.Shortcut { return m.ShortcutsList }

func (m *MockDispatchService) Default() string { return m.DefaultName }

func (m *MockDispatchService) Target() compose.Target { return m.TargetValue }

// MockMaintenanceService is a mock implementation of ports.MaintenanceService.
type MockMaintenanceService struct {
	BackupFunc  func(ctx context.Context, req ports.BackupRequest) (backup.Result, error)
	RestoreFunc func(ctx context.Context, req ports.RestoreRequest) (backup.RestoreResult, error)
}

func (m *MockMaintenanceService) Backup(ctx context.Context, req ports.BackupRequest) (backup.Result, error) {
	if m.BackupFunc != nil {
		return m.BackupFunc(ctx, req)
	}
	return backup.Result{}, errors.New("MockMaintenanceService.BackupFunc not implemented")
}

func (m *MockMaintenanceService) Restore(ctx context.Context, req ports.RestoreRequest) (backup.RestoreResult, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, req)
	}
	return backup.RestoreResult{}, errors.New("MockMaintenanceService.RestoreFunc not implemented")
}
