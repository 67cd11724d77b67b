package ports

import (
	"context"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
)

// DispatchService resolves shortcut names and runs them.
type DispatchService interface {
	// Run resolves name (empty means the default), runs the resulting command
	// attached to the terminal and returns the child's exit code unchanged.
	Run(ctx context.Context, name string, extra []string) (int, error)

	// Command returns the argument vector Run would execute.
	Command(name string, extra []string) ([]string, error)

	Shortcuts() []shortcut.Shortcut
	Default() string
	Target() compose.Target
}
