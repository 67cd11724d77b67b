package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonioJCosta/pgdock/internal/core/ports"
)

// MockCommandExecutor is a mock implementation of ports.CommandExecutor.
// Every invocation is recorded in Calls.
type MockCommandExecutor struct {
	RunFunc func(ctx context.Context, inv ports.Invocation) (int, error)

	mu    sync.Mutex
	Calls []ports.Invocation
}

// Run records the invocation and calls the mock RunFunc.
func (m *MockCommandExecutor) Run(ctx context.Context, inv ports.Invocation) (int, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, inv)
	m.mu.Unlock()
	if m.RunFunc != nil {
		return m.RunFunc(ctx, inv)
	}
	return 0, errors.New("MockCommandExecutor.RunFunc not implemented")
}

// Argvs returns the argument vectors of all recorded calls.
func (m *MockCommandExecutor) Argvs() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.Args)
	}
	return out
}
