package shortcut_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
	"github.com/AntonioJCosta/pgdock/internal/core/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestNewTable(t *testing.T) {
	valid := testutil.StockShortcuts()

	tests := []struct {
		name        string
		defaultName string
		shortcuts   []shortcut.Shortcut
		wantErr     string
	}{
		{name: "stock table", defaultName: "psql", shortcuts: valid},
		{name: "empty table", defaultName: "psql", wantErr: "command table is empty"},
		{
			name:        "duplicate name",
			defaultName: "psql",
			shortcuts:   append(append([]shortcut.Shortcut{}, valid...), shortcut.Shortcut{Name: "logs", Args: []string{"logs"}}),
			wantErr:     `shortcut "logs" defined more than once`,
		},
		{
			name:        "missing name",
			defaultName: "psql",
			shortcuts:   append(append([]shortcut.Shortcut{}, valid...), shortcut.Shortcut{Args: []string{"ps"}}),
			wantErr:     "shortcut #4 has no name",
		},
		{
			name:        "name with whitespace",
			defaultName: "psql",
			shortcuts:   []shortcut.Shortcut{{Name: "my cmd", Args: []string{"ps"}}},
			wantErr:     "must not contain whitespace",
		},
		{
			name:        "no args",
			defaultName: "ps",
			shortcuts:   []shortcut.Shortcut{{Name: "ps"}},
			wantErr:     `shortcut "ps" has no arguments`,
		},
		{
			name:        "default not defined",
			defaultName: "top",
			shortcuts:   valid,
			wantErr:     `default command "top" is not defined (have: psql, logs, sh)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := shortcut.NewTable(tt.defaultName, tt.shortcuts...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewTable() unexpected error = %v", err)
				}
				if table == nil {
					t.Fatal("NewTable() returned nil table")
				}
				return
			}
			if err == nil {
				t.Fatalf("NewTable() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewTable() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTable_Resolve(t *testing.T) {
	table := testutil.StockTable(t)

	t.Run("empty name resolves the default", func(t *testing.T) {
		got, err := table.Resolve("")
		if err != nil {
			t.Fatalf("Resolve(\"\") unexpected error = %v", err)
		}
		want, _ := table.Resolve("psql")
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Resolve(\"\") mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("known names", func(t *testing.T) {
		for _, name := range []string{"psql", "logs", "sh"} {
			got, err := table.Resolve(name)
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error = %v", name, err)
			}
			if got.Name != name {
				t.Errorf("Resolve(%q).Name = %q", name, got.Name)
			}
		}
	})

	t.Run("unknown name is a usage error listing valid names", func(t *testing.T) {
		_, err := table.Resolve("psqll")
		var usage *shortcut.UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("Resolve() error = %v, want *UsageError", err)
		}
		if diff := cmp.Diff([]string{"psql", "logs", "sh"}, usage.Valid); diff != "" {
			t.Errorf("UsageError.Valid mismatch (-want +got):\n%s", diff)
		}
		if want := `unknown command "psqll" (valid commands: psql, logs, sh)`; usage.Error() != want {
			t.Errorf("Error() = %q, want %q", usage.Error(), want)
		}
		if usage.Suggestion != "psql" {
			t.Errorf("Suggestion = %q, want psql", usage.Suggestion)
		}
	})

	t.Run("returned args are copies", func(t *testing.T) {
		s, _ := table.Resolve("logs")
		s.Args[0] = "mutated"
		again, _ := table.Resolve("logs")
		if again.Args[0] != "logs" {
			t.Errorf("table was mutated through Resolve result: %v", again.Args)
		}
	})
}

func TestTable_Accessors(t *testing.T) {
	table := testutil.StockTable(t)

	if table.Default() != "psql" {
		t.Errorf("Default() = %q, want psql", table.Default())
	}
	if diff := cmp.Diff([]string{"psql", "logs", "sh"}, table.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testutil.StockShortcuts(), table.Shortcuts()); diff != "" {
		t.Errorf("Shortcuts() mismatch (-want +got):\n%s", diff)
	}
	if !table.Has("sh") || table.Has("bash") {
		t.Errorf("Has() gave wrong answers")
	}
}

func TestNewUsageError_Suggestion(t *testing.T) {
	valid := []string{"psql", "logs", "sh"}
	tests := map[string]string{
		"lgs":    "logs",
		"psq":    "psql",
		"logss":  "logs",
		"zzz":    "",
		"":       "",
		"bogus!": "",
	}
	for name, want := range tests {
		if got := shortcut.NewUsageError(name, valid).Suggestion; got != want {
			t.Errorf("NewUsageError(%q).Suggestion = %q, want %q", name, got, want)
		}
	}
}

func TestExecutionError(t *testing.T) {
	cause := errors.New("boom")
	err := &shortcut.ExecutionError{Args: []string{"docker", "compose"}, Err: cause}
	if !errors.Is(err, cause) {
		t.Errorf("ExecutionError does not unwrap to its cause")
	}
	if err.NotFound() {
		t.Errorf("NotFound() = true for unrelated cause")
	}
	if want := "failed to run docker: boom"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
