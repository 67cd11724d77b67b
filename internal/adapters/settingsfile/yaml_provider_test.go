package settingsfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/testutil"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pgdock.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewYAMLProvider(t *testing.T) {
	if _, err := NewYAMLProvider("", true); err == nil {
		t.Error("NewYAMLProvider(\"\", required) expected error, got nil")
	}
	provider, err := NewYAMLProvider("", false)
	if err != nil {
		t.Fatalf("NewYAMLProvider() unexpected error = %v", err)
	}
	if _, ok := provider.(*YAMLProvider); !ok {
		t.Errorf("NewYAMLProvider() did not return a *YAMLProvider, got %T", provider)
	}
}

func TestYAMLProvider_Defaults(t *testing.T) {
	provider, _ := NewYAMLProvider("", false)
	cfg, err := provider.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if diff := cmp.Diff(compose.DefaultTarget(), cfg.Target); diff != "" {
		t.Errorf("Target mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testutil.StockShortcuts(), cfg.Shortcuts.Shortcuts()); diff != "" {
		t.Errorf("built-in shortcuts mismatch (-want +got):\n%s", diff)
	}
	if cfg.Shortcuts.Default() != "psql" {
		t.Errorf("Default() = %q, want psql", cfg.Shortcuts.Default())
	}
	if cfg.BackupDir != "./backups" || cfg.BackupFormat != backup.FormatCustom {
		t.Errorf("backup settings = (%q, %q)", cfg.BackupDir, cfg.BackupFormat)
	}
	if cfg.Source != "built-in defaults" {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestYAMLProvider_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	t.Run("implicit file may be absent", func(t *testing.T) {
		provider, _ := NewYAMLProvider(missing, false)
		if _, err := provider.Load(); err != nil {
			t.Errorf("Load() unexpected error = %v", err)
		}
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		provider, _ := NewYAMLProvider(missing, true)
		_, err := provider.Load()
		if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
			t.Errorf("Load() error = %v, want read error", err)
		}
	})
}

func TestYAMLProvider_Merge(t *testing.T) {
	path := writeConfig(t, `
runtime: podman
project: shop
compose_files: [compose.yml, compose.dev.yml]
service: db
database: shop
default: logs
backup:
  dir: /var/backups/pg
  format: plain
shortcuts:
  - name: sh
    args: [exec, $service, sh]
  - name: top
    description: Show container processes
    args: [top, $service]
`)
	provider, _ := NewYAMLProvider(path, true)
	cfg, err := provider.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	wantTarget := compose.Target{
		Runtime:  "podman",
		Project:  "shop",
		Files:    []string{"compose.yml", "compose.dev.yml"},
		Service:  "db",
		User:     "postgres",
		Database: "shop",
	}
	if diff := cmp.Diff(wantTarget, cfg.Target); diff != "" {
		t.Errorf("Target mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"psql", "logs", "sh", "top"}, cfg.Shortcuts.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	sh, _ := cfg.Shortcuts.Resolve("sh")
	if diff := cmp.Diff([]string{"exec", "$service", "sh"}, sh.Args); diff != "" {
		t.Errorf("overridden sh args mismatch (-want +got):\n%s", diff)
	}
	if sh.Description == "" {
		t.Error("overriding args should keep the built-in description")
	}
	if cfg.Shortcuts.Default() != "logs" {
		t.Errorf("Default() = %q, want logs", cfg.Shortcuts.Default())
	}
	if cfg.BackupDir != "/var/backups/pg" || cfg.BackupFormat != backup.FormatPlain {
		t.Errorf("backup settings = (%q, %q)", cfg.BackupDir, cfg.BackupFormat)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestYAMLProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []Option
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "servce: db\n",
			wantErr: "failed to parse config",
		},
		{
			name:    "not a mapping",
			content: "- psql\n",
			wantErr: "failed to parse config",
		},
		{
			name:    "default not defined",
			content: "default: vacuum\n",
			wantErr: `default command "vacuum" is not defined`,
		},
		{
			name:    "bad backup format",
			content: "backup:\n  format: tar\n",
			wantErr: "unsupported backup format",
		},
		{
			name:    "shortcut without args",
			content: "shortcuts:\n  - name: empty\n",
			wantErr: `shortcut "empty" has no arguments`,
		},
		{
			name:    "reserved name",
			content: "shortcuts:\n  - name: backup\n    args: [exec, db, pg_dump]\n",
			opts:    []Option{WithReservedNames("list", "backup", "restore")},
			wantErr: `"backup" in`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := NewYAMLProvider(writeConfig(t, tt.content), true, tt.opts...)
			_, err := provider.Load()
			if err == nil {
				t.Fatalf("Load() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestYAMLProvider_EmptyAndCommentOnlyFiles(t *testing.T) {
	for _, content := range []string{"", "   \n", "# nothing here\n"} {
		provider, _ := NewYAMLProvider(writeConfig(t, content), true)
		cfg, err := provider.Load()
		if err != nil {
			t.Fatalf("Load(%q) unexpected error = %v", content, err)
		}
		if len(cfg.Shortcuts.Names()) != 3 {
			t.Errorf("Load(%q) shortcuts = %v, want the built-ins", content, cfg.Shortcuts.Names())
		}
	}
}

func TestResolvePath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/from/env.yaml")
		path, explicit := ResolvePath("/from/flag.yaml")
		if path != "/from/flag.yaml" || !explicit {
			t.Errorf("ResolvePath() = (%q, %v)", path, explicit)
		}
	})
	t.Run("env next", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/from/env.yaml")
		path, explicit := ResolvePath("")
		if path != "/from/env.yaml" || !explicit {
			t.Errorf("ResolvePath() = (%q, %v)", path, explicit)
		}
	})
	t.Run("implicit default", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		path, explicit := ResolvePath("")
		if path != DefaultFileName || explicit {
			t.Errorf("ResolvePath() = (%q, %v)", path, explicit)
		}
	})
}
