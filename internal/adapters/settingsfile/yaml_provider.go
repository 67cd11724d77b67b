package settingsfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AntonioJCosta/pgdock/internal/core/domain/backup"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/compose"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/settings"
	"github.com/AntonioJCosta/pgdock/internal/core/domain/shortcut"
	"github.com/AntonioJCosta/pgdock/internal/core/ports"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no --config
// flag is given.
const EnvConfigPath = "PGDOCK_CONFIG"

// DefaultFileName is picked up from the working directory when present.
const DefaultFileName = "pgdock.yaml"

//go:embed defaults.yaml
var embeddedDefaults []byte

// fileConfig mirrors the YAML layout. Empty fields mean "not set".
type fileConfig struct {
	Runtime      string              `yaml:"runtime"`
	Project      string              `yaml:"project"`
	ComposeFiles []string            `yaml:"compose_files"`
	Service      string              `yaml:"service"`
	User         string              `yaml:"user"`
	Database     string              `yaml:"database"`
	Default      string              `yaml:"default"`
	Backup       backupConfig        `yaml:"backup"`
	Shortcuts    []shortcut.Shortcut `yaml:"shortcuts"`
}

type backupConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// YAMLProvider implements the SettingsProvider interface by merging the
// embedded defaults with an optional user YAML file.
type YAMLProvider struct {
	filePath string
	required bool
	reserved map[string]bool
}

// Option customizes a YAMLProvider.
type Option func(*YAMLProvider)

// WithReservedNames rejects shortcuts that would shadow built-in commands.
func WithReservedNames(names ...string) Option {
	return func(p *YAMLProvider) {
		for _, n := range names {
			p.reserved[n] = true
		}
	}
}

// NewYAMLProvider creates a new YAMLProvider.
// filePath may be empty, in which case only the built-in defaults apply.
// When required is true a missing file is an error.
func NewYAMLProvider(filePath string, required bool, opts ...Option) (ports.SettingsProvider, error) {
	if required && filePath == "" {
		return nil, fmt.Errorf("config file path cannot be empty")
	}
	p := &YAMLProvider{filePath: filePath, required: required, reserved: map[string]bool{}}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// ResolvePath picks the config file: the flag value, then $PGDOCK_CONFIG,
// then ./pgdock.yaml. explicit is false only for the implicit fallback, which
// may be absent.
func ResolvePath(flagValue string) (path string, explicit bool) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, true
	}
	if v := strings.TrimSpace(os.Getenv(EnvConfigPath)); v != "" {
		return v, true
	}
	return DefaultFileName, false
}

// Load reads the defaults and the user file and returns the merged settings.
func (p *YAMLProvider) Load() (settings.Settings, error) {
	base, err := decode(embeddedDefaults, "built-in defaults")
	if err != nil {
		return settings.Settings{}, err
	}
	source := "built-in defaults"

	if p.filePath != "" {
		data, err := os.ReadFile(p.filePath)
		switch {
		case err == nil:
			user, err := decode(data, p.filePath)
			if err != nil {
				return settings.Settings{}, err
			}
			base = merge(base, user)
			source = p.filePath
		case errors.Is(err, os.ErrNotExist) && !p.required:
			// No user file; defaults only.
		default:
			return settings.Settings{}, fmt.Errorf("failed to read config file %s: %w", p.filePath, err)
		}
	}

	return p.build(base, source)
}

func decode(data []byte, origin string) (fileConfig, error) {
	var cfg fileConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// A file holding only comments decodes to EOF.
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("failed to parse config from %s: %w", origin, err)
	}
	return cfg, nil
}

// merge overlays user onto base. Shortcuts with a known name are replaced in
// place; new names are appended in the order they appear.
func merge(base, user fileConfig) fileConfig {
	out := base
	override(&out.Runtime, user.Runtime)
	override(&out.Project, user.Project)
	override(&out.Service, user.Service)
	override(&out.User, user.User)
	override(&out.Database, user.Database)
	override(&out.Default, user.Default)
	override(&out.Backup.Dir, user.Backup.Dir)
	override(&out.Backup.Format, user.Backup.Format)
	if user.ComposeFiles != nil {
		out.ComposeFiles = append([]string(nil), user.ComposeFiles...)
	}

	out.Shortcuts = append([]shortcut.Shortcut(nil), base.Shortcuts...)
	index := make(map[string]int, len(out.Shortcuts))
	for i, s := range out.Shortcuts {
		index[s.Name] = i
	}
	for _, s := range user.Shortcuts {
		if i, ok := index[s.Name]; ok {
			if s.Description == "" {
				s.Description = out.Shortcuts[i].Description
			}
			out.Shortcuts[i] = s
			continue
		}
		index[s.Name] = len(out.Shortcuts)
		out.Shortcuts = append(out.Shortcuts, s)
	}
	return out
}

func override(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func (p *YAMLProvider) build(cfg fileConfig, source string) (settings.Settings, error) {
	for _, s := range cfg.Shortcuts {
		if p.reserved[s.Name] {
			return settings.Settings{}, fmt.Errorf("shortcut name %q in %s is reserved for a built-in command", s.Name, source)
		}
	}
	table, err := shortcut.NewTable(cfg.Default, cfg.Shortcuts...)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("invalid command table in %s: %w", source, err)
	}
	format, err := backup.ParseFormat(cfg.Backup.Format)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("invalid backup settings in %s: %w", source, err)
	}

	target := compose.DefaultTarget()
	override(&target.Runtime, cfg.Runtime)
	override(&target.Project, cfg.Project)
	override(&target.Service, cfg.Service)
	override(&target.User, cfg.User)
	override(&target.Database, cfg.Database)
	target.Files = cfg.ComposeFiles

	dir := cfg.Backup.Dir
	if dir == "" {
		dir = settings.DefaultBackupDir
	}
	return settings.Settings{
		Target:       target,
		Shortcuts:    table,
		BackupDir:    dir,
		BackupFormat: format,
		Source:       source,
	}, nil
}
