/*
Package shortcut defines the named commands pgdock knows how to run and the
table that resolves a user-supplied name to one of them.
*/
package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in shortcut names.
const (
	Psql  = "psql"
	Logs  = "logs"
	Shell = "sh"
)

/*
Shortcut is a single named command. Args is the compose sub-command template
(everything after "docker compose"); placeholders such as $service are filled
in from the compose target at run time.
*/
type Shortcut struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Args        []string `yaml:"args"`
}

// Table is an ordered, immutable set of shortcuts with a default entry.
type Table struct {
	defaultName string
	order       []string
	byName      map[string]Shortcut
}

// NewTable validates the shortcuts and builds a Table. Names must be unique
// and non-empty, every shortcut needs at least one argument, and the default
// must name one of the shortcuts.
func NewTable(defaultName string, shortcuts ...Shortcut) (*Table, error) {
	if len(shortcuts) == 0 {
		return nil, errors.New("command table is empty")
	}
	t := &Table{
		defaultName: defaultName,
		order:       make([]string, 0, len(shortcuts)),
		byName:      make(map[string]Shortcut, len(shortcuts)),
	}
	for i, s := range shortcuts {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("shortcut #%d has no name", i+1)
		}
		if name != s.Name || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("shortcut name %q must not contain whitespace", s.Name)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("shortcut %q defined more than once", name)
		}
		if len(s.Args) == 0 {
			return nil, fmt.Errorf("shortcut %q has no arguments", name)
		}
		s.Args = append([]string(nil), s.Args...)
		t.byName[name] = s
		t.order = append(t.order, name)
	}
	if _, ok := t.byName[defaultName]; !ok {
		return nil, fmt.Errorf("default command %q is not defined (have: %s)", defaultName, strings.Join(t.order, ", "))
	}
	return t, nil
}

// Resolve returns the shortcut for name. An empty name resolves to the
// default. Unknown names yield a *UsageError listing the valid names.
func (t *Table) Resolve(name string) (Shortcut, error) {
	if name == "" {
		name = t.defaultName
	}
	s, ok := t.byName[name]
	if !ok {
		return Shortcut{}, NewUsageError(name, t.Names())
	}
	s.Args = append([]string(nil), s.Args...)
	return s, nil
}

// Default returns the name invoked when none is given.
func (t *Table) Default() string { return t.defaultName }

// Names returns the shortcut names in table order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Shortcuts returns copies of all shortcuts in table order.
func (t *Table) Shortcuts() []Shortcut {
	out := make([]Shortcut, 0, len(t.order))
	for _, name := range t.order {
		s := t.byName[name]
		s.Args = append([]string(nil), s.Args...)
		out = append(out, s)
	}
	return out
}

// Has reports whether name is defined.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}
