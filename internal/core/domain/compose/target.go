/*
Package compose describes the docker compose project and service that
pgdock commands are aimed at.
*/
package compose

import "strings"

// Defaults used when no configuration overrides them.
const (
	DefaultRuntime  = "docker"
	DefaultService  = "postgres"
	DefaultUser     = "postgres"
	DefaultDatabase = "postgres"
)

/*
Target identifies the container runtime binary, the compose project and the
Postgres service inside it. Project and Files are optional; when empty the
runtime's own project discovery applies.
*/
type Target struct {
	Runtime  string
	Project  string
	Files    []string
	Service  string
	User     string
	Database string
}

// DefaultTarget returns the target matching a stock compose setup with a
// service named "postgres".
func DefaultTarget() Target {
	return Target{
		Runtime:  DefaultRuntime,
		Service:  DefaultService,
		User:     DefaultUser,
		Database: DefaultDatabase,
	}
}

// Argv builds the full argument vector for a compose sub-command:
// runtime, "compose", the optional -p/-f selectors, then args.
func (t Target) Argv(args ...string) []string {
	argv := make([]string, 0, 2+2+2*len(t.Files)+len(args))
	argv = append(argv, t.Runtime, "compose")
	if t.Project != "" {
		argv = append(argv, "-p", t.Project)
	}
	for _, f := range t.Files {
		argv = append(argv, "-f", f)
	}
	return append(argv, args...)
}

// Vars returns the placeholder values available to argument templates.
func (t Target) Vars() map[string]string {
	return map[string]string{
		"service":  t.Service,
		"user":     t.User,
		"database": t.Database,
		"project":  t.Project,
	}
}

// Expand substitutes $name and ${name} placeholders in each template element
// when name is one of Vars. Every other byte, including unknown placeholders,
// $$ and positional parameters, is copied unchanged so dollar signs meant for
// the container shell or for SQL dollar quoting survive.
func (t Target) Expand(template []string) []string {
	vars := t.Vars()
	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = expandArg(arg, vars)
	}
	return out
}

func expandArg(arg string, vars map[string]string) string {
	if !strings.Contains(arg, "$") {
		return arg
	}
	var b strings.Builder
	b.Grow(len(arg))
	for i := 0; i < len(arg); {
		if arg[i] == '$' {
			name, width := placeholder(arg[i+1:])
			if v, ok := vars[name]; ok && width > 0 {
				b.WriteString(v)
				i += 1 + width
				continue
			}
		}
		b.WriteByte(arg[i])
		i++
	}
	return b.String()
}

// placeholder reads the name following a '$'. width is the number of bytes
// the reference occupies, braces included, or 0 when s does not start one.
func placeholder(s string) (name string, width int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0
		}
		return s[1:end], end + 1
	}
	n := 0
	for n < len(s) && isNameByte(s[n], n == 0) {
		n++
	}
	return s[:n], n
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return !first
	}
	return false
}
