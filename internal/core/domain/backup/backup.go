/*
Package backup holds the value types shared by the backup and restore
operations: dump formats, file naming and the reported outcomes.
*/
package backup

import (
	"fmt"
	"strings"
	"time"
)

// Format is a pg_dump output format.
type Format string

const (
	// FormatCustom is pg_dump's compressed archive, restorable with pg_restore.
	FormatCustom Format = "custom"
	// FormatPlain is a plain SQL script.
	FormatPlain Format = "plain"
)

// TimestampLayout is used in generated backup file names.
const TimestampLayout = "20060102_150405"

// ParseFormat accepts the long names as well as pg_dump's single letters.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "custom":
		return FormatCustom, nil
	case "p", "plain", "sql":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unsupported backup format %q (use custom or plain)", s)
	}
}

// Flag returns the value passed to pg_dump -F.
func (f Format) Flag() string {
	if f == FormatPlain {
		return "p"
	}
	return "c"
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatPlain {
		return "sql"
	}
	return "dump"
}

// FileName returns "<database>_<timestamp>.<ext>".
func FileName(database string, f Format, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", database, at.Format(TimestampLayout), f.Extension())
}

// Result describes a finished backup.
type Result struct {
	Database string
	Path     string
	Format   Format
	Bytes    int64
}

// SizeMB returns the dump size in mebibytes.
func (r Result) SizeMB() float64 {
	return float64(r.Bytes) / (1024 * 1024)
}

// RestoreResult describes a finished restore. pg_restore often exits nonzero
// for warnings only, so a nonzero ExitCode is reported rather than treated as
// a failure; LogTail holds the last lines of its output in that case.
type RestoreResult struct {
	Database string
	File     string
	ExitCode int
	LogTail  []string
}

// Clean reports whether pg_restore exited zero.
func (r RestoreResult) Clean() bool { return r.ExitCode == 0 }

// QuoteIdent double-quotes a SQL identifier so names like "my-db" are not
// parsed as expressions.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Tail returns the last n non-empty lines of text.
func Tail(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
