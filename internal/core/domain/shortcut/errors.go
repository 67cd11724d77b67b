package shortcut

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// UsageError reports a command name that is not in the table.
type UsageError struct {
	Name       string
	Valid      []string
	Suggestion string
}

// NewUsageError builds a UsageError and picks the closest valid name, if any,
// as a suggestion.
func NewUsageError(name string, valid []string) *UsageError {
	return &UsageError{
		Name:       name,
		Valid:      append([]string(nil), valid...),
		Suggestion: closest(name, valid),
	}
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("unknown command %q (valid commands: %s)", e.Name, strings.Join(e.Valid, ", "))
}

func closest(name string, valid []string) string {
	if name == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, valid)
	if len(ranks) == 0 {
		// Also try the other direction so typos like "psqll" still match "psql".
		for _, v := range valid {
			if fuzzy.MatchFold(v, name) {
				return v
			}
		}
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// ExecutionError reports that the external program could not be started.
// A child that starts and exits nonzero is not an ExecutionError.
type ExecutionError struct {
	Args []string
	Err  error
}

func (e *ExecutionError) Error() string {
	bin := ""
	if len(e.Args) > 0 {
		bin = e.Args[0]
	}
	return fmt.Sprintf("failed to run %s: %v", bin, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// NotFound reports whether the binary was missing from PATH or did not exist
// at the given path.
func (e *ExecutionError) NotFound() bool {
	return errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist)
}
