package maintenance

import (
	"fmt"
	"strings"
)

// CommandFailedError reports a maintenance step that exited nonzero.
type CommandFailedError struct {
	Step   string
	Code   int
	Stderr string
}

func (e *CommandFailedError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed with exit code %d", e.Step, e.Code)
	}
	return fmt.Sprintf("%s failed with exit code %d: %s", e.Step, e.Code, e.Stderr)
}

// SQLError reports a failed DROP/CREATE statement. Hint carries a
// suggestion for the common causes.
type SQLError struct {
	Statement string
	Code      int
	Stderr    string
	Hint      string
}

func newSQLError(statement string, code int, stderr string) *SQLError {
	e := &SQLError{Statement: statement, Code: code, Stderr: stderr}
	switch {
	case strings.Contains(stderr, "accessed by other users"):
		e.Hint = "there are active connections to the database; stop the services or close the connections and try again"
	case strings.HasPrefix(statement, "DROP"):
		e.Hint = "check that the database name is valid"
	}
	return e
}

func (e *SQLError) Error() string {
	return fmt.Sprintf("statement %q failed (exit code %d): %s", e.Statement, e.Code, e.Stderr)
}
