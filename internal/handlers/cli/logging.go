package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel is read when --log-level is not given.
const EnvLogLevel = "PGDOCK_LOG_LEVEL"

const defaultLogLevel = logrus.WarnLevel

// configureLogging sets up the standard logrus logger. Logs go to stderr so
// they never mix with a child's stdout.
func configureLogging(level string, w io.Writer) error {
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(EnvLogLevel)
	}
	lvl := defaultLogLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
		if err != nil {
			return &flagError{err: fmt.Errorf("invalid log level %q: %w", level, err)}
		}
		lvl = parsed
	}
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(lvl)
	return nil
}
