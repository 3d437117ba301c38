// Package logger holds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Packages derive component loggers from it.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	Log.SetLevel(logrus.InfoLevel)
}

// Setup parses level and points the logger at out. A nil out keeps the
// current writer.
func Setup(level string, out io.Writer) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		Log.SetLevel(lvl)
	}
	if out != nil {
		Log.SetOutput(out)
	}
	return nil
}

// For returns a logger tagged with a component name.
func For(component string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"component": component,
	})
}
