package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the standard logger tagged with the domain group.
func NewLogger(domain string) *logrus.Entry {
	return logrus.WithField("group", domain)
}

// VerboseLevel maps the number of -v flags to a log level.
func VerboseLevel(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.InfoLevel
	case verbosity == 1:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// SetUp configures the standard logger. A non-zero verbosity takes
// precedence over level, which is the textual level from the configuration
// file. An empty level means info.
func SetUp(level string, verbosity int) error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbosity > 0 {
		logrus.SetLevel(VerboseLevel(verbosity))
		return nil
	}
	if len(level) == 0 {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)
	return nil
}
