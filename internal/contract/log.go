package contract

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger. It writes to stderr so that
// rendered output on stdout stays machine-readable.
var Logger = NewLogger(os.Stderr, logrus.WarnLevel)

// NewLogger builds a text logger writing to w at the given level.
func NewLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// InitLogger applies the configured level to the shared logger.
func InitLogger(level logrus.Level) {
	Logger.SetLevel(level)
}
