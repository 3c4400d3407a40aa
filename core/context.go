package core

import (
	"context"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/sirupsen/logrus"
)

// Context keys for render options
type contextKey string

const loggerKey contextKey = "logger"

// withLogger attaches a field logger to the context
func withLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// loggerFrom returns the context logger, or the shared logger when none is set
func loggerFrom(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok && log != nil {
		return log
	}
	return contract.Logger
}
