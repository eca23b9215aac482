package logging

import "context"

type contextKey struct{}

// WithLogData attaches a LogData to the context so handlers further down the
// chain can add timings and fields to the request's final log entry.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, contextKey{}, logData)
}

// GetLogData returns the request's LogData, or nil when the request did not
// pass through LoggingWrapper (e.g. in tests).
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(contextKey{}).(*LogData)
	return logData
}
