package logger

// Logger is the logging surface shared by commands and the workspace.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NopLogger discards everything. Used in tests and when output is piped.
type NopLogger struct{}

func (NopLogger) Logf(format string, args ...interface{})   {}
func (NopLogger) Log(msg string)                            {}
func (NopLogger) Debugf(format string, args ...interface{}) {}
func (NopLogger) Warnf(format string, args ...interface{})  {}
