package logging

// Nop returns a logger that discards everything. It is the default for
// wiring sessions created without WithLogger.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)          {}
func (nopLogger) Info(string, ...Field)           {}
func (nopLogger) Warn(string, ...Field)           {}
func (nopLogger) Error(string, ...Field)          {}
func (nopLogger) Log(LogLevel, string, ...Field)  {}
func (nopLogger) WithFields(...Field) Logger      { return nopLogger{} }
func (nopLogger) WithCategory(string) Logger      { return nopLogger{} }
