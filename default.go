package nimbus

// The package-level logger used by SetupLogging and the package-level
// helpers. It writes to os.Stdout and reports its errors to os.Stderr.
var std = Init()

// Returns the package-level logger.
func Default() *Logger { return std }

// Opens the session file derived from source for the package-level logger.
// See (*Logger).Setup().
func SetupLogging(source string) {
	std.Setup(source)
}

// Emits a line with the package-level logger. See (*Logger).Emit().
func Emit(level LogLevel, file string, line int, format string, args ...any) {
	std.Emit(level, file, line, format, args...)
}

// Logs with the package-level logger, tagged with the caller's file and line.
func Log(level LogLevel, format string, args ...any) {
	std.logAt(1, level, format, args...)
}

func Debug(format string, args ...any)    { std.logAt(1, LVL_DEBUG, format, args...) }
func Info(format string, args ...any)     { std.logAt(1, LVL_INFO, format, args...) }
func Warn(format string, args ...any)     { std.logAt(1, LVL_WARN, format, args...) }
func Error(format string, args ...any)    { std.logAt(1, LVL_ERROR, format, args...) }
func Critical(format string, args ...any) { std.logAt(1, LVL_CRITICAL, format, args...) }
func Fatal(format string, args ...any)    { std.logAt(1, LVL_FATAL, format, args...) }
