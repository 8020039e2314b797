package nimbus

import "bytes"

/*********************************************************************************
io.Writer interface implementation

A LevelWriter binds a logger, a level and the origin tag of the place where
it was created so it can be used with fmt.Fprintf, log.New and other
writer-based helpers:
 - Lvl(level) captures the caller's file and line.
 - Write(p) emits p as one message (a single trailing newline is dropped)
   and returns len(p) on success, 0 and a non-nil error on failure.
   Empty messages are dropped.

This allows patterns like:
  fmt.Fprintf(logger.Lvl(LVL_WARN), "disk low: %d%%", percent)
*/

// LevelWriter is an io.Writer emitting every write as one log line.
type LevelWriter struct {
	logger *Logger
	level  LogLevel
	file   string
	line   int
}

// Lvl returns a writer emitting at level and tagged with the caller's file
// name and line. The level is checked on every Write.
func (l *Logger) Lvl(level LogLevel) *LevelWriter {
	file, line := callerOrigin(1)
	return &LevelWriter{logger: l, level: level, file: file, line: line}
}

// Write implements io.Writer. On success it returns n=len(p) and err==nil.
// Empty messages (nil, zero-length or a lone "\n") are consumed without
// emitting a line.
func (w *LevelWriter) Write(p []byte) (n int, err error) {
	msg := bytes.TrimSuffix(p, []byte{'\n'})
	if len(msg) == 0 {
		return len(p), nil
	}
	_, err = w.logger.Emit_with_err(w.level, w.file, w.line, "%s", msg)
	if err == nil {
		n = len(p)
	}
	return
}
