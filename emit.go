package nimbus

/*
Emission path: renders a message, builds the console and session lines and
writes them. Responsible for:
  - message rendering and truncation to the logger capacity
  - building lines according to the logger colors
  - writing to the console and the session sink with panic recovery
  - flushing the session sink after every line
  - error reporting to the fallback writer
*/

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"unicode/utf8"
)

// Session sinks flushed after every line: *os.File has Sync(), buffered
// writers (bufio.Writer etc.) have Flush().
type syncer interface{ Sync() error }
type flusher interface{ Flush() error }

// Emit writes one line at the given level with an explicit origin tag. Any
// error (invalid level, write or flush failure) is written to the logger
// fallback.
//
// Use Log() or level helpers to get the origin tag filled automatically.
func (l *Logger) Emit(level LogLevel, file string, line int, format string, args ...any) {
	if _, err := l.Emit_with_err(level, file, line, format, args...); err != nil && l != nil {
		l.handleLogWriteError(err.Error())
	}
}

// Emit_with_err renders format with args and writes
//
//	<color><label>[<file>:<line>] <message><reset>\n
//
// to the console and
//
//	<label>[<file>:<line>] <message>\n
//
// to the session sink if it is active, then flushes the session sink.
//
// Returns whether the message was cut to the logger capacity and an error if
// the level is invalid (nothing is written then) or if any sink failed. A
// failing sink never prevents the other one from being written.
func (l *Logger) Emit_with_err(level LogLevel, file string, line int, format string, args ...any) (truncated bool, err error) {
	if l == nil {
		return false, errors.New(_ERROR_MESSAGE_LOGGER_IS_NIL)
	}
	if !level.IsValid() {
		return false, fmt.Errorf("%s: %v", _ERROR_MESSAGE_INVALID_LEVEL, level)
	}
	msg := fmt.Sprintf(format, args...)

	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()

	msg, truncated = truncateMessage(msg, l.maxlen)

	buildTextLine(l.msgbuf, level, file, line, msg, l.colormap)
	if e := writeToSink(l.console, l.msgbuf.Bytes()); e != nil {
		err = errors.New(_ERROR_MESSAGE_CONSOLE_WRITE + e.Error())
	}
	if l.file != nil {
		buildTextLine(l.msgbuf, level, file, line, msg, nil)
		if e := writeToSink(l.file, l.msgbuf.Bytes()); e != nil {
			err = errors.Join(err, errors.New(_ERROR_MESSAGE_FILE_WRITE+e.Error()))
		} else if e := flushSink(l.file); e != nil {
			err = errors.Join(err, errors.New(_ERROR_MESSAGE_FILE_FLUSH+e.Error()))
		}
	}
	return truncated, err
}

// Log writes a message at the given level tagged with the caller's file name
// and line.
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	l.logAt(1, level, format, args...)
}

// Logs a message at DEBUG level tagged with the caller's file name and line.
func (l *Logger) Debug(format string, args ...any) {
	l.logAt(1, LVL_DEBUG, format, args...)
}

// Logs a message at INFO level tagged with the caller's file name and line.
func (l *Logger) Info(format string, args ...any) {
	l.logAt(1, LVL_INFO, format, args...)
}

// Logs a message at WARN level tagged with the caller's file name and line.
func (l *Logger) Warn(format string, args ...any) {
	l.logAt(1, LVL_WARN, format, args...)
}

// Logs a message at ERROR level tagged with the caller's file name and line.
func (l *Logger) Error(format string, args ...any) {
	l.logAt(1, LVL_ERROR, format, args...)
}

// Logs a message at CRITICAL level tagged with the caller's file name and line.
func (l *Logger) Critical(format string, args ...any) {
	l.logAt(1, LVL_CRITICAL, format, args...)
}

// Logs a message at FATAL level tagged with the caller's file name and line.
//
// FATAL is a label only: the program is not stopped.
func (l *Logger) Fatal(format string, args ...any) {
	l.logAt(1, LVL_FATAL, format, args...)
}

// logAt emits with the origin of the function skip frames above logAt's caller
// (0 is the caller of logAt itself).
func (l *Logger) logAt(skip int, level LogLevel, format string, args ...any) {
	file, line := callerOrigin(skip + 1)
	l.Emit(level, file, line, format, args...)
}

// callerOrigin returns the file base name and line of the function skip frames
// above callerOrigin's caller.
func callerOrigin(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}

// truncateMessage cuts msg to maxlen-1 bytes if it doesn't fit maxlen
// (one byte is reserved like a terminator in a fixed buffer). The cut is moved
// back to a rune start so the result stays valid UTF-8.
func truncateMessage(msg string, maxlen int) (string, bool) {
	if maxlen <= 0 || len(msg) < maxlen {
		return msg, false
	}
	cut := maxlen - 1
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut], true
}

// buildTextLine constructs one line into outBuffer and returns the same
// buffer. Color fragments are added only if colormap is not nil. The buffer
// is reset before writing.
func buildTextLine(outBuffer *bytes.Buffer, level LogLevel, file string, line int, msg string, colormap *LevelMap) *bytes.Buffer {
	outBuffer.Reset()
	if colormap != nil {
		outBuffer.WriteString(ANSI_COL_PRFX)
		outBuffer.WriteString(colormap[level])
		outBuffer.WriteString(ANSI_COL_SUFX)
	}
	outBuffer.WriteString(LevelLabels[level])
	outBuffer.WriteByte('[')
	outBuffer.WriteString(file)
	outBuffer.WriteByte(':')
	outBuffer.WriteString(strconv.Itoa(line))
	outBuffer.WriteString("] ")
	outBuffer.WriteString(msg)
	if colormap != nil {
		outBuffer.WriteString(ANSI_COL_RESET)
	}
	outBuffer.WriteByte('\n')
	return outBuffer
}

// writeToSink writes data and converts a panic raised by the sink into an
// error. The returned error text starts with a separator so it can be
// appended to the _ERROR_MESSAGE_* prefixes.
func writeToSink(output OutType, data []byte) (err error) {
	// only returns of named result values can be changed by defer
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(" (panic)" + panicDesc(r))
		}
	}()
	n, e := output.Write(data)
	if e == nil && n < len(data) {
		e = errors.New("short write")
	}
	if e != nil {
		err = errors.New(" (" + strconv.Itoa(n) + " bytes written): " + e.Error())
	}
	return
}

// flushSink forces buffered data of the sink to stable storage if the sink
// supports it. Same error text convention as writeToSink.
func flushSink(output OutType) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(" (panic)" + panicDesc(r))
		}
	}()
	var e error
	switch s := output.(type) {
	case syncer:
		e = s.Sync()
	case flusher:
		e = s.Flush()
	}
	if e != nil {
		err = errors.New(": " + e.Error())
	}
	return
}
