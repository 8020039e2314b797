// A minimal console-and-file logging package for Go. Every call writes one
// leveled, file/line-tagged line to the console (colorized) and to the
// session log file (plain) derived from a source file name.
package nimbus

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Short form of Init creates a logger writing to [os.Stdout] with default
// colors and message capacity, [os.Stderr] as fallback for logging errors and
// DEFAULT_LOG_DIR (or $NIMBUS_LOG_DIR if set) as session files directory.
//
// The file sink is inactive until Setup() is called.
//
// Preferred usage example:
//
//	func main() {
//	    logger := nimbus.Init()
//	    logger.Setup("main.go")
//	    defer logger.Close()
//	    logger.Info("started with %d workers", n)
//	    ...
//	}
func Init() *Logger {
	logdir := os.Getenv(ENV_LOG_DIR)
	if logdir == "" {
		logdir = DEFAULT_LOG_DIR
	}
	return InitWithParams(logdir, DEFAULT_MAX_MSG_LEN, os.Stderr, os.Stdout)
}

// InitWithParams constructs a logger instance with explicit initial settings.
//   - logdir: directory for session files (created on Setup)
//   - maxlen: message capacity, messages are cut to maxlen-1 bytes (<=0 for no limit)
//   - fallback: output for internal errors (nil to drop them)
//   - console: colorized output (nil to drop it)
func InitWithParams(logdir string, maxlen int, fallback, console OutType) *Logger {
	l := new(Logger)
	l.logdir = logdir
	l.maxlen = maxlen
	l.colormap = LevelColors
	l.msgbuf = bytes.NewBuffer(make([]byte, 0, DEFAULT_OUT_BUFF))
	l.SetFallback(fallback)
	l.SetConsole(console)
	return l
}

// Sets the fallback output used to report internal errors, io.Discard is used
// instead of nil to silently drop fallback messages.
func (l *Logger) SetFallback(f OutType) *Logger {
	l.sync.fbckMtx.Lock()
	defer l.sync.fbckMtx.Unlock()
	if f != nil {
		l.fallbck = f
	} else {
		l.fallbck = io.Discard
	}
	return l
}

// Replaces the console sink, io.Discard is used instead of nil.
func (l *Logger) SetConsole(out OutType) *Logger {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	if out != nil {
		l.console = out
	} else {
		l.console = io.Discard
	}
	return l
}

// Binds any writer as the session sink instead of a file opened by Setup
// (in-memory buffers for tests, pipes, etc.). A previously opened session file
// is closed. Nil deactivates the file sink.
//
// After each line the sink is flushed if it has a Sync() or Flush() method.
func (l *Logger) SetFileSink(out OutType) *Logger {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	if err := l.closeOwned(); err != nil {
		l.handleLogWriteError(err.Error())
	}
	l.file = out
	l.path = ""
	return l
}

// Assigns the console color map, nil disables colors.
func (l *Logger) SetConsoleColors(colormap *LevelMap) *Logger {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	l.colormap = colormap
	return l
}

// Sets message capacity: longer messages are cut to maxlen-1 bytes (never in
// the middle of a UTF-8 sequence). Zero or negative value disables the limit.
func (l *Logger) SetMaxMessageLen(maxlen int) *Logger {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	l.maxlen = maxlen
	return l
}

// Sets the directory used by subsequent Setup() calls.
func (l *Logger) SetLogDir(logdir string) *Logger {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	l.logdir = logdir
	return l
}

// True if lines are currently written to a session sink.
func (l *Logger) IsFileSinkActive() bool {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	return l.file != nil
}

// Returns the path of the session file opened by the last successful Setup(),
// empty string if there is none.
func (l *Logger) SessionPath() string {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	return l.path
}

// Closes the session file opened by Setup() and deactivates the file sink.
// Writers bound with SetFileSink() are detached but not closed.
// Safe to call more than once.
func (l *Logger) Close() error {
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()
	err := l.closeOwned()
	l.file = nil
	l.path = ""
	return err
}

// Closes the file opened by Setup(), must be called with emitMtx held.
func (l *Logger) closeOwned() (err error) {
	if l.owned != nil {
		if e := l.owned.Close(); e != nil {
			err = errors.New(_ERROR_MESSAGE_SESSION_CLOSE + ": " + e.Error())
		}
		l.owned = nil
		l.file = nil
	}
	return err
}

// handleLogWriteError writes a human-readable error message to the fallback
// writer. Callers may report from several goroutines, so the write itself is
// done under the fallback lock.
func (l *Logger) handleLogWriteError(errormsg string) {
	l.sync.fbckMtx.Lock()
	defer l.sync.fbckMtx.Unlock()
	if l.fallbck != nil {
		l.fallbck.Write([]byte(errormsg + "\n"))
	}
}
