package nimbus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

/*
Session file setup. The session file name is derived from a source
identifier (usually the main source file of the program):

	"cmd/app/main.go" -> <logdir>/main.log
	"noext"           -> <logdir>/noext.log
	"x.y.z.txt"       -> <logdir>/x.y.z.log

Both '/' and '\' are treated as directory separators so the same identifier
gives the same name on every platform.
*/

// Returns the base name of a source identifier: everything after the last
// path separator up to the last dot (or to the end if there is no dot).
func BaseName(source string) string {
	if i := strings.LastIndexAny(source, `/\`); i >= 0 {
		source = source[i+1:]
	}
	if i := strings.LastIndexByte(source, '.'); i >= 0 {
		source = source[:i]
	}
	return source
}

// Returns the session file name for a source identifier ("<base>.log").
func LogFileName(source string) string {
	return BaseName(source) + DEFAULT_LOG_EXT
}

// Returns the session file path for a source identifier inside logdir.
func SessionPathFor(logdir, source string) string {
	return filepath.Join(logdir, LogFileName(source))
}

// Setup opens (truncating) the session file derived from source and binds it
// as the file sink. The log directory is created if absent. A previously bound
// session file is closed.
//
// Errors are written to the logger fallback and the file sink stays inactive,
// console output is not affected. Use
//
//	Setup_with_err()
//
// when callers need to react to the failure.
func (l *Logger) Setup(source string) *Logger {
	if err := l.Setup_with_err(source); err != nil {
		l.handleLogWriteError(err.Error())
	}
	return l
}

// Same as Setup() but returns the open error instead of writing it to the
// fallback. Directory creation is best-effort: its failure shows up as the
// open error.
func (l *Logger) Setup_with_err(source string) error {
	if l == nil {
		return errors.New(_ERROR_MESSAGE_LOGGER_IS_NIL)
	}
	l.sync.emitMtx.Lock()
	defer l.sync.emitMtx.Unlock()

	closeErr := l.closeOwned()
	l.file = nil
	l.path = ""

	os.MkdirAll(l.logdir, DEFAULT_DIR_PERM)
	path := SessionPathFor(l.logdir, source)
	f, err := os.Create(path)
	if err != nil {
		return errors.Join(closeErr, errors.New(_ERROR_MESSAGE_SESSION_OPEN+": "+err.Error()))
	}
	l.file = f
	l.owned = f
	l.path = path
	return closeErr
}
