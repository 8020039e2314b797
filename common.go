package nimbus

/*
Defines the core data types used by the logger:
  - basetype and the LogLevel enum
  - LevelMap: fixed per-level tables for labels and colors
  - Logger: the state object owning the console and session file sinks

Also defines package-wide constants and helper utilities:
  - default sizes and values
  - ANSI/color related constants
  - error messages (used for testing)
  - level validity and panic description helpers
*/

import (
	"bytes"
	"io"
	"strconv"
	"sync"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type LogLevel basetype // Logger levels (alias for byte)

type OutType io.Writer // Logger sinks (alias for io.Writer)

// Logger holds both sinks and everything needed to format a line. All fields
// except the mutexes are guarded by sync.emitMtx.
type Logger struct {
	sync struct {
		emitMtx sync.Mutex // serializes emission and sink rebinding
		fbckMtx sync.Mutex // guards fallback writer and writes to it
	}
	console  OutType       // console sink, colorized lines
	file     OutType       // session sink, plain lines (nil if inactive)
	owned    io.Closer     // session file opened by Setup (closed on rebind)
	fallbck  OutType       // fallback writer used to report internal errors
	colormap *LevelMap     // console colors (nil for no color)
	logdir   string        // directory for session files
	path     string        // current session file path ("" if not from Setup)
	maxlen   int           // message capacity incl. terminator, <=0 for unlimited
	msgbuf   *bytes.Buffer // buffer reused while building lines
}

// LevelMap is a fixed-size array with one entry per log level. Used for
// level labels and colors.
type LevelMap [_LVL_MAX_for_checks_only]string

/////////////////////////////////////////////////////////////////////////////////////////

const (
	// Log level values. The trailing _LVL_MAX_for_checks_only is used as an
	// exclusive upper bound for validity checks.
	LVL_DEBUG LogLevel = iota
	LVL_INFO
	LVL_WARN
	LVL_ERROR
	LVL_CRITICAL
	LVL_FATAL
	_LVL_MAX_for_checks_only
)

const (
	// Default values for short init forms
	DEFAULT_LOG_DIR     = "logs"
	DEFAULT_LOG_EXT     = ".log"
	DEFAULT_MAX_MSG_LEN = 1024 // message capacity, longer messages keep DEFAULT_MAX_MSG_LEN-1 bytes
	DEFAULT_OUT_BUFF    = 256  // initial buffer size for log output text
	DEFAULT_DIR_PERM    = 0o755

	ENV_LOG_DIR = "NIMBUS_LOG_DIR" // overrides DEFAULT_LOG_DIR for Init()
)

const (
	// ANSI colored text fragments prefix/suffix. For a colored line the sequence is:
	// ANSI_COL_PRFX + colorSpec + ANSI_COL_SUFX + text + ANSI_COL_RESET
	ANSI_COL_PRFX  = "\033["
	ANSI_COL_SUFX  = "m"
	ANSI_COL_RESET = ANSI_COL_PRFX + "0" + ANSI_COL_SUFX
)

const (
	// Error messages used across logger operations (used for testing).
	_ERROR_MESSAGE_INVALID_LEVEL = "invalid log level"
	_ERROR_MESSAGE_LOGGER_IS_NIL = "logger is nil"
	_ERROR_MESSAGE_CONSOLE_WRITE = "error writing log to console"
	_ERROR_MESSAGE_FILE_WRITE    = "error writing log to session file"
	_ERROR_MESSAGE_FILE_FLUSH    = "error flushing session file"
	_ERROR_MESSAGE_SESSION_OPEN  = "error opening session file"
	_ERROR_MESSAGE_SESSION_CLOSE = "error closing session file"
	_ERROR_UNKNOWN_PANIC_TEXT    = "[no panic description]"
)

/////////////////////////////////////////////////////////////////////////////////////////

// Level labels written in front of the origin tag (same for both sinks)
var LevelLabels = &LevelMap{
	"[DEBUG]: ",    //LVL_DEBUG
	"[INFO]: ",     //LVL_INFO
	"[WARN]: ",     //LVL_WARN
	"[ERROR]: ",    //LVL_ERROR
	"[CRITICAL]: ", //LVL_CRITICAL
	"[FATAL]: ",    //LVL_FATAL
}

// Predefined console color map (ANSI fragments between ANSI_COL_PRFX and ANSI_COL_SUFX)
var LevelColors = &LevelMap{
	"92",       //LVL_DEBUG    bright green
	"93",       //LVL_INFO     bright yellow
	"38;5;208", //LVL_WARN     orange (256 colors)
	"91",       //LVL_ERROR    bright red
	"95",       //LVL_CRITICAL bright magenta
	"31",       //LVL_FATAL    red
}

// Level names without decorations, for messages and the C interface
var LevelNames = &LevelMap{
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"FATAL",
}

// True if level is one of LVL_DEBUG..LVL_FATAL.
func (level LogLevel) IsValid() bool {
	return level < _LVL_MAX_for_checks_only
}

// String returns the level name or "LogLevel(N)" for invalid values.
func (level LogLevel) String() string {
	if level.IsValid() {
		return LevelNames[level]
	}
	return "LogLevel(" + strconv.Itoa(int(level)) + ")"
}

// Converts a panic value into a compact readable string (used when
// translating panics into errors or fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}
