// Command libnimbus exports the logger to C. Build with
//
//	go build -buildmode=c-shared -o libnimbus.so ./cmd/libnimbus
//
// and include nimbus.h from this directory. C variadic arguments can't cross
// cgo, so the NL_LOG macro in nimbus.h formats the message with snprintf and
// nl_log receives the final text. nimbus.h declares the string parameters as
// const char*; the header cgo generates from this file uses plain char* and
// is not meant to be included together with nimbus.h.
package main

import "C"

import "github.com/abyssdigger/nimbus"

// Level passed to Emit for values outside NL_DEBUG_LOG..NL_FATAL_LOG, so the
// call is rejected instead of wrapping around the byte-sized LogLevel.
const invalidLevel = nimbus.LogLevel(255)

//export nl_setup_logging
func nl_setup_logging(source_file *C.char) {
	nimbus.SetupLogging(C.GoString(source_file))
}

//export nl_log
func nl_log(level C.int, file *C.char, line C.int, msg *C.char) {
	lvl := invalidLevel
	if level >= 0 && level <= C.int(nimbus.LVL_FATAL) {
		lvl = nimbus.LogLevel(level)
	}
	nimbus.Emit(lvl, C.GoString(file), int(line), "%s", C.GoString(msg))
}

//export nl_close_logging
func nl_close_logging() C.int {
	if nimbus.Default().Close() != nil {
		return -1
	}
	return 0
}

func main() {}
