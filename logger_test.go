package nimbus

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testlogstr = "Test log АБВ こんにちは, 世界`'é\"\\\x5A\a\b\t\f\r\vи други глупости!"
const panicStr = "panic generated in writer"
const errorStr = "error generated in writer"
const testfile = "origin.go"
const testline = 42

var ansiRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

type ErrorWriter struct{}

func (e *ErrorWriter) Write(b []byte) (int, error) { return 0, errors.New(errorStr) }

type PanicWriter struct{}

func (p *PanicWriter) Write(b []byte) (int, error) { panic(panicStr) }

type ShortWriter struct{}

func (s *ShortWriter) Write(b []byte) (int, error) { return len(b) / 2, nil }

type FakeWriter struct {
	buffer []byte
}

func (f *FakeWriter) Write(b []byte) (int, error) {
	f.buffer = append(f.buffer, b...)
	return len(b), nil
}
func (f *FakeWriter) String() string { return string(f.buffer) }
func (f *FakeWriter) Clear()         { f.buffer = f.buffer[:0] }

// FakeWriter counting Sync() calls and the data length at the last one.
type SyncWriter struct {
	FakeWriter
	syncs    int
	synclen  int
	syncfail bool
}

func (s *SyncWriter) Sync() error {
	s.syncs++
	s.synclen = len(s.buffer)
	if s.syncfail {
		return errors.New("sync failed")
	}
	return nil
}

// FakeWriter counting Flush() calls.
type FlushWriter struct {
	FakeWriter
	flushes int
}

func (f *FlushWriter) Flush() error {
	f.flushes++
	return nil
}

// Creates a logger with fake console, file sink and fallback.
func testLogger(maxlen int) (l *Logger, con, file, ferr *FakeWriter) {
	con, file, ferr = &FakeWriter{}, &FakeWriter{}, &FakeWriter{}
	l = InitWithParams(DEFAULT_LOG_DIR, maxlen, ferr, con)
	l.SetFileSink(file)
	return
}

func TestInit_Defaults(t *testing.T) {
	t.Setenv(ENV_LOG_DIR, "")
	l := Init()
	assert.Equal(t, DEFAULT_LOG_DIR, l.logdir)
	assert.Equal(t, DEFAULT_MAX_MSG_LEN, l.maxlen)
	assert.Equal(t, OutType(os.Stdout), l.console)
	assert.Equal(t, OutType(os.Stderr), l.fallbck)
	assert.Equal(t, LevelColors, l.colormap)
	assert.False(t, l.IsFileSinkActive())
	assert.Empty(t, l.SessionPath())
}

func TestInit_EnvLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv(ENV_LOG_DIR, dir)
	l := Init()
	assert.Equal(t, dir, l.logdir)
	require.NoError(t, l.Setup_with_err("cmd/tool/main.go"))
	defer l.Close()
	assert.Equal(t, filepath.Join(dir, "main.log"), l.SessionPath())
	assert.FileExists(t, filepath.Join(dir, "main.log"))
}

func TestLogger_SetFallback(t *testing.T) {
	tests := []struct {
		name     string
		fallback OutType
		wants    OutType
	}{
		{"Stdout", os.Stdout, os.Stdout},
		{"Discard", io.Discard, io.Discard},
		{"Nil->Discard", nil, io.Discard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := InitWithParams(DEFAULT_LOG_DIR, 0, os.Stderr, nil)
			l.SetFallback(tt.fallback)
			assert.Equal(t, tt.wants, l.fallbck)
		})
	}
}

func TestLogger_SetConsole(t *testing.T) {
	tests := []struct {
		name    string
		console OutType
		wants   OutType
	}{
		{"Stdout", os.Stdout, os.Stdout},
		{"Discard", io.Discard, io.Discard},
		{"Nil->Discard", nil, io.Discard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := InitWithParams(DEFAULT_LOG_DIR, 0, nil, os.Stdout)
			l.SetConsole(tt.console)
			assert.Equal(t, tt.wants, l.console)
		})
	}
}

func TestLogger_SetFileSink(t *testing.T) {
	l, _, file, ferr := testLogger(0)
	assert.True(t, l.IsFileSinkActive())
	assert.Empty(t, l.SessionPath(), "path is set for injected sink")

	l.Emit(LVL_INFO, testfile, testline, "injected")
	assert.Equal(t, "[INFO]: [origin.go:42] injected\n", file.String())

	l.SetFileSink(nil)
	assert.False(t, l.IsFileSinkActive())
	l.Emit(LVL_INFO, testfile, testline, "dropped")
	assert.Equal(t, "[INFO]: [origin.go:42] injected\n", file.String(), "data written to detached sink")
	assert.Empty(t, ferr.buffer)
}

func TestLogger_SetFileSink_ClosesSessionFile(t *testing.T) {
	l := InitWithParams(t.TempDir(), 0, nil, io.Discard)
	require.NoError(t, l.Setup_with_err("main.go"))
	f := l.owned.(*os.File)

	out := &FakeWriter{}
	l.SetFileSink(out)
	assert.Nil(t, l.owned)
	_, err := f.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed, "session file left open")

	l.Emit(LVL_WARN, testfile, testline, "to buffer")
	assert.Equal(t, "[WARN]: [origin.go:42] to buffer\n", out.String())
}

func TestLogger_SetConsoleColors(t *testing.T) {
	l, con, file, _ := testLogger(0)
	l.SetConsoleColors(nil)
	l.Emit(LVL_ERROR, testfile, testline, "plain")
	assert.Equal(t, file.String(), con.String())

	custom := &LevelMap{"1", "2", "3", "4", "5", "6"}
	con.Clear()
	l.SetConsoleColors(custom)
	l.Emit(LVL_CRITICAL, testfile, testline, "custom")
	assert.Equal(t, "\033[5m[CRITICAL]: [origin.go:42] custom\033[0m\n", con.String())
}

func TestLogger_SetLogDir(t *testing.T) {
	dir := t.TempDir()
	l := InitWithParams(DEFAULT_LOG_DIR, 0, nil, io.Discard).SetLogDir(dir)
	require.NoError(t, l.Setup_with_err("x.go"))
	defer l.Close()
	assert.Equal(t, filepath.Join(dir, "x.log"), l.SessionPath())
}

func TestLogger_Close(t *testing.T) {
	t.Run("session_file", func(t *testing.T) {
		l := InitWithParams(t.TempDir(), 0, nil, io.Discard)
		require.NoError(t, l.Setup_with_err("main.go"))
		path := l.SessionPath()
		l.Emit(LVL_INFO, testfile, testline, "before")
		assert.NoError(t, l.Close())
		assert.False(t, l.IsFileSinkActive())
		assert.Empty(t, l.SessionPath())
		l.Emit(LVL_INFO, testfile, testline, "after")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[INFO]: [origin.go:42] before\n", string(data))
		assert.NoError(t, l.Close(), "second close")
	})
	t.Run("injected_sink", func(t *testing.T) {
		l, _, file, _ := testLogger(0)
		assert.NoError(t, l.Close())
		assert.False(t, l.IsFileSinkActive())
		l.Emit(LVL_INFO, testfile, testline, "after")
		assert.Empty(t, file.buffer)
	})
	t.Run("never_setup", func(t *testing.T) {
		l := Init()
		assert.NoError(t, l.Close())
	})
}
