// Package logger provides leveled diagnostics for the nginxtools CLI.
//
// Diagnostics go to stderr, apart from the user-facing output written by
// the output package to stdout. Only the CLI logs; the store and validator
// return errors and never write anything themselves.
//
// Messages are rendered by a zerolog console writer as:
//
//	[LEVEL] YYYY-MM-DD HH:MM:SS message key=value ...
//
// By default only Warn and Error are shown. Init(true), driven by
// --verbose, enables Debug and Info.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

const timeFormat = "2006-01-02 15:04:05"

var (
	mu     sync.RWMutex
	level  = LevelWarn
	output io.Writer = os.Stderr
	base   = build(output, level)
)

func build(w io.Writer, l Level) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		NoColor:    true,
		TimeFormat: timeFormat,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel: func(i interface{}) string {
			return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
		},
	}
	return zerolog.New(cw).Level(l.zerolog()).With().Timestamp().Logger()
}

// Init sets the level from the --verbose flag: Debug when verbose, Warn
// otherwise.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum log level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	base = build(output, level)
}

// SetOutput sets the output destination. nil restores os.Stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(output, level)
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func event(l Level) *zerolog.Event {
	lg := current()
	switch l {
	case LevelDebug:
		return lg.Debug()
	case LevelInfo:
		return lg.Info()
	case LevelWarn:
		return lg.Warn()
	default:
		return lg.Error()
	}
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	event(LevelDebug).Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	event(LevelInfo).Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	event(LevelWarn).Msgf(format, args...)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields map[string]interface{}) {
	event(LevelDebug).Fields(fields).Msg(msg)
}

// LogError logs err with a context message. nil is ignored.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	event(LevelError).Msgf("%s: %v", msg, err)
}
