package logger

import (
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLevel maps a configured level name onto a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, errors.New().WithData(errors.ErrInvalidLogLevel, level)
	}
}

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// Init initializes the logger based on the given configuration
func Init(level LogLevel, isService bool) {
	InitWithWriter(os.Stdout, level, isService)
}

// InitWithWriter is Init with an explicit output, used by tests.
func InitWithWriter(out io.Writer, level LogLevel, isService bool) {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	if isService {
		output.NoColor = true
		output.TimeFormat = ""
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	SetLogLevel(level)
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return isProcessGroupLeader()
}

func isProcessGroupLeader() bool {
	return syscall.Getpid() == getpgrp()
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{withCode(log.Error(), err)}
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message with a specific error code and exits the program
func FatalWithCode(err errors.Error) *LogEvent {
	return &LogEvent{withCode(log.Fatal(), err)}
}

func withCode(e *zerolog.Event, err errors.Error) *zerolog.Event {
	return e.
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())
}

// componentLogger is a Logger bound to a set of context fields. It reads the
// package logger on every call so Init can run after components are built.
type componentLogger struct {
	fields []string
	nop    bool
}

// New returns a Logger that tags every event with the given component.
func New(component string) Logger {
	return &componentLogger{fields: []string{"component", component}}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &componentLogger{nop: true}
}

func (c *componentLogger) event(level zerolog.Level) *LogEvent {
	if c.nop {
		nop := zerolog.Nop()
		return &LogEvent{nop.WithLevel(level)}
	}

	e := log.WithLevel(level)
	for i := 0; i+1 < len(c.fields); i += 2 {
		e = e.Str(c.fields[i], c.fields[i+1])
	}

	return &LogEvent{e}
}

func (c *componentLogger) Debug() *LogEvent { return c.event(zerolog.DebugLevel) }
func (c *componentLogger) Info() *LogEvent  { return c.event(zerolog.InfoLevel) }
func (c *componentLogger) Warn() *LogEvent  { return c.event(zerolog.WarnLevel) }
func (c *componentLogger) Error() *LogEvent { return c.event(zerolog.ErrorLevel) }

func (c *componentLogger) ErrorWithCode(err errors.Error) *LogEvent {
	e := c.Error()
	return &LogEvent{withCode(e.Event, err)}
}

func (c *componentLogger) ErrorWithContext(err errors.Error, component, operation string) *LogEvent {
	e := c.ErrorWithCode(err)
	return &LogEvent{e.Str("failed_component", component).Str("operation", operation)}
}

func (c *componentLogger) With(key, value string) Logger {
	fields := make([]string, 0, len(c.fields)+2)
	fields = append(fields, c.fields...)
	fields = append(fields, key, value)

	return &componentLogger{fields: fields, nop: c.nop}
}
