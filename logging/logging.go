/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package logging provides the em console logger with colorized severity
// markers. All logging should go through the context-based functions
// (InfoContext, WarnContext, ...) so commands and libraries share the logger
// configured at startup.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// LogLevel represents the severity level of a log message
type LogLevel int

// OutputType represents the output format for logs
type OutputType int

// Output types for different log formats
const (
	PlainOutput OutputType = iota
	ColorOutput
	JSONOutput
)

// Log levels, ordered from least to most severe for numeric comparison.
// DoneLevel reports a completed step and is shown wherever info is.
const (
	DebugLevel LogLevel = iota
	InfoLevel
	DoneLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case DoneLevel:
		return "DONE"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

const timestampLayout = "15:04:05"

// CustomLogger writes leveled, optionally colorized lines to ConsoleWriter
// and command results to OutputWriter.
type CustomLogger struct {
	mu            sync.Mutex
	Level         LogLevel
	OutputType    OutputType
	Quiet         bool
	Verbose       bool
	ConsoleWriter io.Writer
	OutputWriter  io.Writer

	now func() time.Time
}

// NewCustomLogger creates a logger at the given level writing plain text to
// stderr.
func NewCustomLogger(level LogLevel) *CustomLogger {
	return &CustomLogger{
		Level:         level,
		OutputType:    PlainOutput,
		ConsoleWriter: os.Stderr,
		OutputWriter:  os.Stdout,
		now:           time.Now,
	}
}

// NewCustomLoggerWithOptions creates a logger from the configured level and
// format strings and the --quiet/--verbose switches.
func NewCustomLoggerWithOptions(levelStr, format string, quiet, verbose bool) *CustomLogger {
	l := NewCustomLogger(DetermineLogLevel(levelStr))
	l.OutputType = DetermineOutputType(format)
	l.Quiet = quiet
	l.Verbose = verbose
	if verbose {
		l.Level = DebugLevel
	}
	return l
}

// DetermineLogLevel converts a level name to a LogLevel. Unknown names map to
// info.
func DetermineLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// DetermineOutputType converts a format name to an OutputType. Unknown names
// map to color.
func DetermineOutputType(format string) OutputType {
	switch strings.ToLower(format) {
	case "json":
		return JSONOutput
	case "text", "plain":
		return PlainOutput
	default:
		return ColorOutput
	}
}

// SetOutput redirects console lines and command output. Used by tests and by
// commands that capture output.
func (l *CustomLogger) SetOutput(console, output io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ConsoleWriter = console
	l.OutputWriter = output
}

// SetQuiet enables or disables quiet mode. In quiet mode only errors are
// displayed.
func (l *CustomLogger) SetQuiet(quiet bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Quiet = quiet
}

// IsQuiet returns whether the logger is in quiet mode.
func (l *CustomLogger) IsQuiet() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Quiet
}

// formatMessage applies the colored severity marker for ColorOutput.
func (l *CustomLogger) formatMessage(level LogLevel, message string) string {
	if l.OutputType != ColorOutput {
		return fmt.Sprintf("[%s] %s", level, message)
	}

	switch level {
	case DebugLevel:
		return color.HiBlackString("[DEBUG] %s", message)
	case InfoLevel:
		return fmt.Sprintf("%s %s", color.CyanString("[INFO]"), message)
	case DoneLevel:
		return fmt.Sprintf("%s %s", color.HiGreenString("[DONE]"), message)
	case WarnLevel:
		return fmt.Sprintf("%s %s", color.HiYellowString("[WARN]"), message)
	case ErrorLevel:
		return fmt.Sprintf("%s %s", color.HiRedString("[ERROR]"), message)
	default:
		return message
	}
}

// shouldShowLocked must be called while holding l.mu.
func (l *CustomLogger) shouldShowLocked(level LogLevel) bool {
	if l.Quiet {
		return level == ErrorLevel
	}
	if l.Verbose {
		return true
	}
	return level >= l.Level
}

func (l *CustomLogger) log(level LogLevel, message string, args ...interface{}) {
	msg := message
	if len(args) > 0 {
		msg = fmt.Sprintf(message, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.shouldShowLocked(level) || l.ConsoleWriter == nil {
		return
	}

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	ts := now()

	var line string
	if l.OutputType == JSONOutput {
		data, err := json.Marshal(map[string]string{
			"time":  ts.Format(time.RFC3339),
			"level": strings.ToLower(level.String()),
			"msg":   msg,
		})
		if err != nil {
			line = msg
		} else {
			line = string(data)
		}
	} else {
		line = fmt.Sprintf("[%s] %s", ts.Format(timestampLayout), l.formatMessage(level, msg))
	}

	if _, err := fmt.Fprintln(l.ConsoleWriter, line); err != nil {
		fmt.Fprintln(os.Stderr, line)
	}
}

// Debug logs a debug message.
func (l *CustomLogger) Debug(format string, args ...interface{}) {
	l.log(DebugLevel, format, args...)
}

// Info logs an informational message.
func (l *CustomLogger) Info(format string, args ...interface{}) {
	l.log(InfoLevel, format, args...)
}

// Done logs a completed step, such as a generated file.
func (l *CustomLogger) Done(format string, args ...interface{}) {
	l.log(DoneLevel, format, args...)
}

// Warn logs a warning message.
func (l *CustomLogger) Warn(format string, args ...interface{}) {
	l.log(WarnLevel, format, args...)
}

// Error logs an error message. It accepts either an error, a format string,
// or any other value as the first argument.
func (l *CustomLogger) Error(firstArg interface{}, args ...interface{}) {
	switch v := firstArg.(type) {
	case error:
		l.log(ErrorLevel, "%s", v.Error())
	case string:
		l.log(ErrorLevel, v, args...)
	default:
		l.log(ErrorLevel, "%v", v)
	}
}

// Output writes command results to the output writer. JSON output encodes
// data as indented JSON, other formats print it with fmt.
func (l *CustomLogger) Output(data interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.OutputWriter == nil {
		return nil
	}
	if l.OutputType == JSONOutput {
		encoder := json.NewEncoder(l.OutputWriter)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
	_, err := fmt.Fprintln(l.OutputWriter, data)
	return err
}

// Writer returns the writer command results go to.
func (l *CustomLogger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.OutputWriter == nil {
		return io.Discard
	}
	return l.OutputWriter
}

// loggerKeyType is the type for the logger context key
type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// WithLogger returns a new context with the provided logger.
func WithLogger(ctx context.Context, l *CustomLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from the context. If none is stored, a new
// default logger is returned.
func FromContext(ctx context.Context) *CustomLogger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*CustomLogger); ok && l != nil {
			return l
		}
	}
	return NewCustomLogger(InfoLevel)
}

// DebugContext logs a debug message using the logger from context.
func DebugContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Debug(message, args...)
}

// InfoContext logs an informational message using the logger from context.
func InfoContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Info(message, args...)
}

// DoneContext logs a completed step using the logger from context.
func DoneContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Done(message, args...)
}

// WarnContext logs a warning message using the logger from context.
func WarnContext(ctx context.Context, message string, args ...interface{}) {
	FromContext(ctx).Warn(message, args...)
}

// ErrorContext logs an error message using the logger from context.
func ErrorContext(ctx context.Context, firstArg interface{}, args ...interface{}) {
	FromContext(ctx).Error(firstArg, args...)
}

// OutputContext writes command results using the logger from context.
func OutputContext(ctx context.Context, data interface{}) error {
	return FromContext(ctx).Output(data)
}
