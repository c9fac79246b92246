package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log level constants
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelNone  = "none"
)

var logLevelMatches = map[string]zerolog.Level{
	LevelNone:  zerolog.Disabled,
	LevelTrace: zerolog.TraceLevel,
	LevelDebug: zerolog.DebugLevel,
	LevelInfo:  zerolog.InfoLevel,
	LevelWarn:  zerolog.WarnLevel,
	LevelError: zerolog.ErrorLevel,
}

// ParseLevel resolves a level name, falling back to info for unknown names.
func ParseLevel(level string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// SetLevel sets the global logging level
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// Setup configures the global logger. Logs go to stderr so stdout stays free
// for command output. When file is set logs are appended there instead; the
// returned func closes it.
func Setup(level, file string) (func(), error) {
	log.Logger = log.Output(consoleOutput())
	SetLevel(level)
	if file == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	log.Logger = log.Output(f)
	return func() { _ = f.Close() }, nil
}

func consoleOutput() io.Writer {
	if isTerminalAttached(os.Stderr) {
		return zerolog.ConsoleWriter{
			Out:         os.Stderr,
			TimeFormat:  "2006-01-02 15:04:05",
			FormatLevel: consoleFormatLevel(),
		}
	}
	return os.Stderr
}

func isTerminalAttached(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

func consoleFormatLevel() zerolog.Formatter {
	return func(i interface{}) string {
		ll, _ := i.(string)
		switch ll {
		case "trace":
			return colorize("TRC", colorBlue)
		case "debug":
			return colorize("DBG", colorMagenta)
		case "info":
			return colorize("INF", colorGreen)
		case "warn":
			return colorize("WRN", colorYellow)
		case "error":
			return colorize("ERR", colorRed)
		case "fatal":
			return colorize("FTL", colorRed)
		}
		return "???"
	}
}

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorBlue    = 34
	colorMagenta = 35
)

func colorize(s string, c int) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", c, s)
}

// Enabled checks if a specific logging level is enabled
func Enabled(level zerolog.Level) bool {
	return level >= zerolog.GlobalLevel()
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}
