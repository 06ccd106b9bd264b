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

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
}

// Options selects the level and destination of log output.
type Options struct {
	Level string
	File  string
	// OwnsScreen is set by hosts that draw on the terminal. Without a log
	// file their output is discarded.
	OwnsScreen bool
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(level)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

func isTerminalAttached(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// Setup configures the global logger and returns it along with a function
// that releases the log file, if any.
func Setup(opts Options) (zerolog.Logger, func(), error) {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))

	closeFn := func() {}
	var out io.Writer
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case opts.OwnsScreen:
		out = io.Discard
	case isTerminalAttached(os.Stderr):
		out = consoleWriter(os.Stderr)
	default:
		out = os.Stderr
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger, closeFn, nil
}
