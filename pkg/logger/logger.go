// Package logger holds the process-wide zerolog logger. Call Init once during
// startup; every later Get returns the same instance.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn or error.
	// Unrecognised values fall back to info.
	Level string
	// Pretty switches from JSON to coloured console output. Meant for local
	// development only.
	Pretty bool
	// Output defaults to os.Stdout when nil.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance *zerolog.Logger
)

// Init builds the singleton. Calling it again after a successful Init is a
// no-op that returns the existing instance.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return *instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := levelFromString(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	l := zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	instance = &l
	return l
}

// Get returns the singleton. Panics when Init has not run yet.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		panic("logger: Get called before Init")
	}
	return *instance
}

// Reset discards the singleton so the next Init rebuilds it. Test use only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

func levelFromString(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
