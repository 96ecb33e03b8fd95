// Package logger owns the process-wide zerolog instance. Call Init once
// during startup; everything else obtains it through Get and derives a
// child logger with With().Str("component", ...).
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects level, format and destination for the process logger.
type Options struct {
	// Level names the minimum severity to emit (trace, debug, info, warn,
	// error). Anything else, including the empty string, means info.
	Level string
	// Pretty switches from JSON lines to the colourised console writer.
	Pretty bool
	// Output receives the log stream. When nil it goes to os.Stderr, which
	// keeps stdout free for command output.
	Output io.Writer
}

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init builds the shared logger on the first call and returns it. Later
// calls return the already-built instance; their options are ignored.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := levelFor(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Logger()

		initialized = true
	})
	return instance
}

// Get returns the shared logger, panicking when Init has not run yet. The
// panic points at a wiring bug, not a runtime condition.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// Reset discards the shared instance so a following Init rebuilds it.
// Exists for tests.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

var levelNames = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

func levelFor(name string) zerolog.Level {
	if lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}
