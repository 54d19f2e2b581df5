package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// process-wide logger behind the package helpers
var global zerolog.Logger

// LogLevel is a configured log level name
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

var zerologLevels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

// ParseLevel maps a configuration value onto a LogLevel. Unknown values mean info.
func ParseLevel(level string) LogLevel {
	l := LogLevel(strings.ToLower(strings.TrimSpace(level)))
	if _, known := zerologLevels[l]; known {
		return l
	}
	return InfoLevel
}

// Config controls the global logger
type Config struct {
	Level LogLevel
	// Pretty selects the console writer instead of JSON lines
	Pretty bool
	// Output is os.Stdout when nil
	Output io.Writer
	// Service, when set, is stamped on every entry
	Service string
}

// Configure replaces the global logger (including zerolog/log) and returns it.
func Configure(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, known := zerologLevels[cfg.Level]
	if !known {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	fields := zerolog.New(out).With().Timestamp()
	if cfg.Service != "" {
		fields = fields.Str("service", cfg.Service)
	}
	global = fields.Logger()
	log.Logger = global
	return global
}

func Debug() *zerolog.Event { return global.Debug() }

func Info() *zerolog.Event { return global.Info() }

func Warn() *zerolog.Event { return global.Warn() }

func Error() *zerolog.Event { return global.Error() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
