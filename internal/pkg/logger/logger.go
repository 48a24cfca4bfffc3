package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

func (l Level) String() string {
	return levelNames[l]
}

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	case FATAL:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel maps a config string to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Config controls the global logger
type Config struct {
	Level  string
	Format string // "json" or "console"
	Output io.Writer
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

func init() {
	Init(Config{Level: "info", Format: "json"})
}

// Init (re)configures the global logger
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	mu.Lock()
	base = zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(cfg.Level).zerologLevel())
	mu.Unlock()
}

// SetGlobalLevel sets the level for the global logger
func SetGlobalLevel(level Level) {
	mu.Lock()
	base = base.Level(level.zerologLevel())
	mu.Unlock()
}

// GetLevel returns current logging level
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	switch base.GetLevel() {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return DEBUG
	case zerolog.WarnLevel:
		return WARN
	case zerolog.ErrorLevel:
		return ERROR
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return FATAL
	default:
		return INFO
	}
}

// Get returns a copy of the global logger
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns a child logger tagged with the component name
func Component(name string) zerolog.Logger {
	l := Get()
	return l.With().Str("component", name).Logger()
}

// Package-level functions for easy access
func Debug() *zerolog.Event { l := Get(); return l.Debug() }
func Info() *zerolog.Event  { l := Get(); return l.Info() }
func Warn() *zerolog.Event  { l := Get(); return l.Warn() }
func Error() *zerolog.Event { l := Get(); return l.Error() }
func Fatal() *zerolog.Event { l := Get(); return l.Fatal() }
