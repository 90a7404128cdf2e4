package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the process-wide logger.
// Format "json" (or Environment "prod"/"production") selects the JSON handler.
// File, when set, adds a size-rotated log file next to stdout.
type Config struct {
	Level       string
	Format      string
	Environment string
	File        string
	WithSource  bool
}

var global atomic.Pointer[slog.Logger]

func init() {
	global.Store(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func levelFromString(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("invalid log level: " + level)
	}
}

// New builds a logger without touching the global one.
func New(cfg Config) (*slog.Logger, error) {
	lvl, err := levelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{Level: lvl, AddSource: cfg.WithSource}
	var handler slog.Handler
	if useJSON(cfg) {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), nil
}

func useJSON(cfg Config) bool {
	if strings.EqualFold(cfg.Format, "json") {
		return true
	}
	env := strings.ToLower(cfg.Environment)
	return cfg.Format == "" && (env == "prod" || env == "production")
}

// Init replaces the global logger.
func Init(cfg Config) (*slog.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	global.Store(l)
	return l, nil
}

func L() *slog.Logger {
	return global.Load()
}

func With(args ...any) *slog.Logger {
	return L().With(args...)
}

func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	L().Error(msg, args...)
}
