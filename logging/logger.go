package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel selects the minimum level for pipeline logging:
// "debug", "info", "warn", "error" or "off". Defaults to info.
const EnvLogLevel = "UNPACK_LOG_LEVEL"

// LevelOff disables logging entirely.
const LevelOff = slog.Level(8192)

func Initialize(name string) {
	slog.SetDefault(unpackLogger(name))
}

// unpackLogger returns a logger that writes JSON entries to stderr
func unpackLogger(name string) *slog.Logger {
	level := getLogLevel()
	if level == LevelOff {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	}

	handlerOptions := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, handlerOptions)).With("source", fmt.Sprintf("improveai-%s", name))
}

func getLogLevel() slog.Leveler {
	levelEnv := os.Getenv(EnvLogLevel)

	switch strings.ToLower(levelEnv) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "off":
		return LevelOff
	default:
		return slog.LevelInfo
	}
}
