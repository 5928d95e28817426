package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"

	"elevsim/src/config"
)

// Setup builds the process logger: a compact text handler on stdout (and
// cfg.LogFile when set) fanned out to the extra handlers, typically the
// event log. The returned closer releases the log file.
func Setup(cfg config.Config, out io.Writer, extra ...slog.Handler) (*slog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	writers := []io.Writer{out}

	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, logFile)
		closer = logFile
	}

	level := ParseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:       level,
		AddSource:   level <= slog.LevelDebug,
		ReplaceAttr: compactAttrs,
	})

	handlers := append([]slog.Handler{textHandler}, extra...)
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// ParseLevel accepts slog level names; DEBUG=1/true in the environment
// forces debug.
func ParseLevel(name string) slog.Level {
	if isDebugEnv() {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func isDebugEnv() bool {
	debugEnv := os.Getenv("DEBUG")
	if debugEnv == "" {
		return false
	}
	debugValue, err := strconv.ParseBool(debugEnv)
	if err != nil {
		return debugEnv == "1"
	}
	return debugValue
}

// compactAttrs formats time as HH:MM:SS and source as file:line.
func compactAttrs(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format("15:04:05"))
		}
	}
	if a.Key == slog.SourceKey {
		if source, ok := a.Value.Any().(*slog.Source); ok {
			file := source.File
			if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
				file = file[lastSlash+1:]
			}
			a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
		}
	}
	return a
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
