// Package logging configures the process-wide structured logger.
package logging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mwiater/frameworkstats/internal/util"
)

const maxPayloadRunes = 2000

var (
	mu      sync.Mutex
	logFile *os.File
	console io.Writer = os.Stdout
)

// Init installs the default slog logger. Records go to the console through a
// tint handler and, when logPath is set, to the file as plain text.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		tint.NewHandler(console, &tint.Options{Level: level, TimeFormat: time.Kitchen}),
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		handlers = append(handlers, slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	}

	slog.SetDefault(slog.New(fanout(handlers)))
	return nil
}

// Close flushes and releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent records an informational message.
func LogEvent(format string, args ...any) {
	slog.Info(fmt.Sprintf(format, args...))
}

// LogWarn records a recoverable problem.
func LogWarn(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...))
}

// LogDebug records a message only visible with --debug.
func LogDebug(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}

// LogRequest records a payload exchanged with an external model service.
func LogRequest(direction, provider, model string, payload any) {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	slog.Debug("["+dir+"]",
		"provider", valueOr(provider, "unknown"),
		"model", valueOr(model, "unknown"),
		"payload", util.TruncateRunes(formatPayload(payload), maxPayloadRunes),
	)
}

func valueOr(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// fanout delivers every record to each handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
