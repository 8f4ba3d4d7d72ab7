// Package logger configures the process-wide structured logger and the
// context plumbing that carries request correlation through handlers.
package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"finbot/core/buildinfo"
)

// Options selects level, output format, and an optional log file.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json (default) or text
	Dir    string // optional directory for the log file
	File   string // optional file name inside Dir
}

var (
	initOnce   sync.Once
	shutdownMu sync.Mutex
	shutdowned bool
	logCloser  io.Closer

	// L is the base logger; component loggers derive from it.
	L *slog.Logger

	// TG logs chat transport events.
	TG *slog.Logger
	// DB logs database events.
	DB *slog.Logger
	// MIG logs migration events.
	MIG *slog.Logger
	// LEDGER logs ledger store events.
	LEDGER *slog.Logger
	// DIALOG logs conversation engine events.
	DIALOG *slog.Logger
)

// Init configures the global structured logger. It may be called only once;
// later calls are no-ops.
func Init(opts Options) error {
	var initErr error
	initOnce.Do(func() {
		out, closer := buildOutput(opts)
		logCloser = closer

		handlerOpts := &slog.HandlerOptions{Level: selectLevel(opts.Level)}
		var inner slog.Handler
		if strings.EqualFold(strings.TrimSpace(opts.Format), "text") {
			inner = slog.NewTextHandler(out, handlerOpts)
		} else {
			inner = slog.NewJSONHandler(out, handlerOpts)
		}

		L = slog.New(&contextHandler{inner: inner})
		slog.SetDefault(L)

		TG = L.With("component", "tg")
		DB = L.With("component", "db")
		MIG = L.With("component", "db.migrate")
		LEDGER = L.With("component", "ledger")
		DIALOG = L.With("component", "dialog")

		L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
			slog.String("component", "app"),
			slog.String("event", "startup"),
			slog.String("go_version", runtime.Version()),
			slog.String("build_commit", buildinfo.Commit),
			slog.String("build_time", buildinfo.Date),
		)
	})
	return initErr
}

// Shutdown closes the log file sink if one was opened.
func Shutdown() error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if shutdowned {
		return nil
	}
	shutdowned = true
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func buildOutput(opts Options) (io.Writer, io.Closer) {
	dir := strings.TrimSpace(opts.Dir)
	file := strings.TrimSpace(opts.File)
	if dir == "" || file == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("logger: failed to create log dir %s: %v", dir, err)
		return os.Stdout, nil
	}
	path := filepath.Join(dir, file)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("logger: failed to open log file %s: %v", path, err)
		return os.Stdout, nil
	}
	return io.MultiWriter(os.Stdout, f), f
}

func selectLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler enriches records with correlation attributes carried in ctx.
type contextHandler struct {
	inner slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid := RIDFrom(ctx); rid != "" {
		r.AddAttrs(slog.String("rid", CompactRID(rid)))
	}
	if uid := UserIDFrom(ctx); uid != 0 {
		r.AddAttrs(slog.Int64("user_id", uid))
	}
	if cid := ChatIDFrom(ctx); cid != 0 {
		r.AddAttrs(slog.Int64("chat_id", cid))
	}
	if updateID := UpdateIDFrom(ctx); updateID != 0 {
		r.AddAttrs(slog.Int("update_id", updateID))
	}
	if handler := HandlerFrom(ctx); handler != "" {
		r.AddAttrs(slog.String("handler", handler))
	}
	return h.inner.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name)}
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	if L == nil {
		return nil
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return L
	}
	return L.With("component", trimmed)
}

// Event logs with component scope resolved automatically.
func Event(ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) {
	logg := Component(component)
	if logg == nil {
		return
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, level, event, attrs...)
}

// Debug logs a debug-level event for the given component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelDebug, event, attrs...)
}

// Info logs an info-level event for the given component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelInfo, event, attrs...)
}

// Warn logs a warn-level event for the given component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelWarn, event, attrs...)
}

// Error logs an error-level event for the given component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelError, event, attrs...)
}
