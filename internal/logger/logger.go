package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// LevelSuccess sits between INFO and WARN and marks a completed stage.
const LevelSuccess = slog.LevelInfo + 2

const timeFormat = "2006-01-02 15:04:05"

const (
	FormatPlain = "plain"
	FormatTint  = "tint"
)

// New returns a logger writing to w. FormatTint uses a colored handler,
// anything else the plain "[time] [LEVEL] message" handler.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	if format == FormatTint {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  timeFormat,
			ReplaceAttr: replaceLevel,
		}))
	}
	return slog.New(NewHandler(w, level))
}

// replaceLevel prints tint levels by name, so SUCCESS is not shown as INF+2.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok {
		return slog.String(slog.LevelKey, LevelName(level))
	}
	return a
}

// Success logs msg at LevelSuccess.
func Success(ctx context.Context, l *slog.Logger, msg string, args ...any) {
	l.Log(ctx, LevelSuccess, msg, args...)
}

// LevelName renders a level the way the plain handler prints it.
func LevelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < LevelSuccess:
		return "INFO"
	case level < slog.LevelWarn:
		return "SUCCESS"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// Handler writes one line per record:
//
//	[2006-01-02 15:04:05] [LEVEL] message key=value ...
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", ts.Format(timeFormat), LevelName(r.Level), r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\n\"=") {
		val = fmt.Sprintf("%q", val)
	}
	fmt.Fprintf(b, " %s=%s", key, val)
}
