package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeComponent LogType = "BTN"
	TypeDB        LogType = "DB"
	TypeSystem    LogType = "SYS"
	TypeError     LogType = "ERR"
)

type Options struct {
	Level   slog.Leveler
	NoColor bool
}

// CustomHandler writes one coloured line per record. Gateway and rest
// bucket chatter from disgo is dropped.
type CustomHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	opts  Options
	attrs []slog.Attr
	group string
}

func NewHandler(w io.Writer, opts *Options) *CustomHandler {
	h := &CustomHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return &c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	attrs := recordAttrs(&r)
	logType := getLogType(attrs)

	message := r.Message
	if r.Level >= slog.LevelError {
		if loc := getErrorLocation(attrs, r.PC); loc != "" {
			message = fmt.Sprintf("%s (%s)", message, loc)
		}
		if details := attrValue(attrs, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}

	if name, user := attrValue(attrs, "name"), attrValue(attrs, "user_name"); name != "" && user != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, name, user)
	}
	if status := attrValue(attrs, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took := attrValue(attrs, "took"); took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}

	var sb strings.Builder
	for _, a := range h.attrs {
		if !isInternalAttr(a.Key) {
			fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
		}
	}
	for _, a := range attrs {
		if !isInternalAttr(a.Key) && a.Key != "error" {
			fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
		}
	}

	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var line string
	if h.opts.NoColor {
		line = fmt.Sprintf("[Backlog] [%s] [%s] [%s] %s%s\n",
			timestamp.Format("15:04:05"), levelText, logType, message, sb.String())
	} else {
		line = fmt.Sprintf("%s[Backlog] [%s] [%s%s%s] [%s%s%s] %s%s%s\n",
			colorWhite, timestamp.Format("15:04:05"),
			levelColor, levelText, colorWhite,
			colorCyan, logType, colorWhite,
			message, sb.String(), colorReset)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func shouldSkipLog(r *slog.Record) bool {
	skippedMessages := []string{
		"locking buckets",
		"unlocking buckets",
		"gateway event",
		"cleaning up bucket",
		"cleaned up rate limit buckets",
		"binary message received",
		"received gateway message",
		"locking gateway rate limiter",
		"unlocking gateway rate limiter",
		"sending gateway command",
		"new request",
		"new response",
		"locking rest bucket",
		"unlocking rest bucket",
		"rate limit response headers",
		"sending heartbeat",
	}

	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func recordAttrs(r *slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

func attrValue(attrs []slog.Attr, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value.String()
		}
	}
	return ""
}

func getLogType(attrs []slog.Attr) LogType {
	switch attrValue(attrs, "type") {
	case "cmd":
		return TypeCommand
	case "component":
		return TypeComponent
	case "db":
		return TypeDB
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func getErrorLocation(attrs []slog.Attr, pc uintptr) string {
	if loc := attrValue(attrs, "error_location"); loc != "" {
		return loc
	}
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "name", "user_name", "status", "took", "error_location":
		return true
	}
	return false
}
