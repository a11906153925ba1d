package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewHandler(&buf, &Options{Level: level, NoColor: true})), &buf
}

func TestHandler_FormatsCommandLine(t *testing.T) {
	log, buf := newTestLogger(slog.LevelInfo)

	log.Info("Command completed",
		slog.String("type", "cmd"),
		slog.String("name", "hello"),
		slog.String("user_name", "alice"),
		slog.String("status", "success"),
		slog.Duration("took", 15*time.Millisecond),
		slog.String("user_id", "42"))

	out := buf.String()
	assert.Contains(t, out, "[Backlog]")
	assert.Contains(t, out, "[INFO] [CMD]")
	assert.Contains(t, out, "Command completed [hello by alice] [Status: success] (took 15ms)")
	assert.Contains(t, out, "user_id=42")
	assert.NotContains(t, out, "type=cmd")
}

func TestHandler_ErrorIncludesDetails(t *testing.T) {
	log, buf := newTestLogger(slog.LevelInfo)

	log.Error("Query failed", slog.String("type", "db"), slog.Any("error", errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "[ERROR] [DB]")
	assert.Contains(t, out, "logger_test.go")
	assert.Contains(t, out, ": boom")
}

func TestHandler_RespectsLevel(t *testing.T) {
	log, buf := newTestLogger(slog.LevelWarn)

	log.Info("hidden")
	log.Debug("hidden too")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "[WARN] [SYS] shown")
}

func TestHandler_SkipsGatewayNoise(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)

	log.Debug("sending heartbeat", slog.Int("seq", 3))
	log.Debug("locking rest bucket")
	assert.Empty(t, buf.String())
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	log, buf := newTestLogger(slog.LevelInfo)

	log.With(slog.String("shard", "0")).WithGroup("gw").With(slog.Int("seq", 9)).Info("ready")

	out := buf.String()
	assert.Contains(t, out, "shard=0")
	assert.Contains(t, out, "gw.seq=9")
}
