package logger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pak/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		level slog.Level
		want  string
	}{
		{level: slog.LevelInfo, want: "msg\n"},
		{level: slog.LevelWarn, want: "! msg\n"},
		{level: slog.LevelError, want: "✗ msg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			h := logger.NewPrettyHandler(&buf, nil)
			err := h.Handle(context.Background(), slog.NewRecord(time.Now(), tt.level, "msg", 0))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_AttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	h := logger.NewPrettyHandler(&buf, nil).
		WithAttrs([]slog.Attr{slog.String("id", "hello")}).
		WithGroup("fetch")

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "done", 0)
	r.AddAttrs(slog.Int("bytes", 42), slog.Group("span", slog.String("name", "install hello")))
	assert.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "done id=hello fetch.bytes=42 fetch.span.name=\"install hello\"\n", buf.String())
}

func TestPrettyHandler_QuotesAndSkipsEmpty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	h := logger.NewPrettyHandler(&buf, nil).WithGroup("")

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "retry", 0)
	r.AddAttrs(slog.String("source", ""), slog.Attr{}, slog.String("path", "a=b"))
	assert.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "! retry source=\"\" path=\"a=b\"\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	level := &slog.LevelVar{}
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: level})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	level.Set(slog.LevelDebug)
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrettyHandler_ReturnsWriteError(t *testing.T) {
	h := logger.NewPrettyHandler(failingWriter{}, nil)
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.Error(t, err)
}
