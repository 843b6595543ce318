package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"pickup/internal/models"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"WARN", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(tt.level, io.Discard)
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.muted))
		})
	}
}

func TestActivityLogger(t *testing.T) {
	var buf bytes.Buffer
	handle := activityLogger(newLogger("info", &buf))

	err := handle(amqp.Delivery{Body: []byte(`{"type":"event.created","eventId":"e1","userId":"u1","occurredAt":"2025-01-01T18:00:00Z"}`)})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "type="+models.ActivityEventCreated)
	assert.Contains(t, buf.String(), "event_id=e1")

	assert.Error(t, handle(amqp.Delivery{Body: []byte("not json")}))
}
