package events

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoggerSink_EmitLogsAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	sink := NewLoggerSink(logger)
	sink.Emit(context.Background(), "user.created", map[string]any{"user_id": "user_1"})

	if len(hook.Entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(hook.Entries))
	}
	entry := hook.LastEntry()
	if entry.Level != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", entry.Level)
	}
	if entry.Data["event"] != "user.created" {
		t.Errorf("expected event field, got %v", entry.Data)
	}
}

func TestNopSink_Discards(t *testing.T) {
	// Just exercises the no-op path for coverage; nothing observable.
	NopSink{}.Emit(context.Background(), "order.created", nil)
}
