package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sink receives fire-and-forget notifications of named events. Delivery is
// not guaranteed and no return value is consulted; repositories emit only
// after a state-changing call has succeeded.
type Sink interface {
	Emit(ctx context.Context, name string, payload map[string]any)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(ctx context.Context, name string, payload map[string]any) {}

// LoggerSink writes events to the structured log, useful in development and
// as a default when no broker is configured.
type LoggerSink struct {
	log logrus.FieldLogger
}

// NewLoggerSink creates a sink that logs every event at debug level.
func NewLoggerSink(log logrus.FieldLogger) *LoggerSink {
	return &LoggerSink{log: log}
}

func (s *LoggerSink) Emit(ctx context.Context, name string, payload map[string]any) {
	s.log.WithFields(logrus.Fields{
		"event":   name,
		"payload": payload,
	}).Debug("event emitted")
}
