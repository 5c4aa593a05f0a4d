package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// envelope is the wire format for events published to Kafka.
type envelope struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Payload   map[string]any `json:"payload"`
	EmittedAt time.Time      `json:"emitted_at"`
}

// KafkaSink publishes SDK events to a Kafka topic. Emission is
// fire-and-forget: a failed publish is logged and dropped, never surfaced to
// the repository call that triggered it.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
	log      logrus.FieldLogger
}

// NewKafkaSink creates a sink publishing to topic via the given brokers.
func NewKafkaSink(brokers []string, topic string, log logrus.FieldLogger) (*KafkaSink, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &KafkaSink{
		producer: producer,
		topic:    topic,
		log:      log.WithField("component", "kafka-sink"),
	}, nil
}

func (s *KafkaSink) Emit(ctx context.Context, name string, payload map[string]any) {
	data, err := json.Marshal(envelope{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.WithError(err).WithField("event", name).Error("failed to encode event")
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     s.topic,
		Key:       sarama.StringEncoder(name),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	if _, _, err := s.producer.SendMessage(msg); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"topic": s.topic,
			"event": name,
		}).Error("failed to publish event")
	}
}

// Close shuts down the underlying producer.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
