package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-history-service/internal/config"
	"github.com/couchcryptid/climate-history-service/internal/domain"
	"github.com/couchcryptid/climate-history-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

const keyLayout = "2006-01-02"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher exports loaded records to a Kafka topic, one message per day.
type Publisher struct {
	writer    messageWriter
	topic     string
	batchSize int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured export topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    cfg.BatchSize,
	}
	return newPublisher(w, cfg.KafkaTopic, cfg.BatchSize, logger, metrics)
}

func newPublisher(w messageWriter, topic string, batchSize int, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Publisher{writer: w, topic: topic, batchSize: batchSize, logger: logger, metrics: metrics}
}

// Publish writes records in batches. Each message is keyed by the ISO date so
// a day always lands on the same partition. A failed batch stops the export;
// batches already written stay written.
func (p *Publisher) Publish(ctx context.Context, source string, records []domain.WeatherRecord) error {
	publishedAt := domain.Now().Format(time.RFC3339)

	sent := 0
	for start := 0; start < len(records); start += p.batchSize {
		end := min(start+p.batchSize, len(records))

		msgs := make([]kafkago.Message, 0, end-start)
		for _, r := range records[start:end] {
			msg, err := serializeToMessage(r, source, publishedAt)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}

		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("publish records %d-%d: %w", start, end-1, err)
		}
		sent += len(msgs)
		p.metrics.RecordsPublished.Add(float64(len(msgs)))
	}

	p.logger.Info("records published", "topic", p.topic, "records", sent)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a WeatherRecord into a Kafka message.
func serializeToMessage(r domain.WeatherRecord, source, publishedAt string) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize weather record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.Date.Format(keyLayout)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(source)},
			{Key: "published_at", Value: []byte(publishedAt)},
		},
	}, nil
}
