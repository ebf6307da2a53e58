// Package kafka publishes mood events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"maternal-companion-go/internal/config"
	"maternal-companion-go/pkg/events"
	"maternal-companion-go/pkg/log"
)

// publishTimeout bounds a single write so a slow broker cannot hold a chat reply.
const publishTimeout = 2 * time.Second

// Producer is an events.Publisher backed by a kafka.Writer.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a producer for cfg.Brokers (comma separated) and cfg.Topic.
func NewProducer(cfg config.KafkaConfig) *Producer {
	brokers := splitBrokers(cfg.Brokers)
	p := &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
	log.Infof("Kafka producer initialized, brokers: %v, topic: %s", brokers, cfg.Topic)
	return p
}

// Publish writes event keyed by session id, so one session's events stay ordered.
func (p *Producer) Publish(ctx context.Context, event events.MoodEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish mood event: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func newMessage(event events.MoodEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal mood event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
		Time:  event.Timestamp,
	}, nil
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
