package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of the kafka-go writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ResolutionEvent is the audit record emitted for every resolution. Nil IDs
// mean the point fell outside the respective coverage.
type ResolutionEvent struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	ZoneID     *uuid.UUID `json:"zone_id"`
	TownID     *uuid.UUID `json:"town_id"`
	CityID     *uuid.UUID `json:"city_id"`
	Source     string     `json:"source"`
	MatchedAt  time.Time  `json:"matched_at"`
	DurationMs int64      `json:"duration_ms"`
}

// Publisher writes resolution events to the audit topic. A nil *Publisher is
// valid and publishes nothing.
type Publisher struct {
	writer Writer
}

// NewPublisher builds a publisher for the given broker and topic.
func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends one event. Failures are returned for the caller to log;
// resolution never depends on the audit stream.
func (p *Publisher) Publish(ctx context.Context, ev ResolutionEvent) error {
	if p == nil {
		return nil
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode resolution event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		// key by rounded position so one area's events stay on one partition
		Key:   []byte(fmt.Sprintf("%.4f:%.4f", ev.Latitude, ev.Longitude)),
		Value: value,
		Time:  ev.MatchedAt,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
