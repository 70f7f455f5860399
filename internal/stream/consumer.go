// Package stream wires the engine to Kafka: a consumer for snapshot
// notifications from the object store and a publisher for resolution audit
// events.
package stream

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Reader is the subset of the kafka-go reader the consumer needs. It keeps
// unit tests free of a live broker.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer pumps messages from a topic onto a channel until stopped. Offsets
// are committed explicitly by the caller once a message has actually been
// acted on, so a crash between read and apply replays the notification.
type Consumer struct {
	reader Reader
	// a channel to signal a graceful shutdown.
	doneChan chan struct{}
	// a wait group to ensure the read loop has exited before Close.
	wg sync.WaitGroup
	// a channel holding the messages for external consumption.
	messageChan chan kafka.Message
}

// NewConsumer creates a consumer for the given topic and group.
func NewConsumer(topic, groupID, broker string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
		// Disable auto-commit to manually control offset committing.
		CommitInterval: 0,
		// Notifications are sparse; never hold them back waiting for a batch.
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

// Messages returns the channel the read loop feeds. It closes when the
// consumer stops.
func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messageChan
}

// CommitOffset marks the message as processed.
func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.Printf("Committing offset for topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
	return c.reader.CommitMessages(ctx, msg)
}

// Start begins the message consumption loop in a separate goroutine.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messageChan)

		log.Println("Starting notification consumer loop...")

		for {
			select {
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer loop.")
				return
			case <-c.doneChan:
				log.Println("Shutdown signal received, stopping consumer loop.")
				return
			default:
				msg, err := c.reader.ReadMessage(ctx)
				if err != nil {
					if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return
					}
					log.Printf("Error reading message: %v", err)
					// backoff to prevent a tight error loop
					time.Sleep(1 * time.Second)
					continue
				}

				select {
				case c.messageChan <- msg:
					log.Printf("Message received: topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
				case <-ctx.Done():
					log.Println("Context canceled, stopping consumer before sending message.")
					return
				case <-c.doneChan:
					log.Println("Shutdown signal received, stopping consumer before sending message.")
					return
				}
			}
		}
	}()
}

// Stop shuts the consumer down and waits for the read loop to exit.
func (c *Consumer) Stop() {
	close(c.doneChan)
	c.wg.Wait()
	if err := c.reader.Close(); err != nil {
		log.Printf("Failed to close Kafka reader: %v", err)
	}
	log.Println("Notification consumer stopped gracefully.")
}
