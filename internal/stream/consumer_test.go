package stream

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// mockReader simulates the kafka-go Reader for unit testing.
type mockReader struct {
	messages   chan kafka.Message
	commitChan chan kafka.Message
	wg         sync.WaitGroup
	isClosed   bool
}

func newMockReader() *mockReader {
	return &mockReader{
		messages:   make(chan kafka.Message, 10),
		commitChan: make(chan kafka.Message, 10),
	}
}

// startFeeding simulates notifications arriving on the topic.
func (mr *mockReader) startFeeding(count int) {
	mr.wg.Add(1)
	go func() {
		defer mr.wg.Done()
		defer close(mr.messages)

		for i := 0; i < count; i++ {
			mr.messages <- kafka.Message{
				Topic:     "zone-snapshots",
				Partition: 0,
				Offset:    int64(i),
				Value:     []byte(fmt.Sprintf("notification-%d", i)),
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func (mr *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if mr.isClosed {
		return kafka.Message{}, io.EOF
	}
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case msg, ok := <-mr.messages:
		if !ok {
			return kafka.Message{}, io.EOF
		}
		return msg, nil
	}
}

func (mr *mockReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	if mr.isClosed {
		return io.EOF
	}
	for _, msg := range msgs {
		mr.commitChan <- msg
	}
	return nil
}

func (mr *mockReader) Close() error {
	mr.isClosed = true
	close(mr.commitChan)
	return nil
}

func newTestConsumer(reader Reader) *Consumer {
	return &Consumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}
}

func TestConsumerDeliversAndCommits(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mock := newMockReader()
	consumer := newTestConsumer(mock)

	const expected = 3
	mock.startFeeding(expected)
	consumer.Start(ctx)

	received := 0
	for msg := range consumer.Messages() {
		want := fmt.Sprintf("notification-%d", received)
		if string(msg.Value) != want {
			t.Errorf("message %d value = %q; want %q", received, msg.Value, want)
		}
		if err := consumer.CommitOffset(ctx, msg); err != nil {
			t.Errorf("CommitOffset() failed: %v", err)
		}
		received++
	}
	if received != expected {
		t.Errorf("received %d messages; want %d", received, expected)
	}

	consumer.Stop()

	committed := 0
	for range mock.commitChan {
		committed++
	}
	if committed != expected {
		t.Errorf("committed %d offsets; want %d", committed, expected)
	}
}

func TestConsumerGracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mock := newMockReader()
	consumer := newTestConsumer(mock)

	// feed far more than we consume; Stop must not wait for the rest
	mock.startFeeding(100)
	consumer.Start(ctx)

	consumed := 0
	for i := 0; i < 5; i++ {
		select {
		case <-consumer.Messages():
			consumed++
		case <-ctx.Done():
			t.Fatal("context canceled unexpectedly")
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timed out waiting for a message")
		}
	}

	consumer.Stop()

	remaining := 0
	for range consumer.Messages() {
		remaining++
	}
	if remaining > 0 {
		t.Errorf("drained %d messages after Stop; want a closed, empty channel", remaining)
	}
	if consumed < 5 {
		t.Errorf("consumed %d messages before stopping; want at least 5", consumed)
	}
	if !mock.isClosed {
		t.Error("reader left open after Stop")
	}
}
