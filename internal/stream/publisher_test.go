package stream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type mockWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (mw *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if mw.err != nil {
		return mw.err
	}
	mw.written = append(mw.written, msgs...)
	return nil
}

func (mw *mockWriter) Close() error {
	mw.closed = true
	return nil
}

func TestPublisherEncodesEvents(t *testing.T) {
	mock := &mockWriter{}
	p := &Publisher{writer: mock}

	zoneID := uuid.MustParse("0e6fb3a1-57c4-4b8a-8f2d-c1a5390b7e64")
	matched := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	ev := ResolutionEvent{
		Latitude:   25.5140,
		Longitude:  90.2067,
		ZoneID:     &zoneID,
		Source:     "local",
		MatchedAt:  matched,
		DurationMs: 12,
	}
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(mock.written) != 1 {
		t.Fatalf("wrote %d messages; want 1", len(mock.written))
	}

	msg := mock.written[0]
	if string(msg.Key) != "25.5140:90.2067" {
		t.Fatalf("key = %q; want the rounded position", msg.Key)
	}
	if !msg.Time.Equal(matched) {
		t.Fatalf("message time = %v; want the match time", msg.Time)
	}

	var back ResolutionEvent
	if err := json.Unmarshal(msg.Value, &back); err != nil {
		t.Fatalf("event value undecodable: %v", err)
	}
	if back.ZoneID == nil || *back.ZoneID != zoneID || back.Source != "local" {
		t.Fatalf("event round trip lost fields: %+v", back)
	}
	if back.TownID != nil || back.CityID != nil {
		t.Fatalf("unset ids must stay nil: %+v", back)
	}
}

func TestPublisherPropagatesWriteErrors(t *testing.T) {
	wantErr := errors.New("broker gone")
	p := &Publisher{writer: &mockWriter{err: wantErr}}
	if err := p.Publish(context.Background(), ResolutionEvent{}); !errors.Is(err, wantErr) {
		t.Fatalf("Publish error = %v; want the writer's error", err)
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	if err := p.Publish(context.Background(), ResolutionEvent{}); err != nil {
		t.Fatalf("nil publisher Publish = %v; want nil", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nil publisher Close = %v; want nil", err)
	}
}
