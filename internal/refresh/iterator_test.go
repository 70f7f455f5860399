package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"geozone/internal/dataset"

	"github.com/segmentio/kafka-go"
)

type mockSource struct {
	messages chan kafka.Message

	mu      sync.Mutex
	commits []kafka.Message
}

func newMockSource(values ...[]byte) *mockSource {
	m := &mockSource{messages: make(chan kafka.Message, len(values))}
	for i, v := range values {
		m.messages <- kafka.Message{Offset: int64(i), Value: v}
	}
	close(m.messages)
	return m
}

func (m *mockSource) Messages() <-chan kafka.Message { return m.messages }

func (m *mockSource) CommitOffset(_ context.Context, msg kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits = append(m.commits, msg)
	return nil
}

func (m *mockSource) committed() []kafka.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]kafka.Message(nil), m.commits...)
}

func notificationValue(bucket, key string) []byte {
	return []byte(fmt.Sprintf(`{"Records":[{"s3":{"bucket":{"name":%q},"object":{"key":%q}}}]}`, bucket, key))
}

func collect(ch <-chan *Snapshot) []*Snapshot {
	var out []*Snapshot
	for snap := range ch {
		out = append(out, snap)
	}
	return out
}

func TestSnapshotsLoadsAndCommits(t *testing.T) {
	source := newMockSource(notificationValue("zone-data", "zones%2Fv2026.06.1.json"))

	var gotBucket, gotKey string
	loader := func(_ context.Context, bucket, key string) (*dataset.Dataset, error) {
		gotBucket, gotKey = bucket, key
		return dataset.Bundled(), nil
	}

	snaps := collect(NewIterator(source, loader).Snapshots(context.Background()))

	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots; want 1", len(snaps))
	}
	if gotBucket != "zone-data" {
		t.Errorf("loader bucket = %q; want %q", gotBucket, "zone-data")
	}
	if gotKey != "zones/v2026.06.1.json" {
		t.Errorf("loader key = %q; want unescaped %q", gotKey, "zones/v2026.06.1.json")
	}
	if snaps[0].Dataset.Version != dataset.Version {
		t.Errorf("snapshot version = %q; want %q", snaps[0].Dataset.Version, dataset.Version)
	}
	if got := snaps[0].Event.Records[0].S3.Bucket.Name; got != "zone-data" {
		t.Errorf("snapshot event bucket = %q; want %q", got, "zone-data")
	}

	commits := source.committed()
	if len(commits) != 1 {
		t.Fatalf("got %d commits; want 1", len(commits))
	}
	if commits[0].Offset != 0 {
		t.Errorf("committed offset = %d; want 0", commits[0].Offset)
	}
}

func TestSnapshotsSkipsBadMessages(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
	}{
		{"garbage payload", []byte("not json at all")},
		{"no records", []byte(`{"Records":[]}`)},
		{"bad key escape", notificationValue("zone-data", "zones%zzlatest.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newMockSource(tt.value)
			loader := func(_ context.Context, _, _ string) (*dataset.Dataset, error) {
				t.Error("loader called for a message that should have been skipped")
				return nil, nil
			}

			snaps := collect(NewIterator(source, loader).Snapshots(context.Background()))

			if len(snaps) != 0 {
				t.Errorf("got %d snapshots; want 0", len(snaps))
			}
			if commits := source.committed(); len(commits) != 0 {
				t.Errorf("got %d commits; want 0, bad messages must replay on restart", len(commits))
			}
		})
	}
}

func TestSnapshotsSkipsFailedLoads(t *testing.T) {
	source := newMockSource(
		notificationValue("zone-data", "zones/broken.json"),
		notificationValue("zone-data", "zones/latest.json"),
	)
	loader := func(_ context.Context, _, key string) (*dataset.Dataset, error) {
		if key == "zones/broken.json" {
			return nil, errors.New("object not found")
		}
		return dataset.Bundled(), nil
	}

	snaps := collect(NewIterator(source, loader).Snapshots(context.Background()))

	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots; want 1, failed load must be skipped", len(snaps))
	}
	commits := source.committed()
	if len(commits) != 1 {
		t.Fatalf("got %d commits; want 1", len(commits))
	}
	if commits[0].Offset != 1 {
		t.Errorf("committed offset = %d; want 1, failed load must not commit", commits[0].Offset)
	}
}

func TestSnapshotsStopsOnContextCancel(t *testing.T) {
	source := &mockSource{messages: make(chan kafka.Message, 2)}
	source.messages <- kafka.Message{Offset: 0, Value: notificationValue("zone-data", "zones/latest.json")}
	source.messages <- kafka.Message{Offset: 1, Value: notificationValue("zone-data", "zones/latest.json")}
	close(source.messages)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := func(_ context.Context, _, _ string) (*dataset.Dataset, error) {
		return dataset.Bundled(), nil
	}

	snaps := NewIterator(source, loader).Snapshots(ctx)
	if _, ok := <-snaps; ok {
		t.Fatal("snapshot delivered after context cancellation")
	}
	if commits := source.committed(); len(commits) != 0 {
		t.Errorf("got %d commits; want 0 after cancellation", len(commits))
	}
}
