// Package refresh turns bucket notifications into validated dataset
// snapshots ready to swap into the registry. It consumes storage events
// from a message source (Kafka via internal/stream) and loads the
// referenced snapshot objects through a pluggable LoaderFunc.
package refresh

import (
	"context"
	"encoding/json"
	"log"
	"net/url"

	"geozone/internal/dataset"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageSource is the contract for consuming notification messages.
// Implementations own the lifecycle of the underlying consumer; callers
// start and stop it outside the iterator.
type MessageSource interface {
	// Messages returns a receive-only channel of messages, closed by the
	// implementation when the consumer stops.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been fully processed.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes one snapshot object from the object store.
// storage.SnapshotStore.GetSnapshot satisfies it.
type LoaderFunc func(ctx context.Context, bucket, key string) (*dataset.Dataset, error)

// Snapshot pairs a loaded dataset with the notification that announced it.
type Snapshot struct {
	Dataset *dataset.Dataset
	Event   notification.Info
}

// Iterator streams snapshots out of arriving bucket notifications.
type Iterator struct {
	source MessageSource
	loader LoaderFunc
}

// NewIterator constructs an Iterator over the given source and loader.
func NewIterator(source MessageSource, loader LoaderFunc) *Iterator {
	return &Iterator{source: source, loader: loader}
}

// Snapshots starts a goroutine that decodes each message as a bucket
// notification, loads the referenced object and emits it. Undecodable
// notifications and failed loads are logged and skipped without a commit,
// so they replay on restart. The returned channel closes when the source's
// Messages channel closes.
func (it *Iterator) Snapshots(ctx context.Context) <-chan *Snapshot {
	out := make(chan *Snapshot)
	go func() {
		defer close(out)

		for msg := range it.source.Messages() {
			var event notification.Info
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("Error unmarshalling notification: %v", err)
				continue
			}
			if len(event.Records) == 0 {
				log.Printf("Notification without records at offset %d, skipping", msg.Offset)
				continue
			}
			s3 := event.Records[0].S3
			objectKey, err := url.QueryUnescape(s3.Object.Key)
			if err != nil {
				log.Printf("Error decoding object key %q: %v", s3.Object.Key, err)
				continue
			}
			ds, err := it.loader(ctx, s3.Bucket.Name, objectKey)
			if err != nil {
				log.Printf("Error loading snapshot %s/%s: %v", s3.Bucket.Name, objectKey, err)
				continue
			}

			select {
			case out <- &Snapshot{Dataset: ds, Event: event}:
			case <-ctx.Done():
				return
			}

			if err := it.source.CommitOffset(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v", err)
			}
		}
	}()
	return out
}
