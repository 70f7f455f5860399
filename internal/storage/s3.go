// Package storage persists dataset snapshots in S3-compatible object
// storage. Snapshots are written under versioned keys that are never
// overwritten; a rolling latest pointer tracks the newest one.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"geozone/internal/dataset"
	"geozone/internal/keys"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SnapshotStore is a client for the snapshot bucket.
type SnapshotStore struct {
	client *minio.Client
}

// NewSnapshotStore connects to the MinIO server using credentials from
// environment variables.
func NewSnapshotStore() (*SnapshotStore, error) {
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if minioEndpoint == "" || minioAccessKey == "" || minioSecretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	minioClient, err := minio.New(minioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioAccessKey, minioSecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", minioEndpoint)
	return &SnapshotStore{client: minioClient}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *SnapshotStore) EnsureBucket(ctx context.Context, bucketName string, location string) error {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %v", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return err
		}
		log.Printf("Created bucket '%s'", bucketName)
	}
	return nil
}

// PutSnapshot stores the dataset under its versioned key and rewrites the
// latest pointer. Versioned keys are immutable: when the key already exists
// the publish is a no-op apart from the pointer update, so republishing a
// version cannot silently change history.
func (s *SnapshotStore) PutSnapshot(ctx context.Context, bucketName string, ds *dataset.Dataset) error {
	var buf bytes.Buffer
	if err := ds.Encode(&buf); err != nil {
		return err
	}

	objectKey := keys.Dataset(ds.Version)
	_, err := s.client.StatObject(ctx, bucketName, objectKey, minio.StatObjectOptions{})
	switch {
	case err == nil:
		log.Printf("Snapshot '%s' already exists in bucket '%s'. Ignoring write operation.", objectKey, bucketName)
	case minio.ToErrorResponse(err).Code != "NoSuchKey":
		return fmt.Errorf("failed to check for existing snapshot: %v", err)
	default:
		if err := s.put(ctx, bucketName, objectKey, buf.Bytes()); err != nil {
			return err
		}
		log.Printf("Successfully stored snapshot '%s' in bucket '%s' with key '%s'", ds.Version, bucketName, objectKey)
	}

	// the latest pointer always moves
	if err := s.put(ctx, bucketName, keys.Latest, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to update latest pointer: %w", err)
	}
	return nil
}

func (s *SnapshotStore) put(ctx context.Context, bucketName, objectKey string, data []byte) error {
	_, err := s.client.PutObject(
		ctx,
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object '%s': %v", objectKey, err)
	}
	return nil
}

// GetSnapshot retrieves and decodes one snapshot object.
func (s *SnapshotStore) GetSnapshot(ctx context.Context, bucketName string, objectKey string) (*dataset.Dataset, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %v", err)
	}
	defer object.Close()

	ds, err := dataset.Decode(object)
	if err != nil {
		return nil, err
	}
	log.Printf("Successfully retrieved snapshot '%s' from bucket '%s' with key '%s'", ds.Version, bucketName, objectKey)
	return ds, nil
}

// GetLatest retrieves the snapshot the latest pointer names.
func (s *SnapshotStore) GetLatest(ctx context.Context, bucketName string) (*dataset.Dataset, error) {
	return s.GetSnapshot(ctx, bucketName, keys.Latest)
}
