package main

import (
	"context"
	"fmt"
	"geozone/internal/dataset"
	"geozone/internal/env"
	"geozone/internal/storage"
	"geozone/internal/validate"
	"log"
	"os"
	"time"
)

// loadDataset reads a snapshot file, falling back to the bundled data when
// no path is given.
func loadDataset(args []string) (*dataset.Dataset, error) {
	if len(args) == 0 {
		return dataset.Bundled(), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.Decode(f)
}

func main() {
	env.LoadEnv()
	ctx := context.Background()
	start := time.Now()

	ds, err := loadDataset(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	report := validate.Run(ctx, ds)
	for _, w := range report.Warnings {
		log.Printf("Dataset warning: %s", w)
	}
	if report.HasIssues() {
		for _, issue := range report.Issues {
			log.Printf("Dataset issue: %s", issue)
		}
		log.Fatalf("Refusing to publish dataset %s: %d issues", ds.Version, len(report.Issues))
	}

	bucketName := env.MustGetEnv("ZONE_BUCKET_NAME")
	snapshots, err := storage.NewSnapshotStore()
	if err != nil {
		log.Fatal(err)
	}
	if err := snapshots.EnsureBucket(ctx, bucketName, ""); err != nil {
		log.Fatal(err)
	}
	if err := snapshots.PutSnapshot(ctx, bucketName, ds); err != nil {
		log.Fatalf("Failed to publish snapshot: %v", err)
	}

	fmt.Printf("Published dataset %s to bucket %s, took %s\n", ds.Version, bucketName, time.Since(start))
}
