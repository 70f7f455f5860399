package main

import (
	"context"
	"geozone/internal/dataset"
	"geozone/internal/env"
	"geozone/internal/refresh"
	"geozone/internal/resolver"
	"geozone/internal/storage"
	"geozone/internal/stream"
	"geozone/pkg/graceful"
	"log"
)

func main() {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	kafkaBroker := env.MustGetEnv("KAFKA_BROKER")
	kafkaTopic := env.MustGetEnv("KAFKA_TOPIC")
	kafkaGroupID := env.MustGetEnv("KAFKA_GROUP_ID")

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s",
		kafkaBroker, kafkaTopic, kafkaGroupID)

	consumer := stream.NewConsumer(kafkaTopic, kafkaGroupID, kafkaBroker)

	snapshots, err := storage.NewSnapshotStore()
	if err != nil {
		log.Fatal(err)
	}

	// Start from the bundled data so resolution works before the first
	// snapshot notification arrives.
	local, report := resolver.BuildLocal(ctx, dataset.Bundled())
	if report.HasIssues() {
		log.Fatalf("Bundled dataset failed validation: %d issues", len(report.Issues))
	}

	consumer.Start(ctx)
	iterator := refresh.NewIterator(consumer, snapshots.GetSnapshot)
	for snap := range iterator.Snapshots(ctx) {
		if report := local.Apply(ctx, snap.Dataset); !report.HasIssues() {
			log.Printf("Now serving dataset %s", snap.Dataset.Version)
		}
	}

	consumer.Stop()
	log.Println("Main method finished, application exiting.")
}
