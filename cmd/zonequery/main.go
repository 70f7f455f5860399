package main

import (
	"context"
	"fmt"
	"geozone/geo"
	"geozone/internal/cache"
	"geozone/internal/dataset"
	"geozone/internal/env"
	"geozone/internal/resolver"
	"geozone/internal/store"
	"geozone/internal/stream"
	"log"
	"os"
	"strconv"
)

func main() {
	env.LoadEnv()
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: zonequery <latitude> <longitude>")
		os.Exit(2)
	}
	lat, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		log.Fatalf("Invalid latitude %q: %v", os.Args[1], err)
	}
	lon, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		log.Fatalf("Invalid longitude %q: %v", os.Args[2], err)
	}
	point, err := geo.NewPoint(lat, lon)
	if err != nil {
		log.Fatalf("Invalid position: %v", err)
	}

	ctx := context.Background()
	local, report := resolver.BuildLocal(ctx, dataset.Bundled())
	if report.HasIssues() {
		log.Fatalf("Bundled dataset failed validation: %v", report.Issues)
	}

	events := eventsFromEnv()
	defer events.Close()

	orch := resolver.New(resolver.Config{
		Remote:  remoteFromEnv(ctx),
		Local:   local,
		Cache:   cache.NewFromEnv(),
		Events:  events,
		Timeout: env.GetDuration("ZONE_REMOTE_TIMEOUT", 0),
	})

	res, err := orch.Resolve(ctx, point)
	if err != nil {
		log.Fatalf("Resolution failed: %v", err)
	}

	if res.City != nil {
		fmt.Printf("City: %s, %s\n", res.City.Name, res.City.State)
	} else {
		fmt.Println("City: outside known city boundaries")
	}
	if res.Zone != nil {
		fmt.Printf("Zone: %s (zone %d)\n", res.Zone.Name, res.Zone.ZoneNumber)
		if town, ok := local.TownByID(res.Zone.TownID); ok {
			fmt.Printf("Town: %s, %s (delivery fee %.0f, min order %.0f)\n",
				town.Name, town.State, town.DeliveryFee, town.MinOrderAmount)
		}
		fmt.Printf("Source: %s\n", res.Source)
		return
	}

	fmt.Println("No delivery zone covers this point.")
	if zone, km, ok := orch.NearestZone(ctx, point); ok {
		fmt.Printf("Nearest zone: %s, %.1f km away\n", zone.Name, km)
	}
}

// remoteFromEnv picks the backend transport: direct Postgres when
// SUPABASE_DB_URL is set, PostgREST when SUPABASE_URL is set, none
// otherwise. A backend that fails to initialize downgrades to local-only
// resolution instead of aborting the query.
func remoteFromEnv(ctx context.Context) resolver.RemoteStore {
	if os.Getenv("SUPABASE_DB_URL") != "" {
		sb, err := store.NewSupabase(ctx)
		if err != nil {
			log.Printf("Failed to connect to Supabase Postgres, continuing with local data: %v", err)
			return nil
		}
		return sb
	}
	if os.Getenv("SUPABASE_URL") != "" {
		rest, err := store.NewRESTClientFromEnv()
		if err != nil {
			log.Printf("Failed to configure Supabase REST client, continuing with local data: %v", err)
			return nil
		}
		return rest
	}
	return nil
}

// eventsFromEnv builds the resolution-event publisher when KAFKA_BROKER and
// KAFKA_EVENTS_TOPIC are both set. A nil publisher publishes nothing.
func eventsFromEnv() *stream.Publisher {
	broker, topic := os.Getenv("KAFKA_BROKER"), os.Getenv("KAFKA_EVENTS_TOPIC")
	if broker == "" || topic == "" {
		return nil
	}
	return stream.NewPublisher(broker, topic)
}
