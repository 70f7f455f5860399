package main

import (
	"context"
	"fmt"
	"geozone/internal/dataset"
	"geozone/internal/validate"
	"log"
	"os"
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
	ds, err := loadDataset(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	fmt.Printf("Checking dataset %s: %d towns, %d zones, %d cities\n",
		ds.Version, len(ds.Towns), len(ds.Zones), len(ds.Cities))

	report := validate.Run(context.Background(), ds)
	for _, w := range report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, issue := range report.Issues {
		fmt.Printf("issue: %s\n", issue)
	}

	if report.HasIssues() {
		fmt.Printf("\nDataset rejected: %d issues, %d warnings\n", len(report.Issues), len(report.Warnings))
		os.Exit(1)
	}
	fmt.Printf("\nDataset OK: %d warnings\n", len(report.Warnings))
}
