package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"pantry/internal/model"
)

// main writes a gzipped product file for cmd/import. Expiration dates are
// relative to today so the file always contains expired, expiring and fresh
// products.
func main() {
	dataDir := "data/products"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	day := 24 * time.Hour

	rows := [][]string{
		{"egg", today.Add(-3 * day).Format(model.ExpDateLayout), "free range"}, // expired
		{"egg", today.Add(2 * day).Format(model.ExpDateLayout)},                // expiring
		{"egg", today.Add(12 * day).Format(model.ExpDateLayout)},
		{"milk", today.Add(day).Format(model.ExpDateLayout), "semi-skimmed"}, // expiring
		{"flour", today.Add(180 * day).Format(model.ExpDateLayout)},
		{"butter", today.Add(20 * day).Format(model.ExpDateLayout)},
		{"sugar", today.Add(365 * day).Format(model.ExpDateLayout)},
		{"Cheese", today.Add(-1 * day).Format(model.ExpDateLayout)}, // expired, stored lowercase
	}

	filePath := filepath.Join(dataDir, "products.csv.gz")
	if err := createProductFile(filePath, rows); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(rows))
	fmt.Printf("\nImport with:\n  go run ./cmd/import --file %s\n", filePath)
}

func createProductFile(filePath string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	writer := csv.NewWriter(gzipWriter)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	return nil
}
