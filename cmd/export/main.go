// Command export dumps all stored application sessions to a CSV or Excel
// file for offline reporting.
// Usage: go run ./cmd/export [-format csv|xlsx] [-out FILE]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"awaaz/internal/config"
	"awaaz/internal/csvexport"
	"awaaz/internal/domain"
	"awaaz/internal/repository/postgres"
	"awaaz/internal/xlsxexport"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	format := flag.String("format", "csv", "output format: csv or xlsx")
	out := flag.String("out", "", "output file (default loan_applications_<date>.<format>)")
	flag.Parse()

	if *format != "csv" && *format != "xlsx" {
		return fmt.Errorf("unknown format %q: must be csv or xlsx", *format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := postgres.NewSessionRepo(db)
	ctx := context.Background()

	var sessions []domain.FormSession
	offset := 0
	for {
		page, total, err := repo.List(ctx, offset, batchSize)
		if err != nil {
			return fmt.Errorf("listing sessions at offset %d: %w", offset, err)
		}
		sessions = append(sessions, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
	}

	path := *out
	if path == "" {
		path = csvexport.BuildFilename("loan_applications", *format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch *format {
	case "csv":
		if _, err := f.Write(csvexport.BOM); err != nil {
			return fmt.Errorf("writing BOM: %w", err)
		}
		w := csvexport.NewWriter(f)
		if err := w.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := w.WriteSessions(sessions); err != nil {
			return fmt.Errorf("writing rows: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flushing csv: %w", err)
		}
	case "xlsx":
		if err := xlsxexport.Write(f, sessions); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
	}

	log.Printf("exported %d sessions to %s", len(sessions), path)
	return nil
}
