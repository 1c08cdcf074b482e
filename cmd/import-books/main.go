package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bookhub/database"
	"bookhub/internal/config"
	"bookhub/internal/ingestion"
	"bookhub/internal/microservices/http-api/repository"
)

func main() {
	file := flag.String("file", "books.json", "path to a JSON array of books")
	workers := flag.Int("workers", 4, "concurrent inserts")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(cfg, logger, *file, *workers); err != nil {
		logger.Error("import_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, file string, workers int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	entries, err := ingestion.ReadCatalog(f)
	f.Close()
	if err != nil {
		return err
	}

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	importer := ingestion.NewImporter(repository.NewBookRepository(db), cfg.DefaultCoverURL, workers, logger)
	result := importer.Import(ctx, entries)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d catalog entries were not imported", result.Failed, len(entries))
	}
	return nil
}
