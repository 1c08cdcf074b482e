// Package ingestion bulk-loads a JSON book catalog into the database.
package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"

	"gorm.io/datatypes"
)

// CatalogEntry is one book in an import file. Files are already hosted, so
// entries carry URLs instead of uploads.
type CatalogEntry struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Category      []string `json:"category"`
	PublishedYear int      `json:"publishedYear"`
	ImageURL      string   `json:"imageUrl"`
	PDFURL        string   `json:"pdfUrl"`
}

func (e CatalogEntry) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(e.Author) == "":
		return errors.New("author is required")
	case strings.TrimSpace(e.PDFURL) == "":
		return errors.New("pdfUrl is required")
	}
	return nil
}

// ReadCatalog decodes a JSON array of entries.
func ReadCatalog(r io.Reader) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return entries, nil
}

type ImportResult struct {
	Imported int64
	Skipped  int64
	Failed   int64
}

// Importer writes catalog entries through the book repository.
type Importer struct {
	books        repository.BookRepository
	defaultCover string
	workers      int
	logger       *slog.Logger
}

func NewImporter(books repository.BookRepository, defaultCover string, workers int, logger *slog.Logger) *Importer {
	return &Importer{books: books, defaultCover: defaultCover, workers: workers, logger: logger}
}

// Import inserts every valid entry concurrently. Invalid entries are skipped,
// insert errors are counted and logged. Entries not inserted before ctx is
// cancelled count as failed, so the three counts always add up to len(entries).
func (im *Importer) Import(ctx context.Context, entries []CatalogEntry) ImportResult {
	var imported, skipped, failed atomic.Int64

	pool := NewWorkerPool(ctx, im.workers, im.logger)
	pool.Start()

	for i, entry := range entries {
		if err := entry.validate(); err != nil {
			im.logger.Warn("catalog_entry_skipped", "index", i, "reason", err.Error())
			skipped.Add(1)
			continue
		}
		book := im.toBook(entry)
		ok := pool.Submit(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				failed.Add(1)
				return fmt.Errorf("import %q: %w", book.Title, err)
			}
			if err := im.books.Create(ctx, book); err != nil {
				failed.Add(1)
				return fmt.Errorf("import %q: %w", book.Title, err)
			}
			imported.Add(1)
			return nil
		})
		if !ok {
			failed.Add(1)
		}
	}
	pool.Wait()

	result := ImportResult{Imported: imported.Load(), Skipped: skipped.Load(), Failed: failed.Load()}
	im.logger.Info("catalog_imported", "imported", result.Imported, "skipped", result.Skipped, "failed", result.Failed)
	return result
}

func (im *Importer) toBook(e CatalogEntry) *models.Book {
	cover := strings.TrimSpace(e.ImageURL)
	if cover == "" {
		cover = im.defaultCover
	}
	category := make([]string, 0, len(e.Category))
	for _, c := range e.Category {
		if c = strings.TrimSpace(c); c != "" {
			category = append(category, c)
		}
	}
	return &models.Book{
		Title:         strings.TrimSpace(e.Title),
		Author:        strings.TrimSpace(e.Author),
		Description:   strings.TrimSpace(e.Description),
		Category:      datatypes.JSONSlice[string](category),
		PublishedYear: e.PublishedYear,
		ImageURL:      cover,
		PDFURL:        strings.TrimSpace(e.PDFURL),
	}
}
