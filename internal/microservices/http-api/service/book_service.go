package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"bookhub/internal/apperror"
	"bookhub/internal/metrics"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/models"
	"bookhub/internal/microservices/http-api/repository"
	"bookhub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	featuredMessage = "Featured books fetched successfully"
	assetKeyPrefix  = "books/"
)

var (
	ErrTitleAuthorRequired = apperror.Invalid("Title and author are required.")
	ErrPDFRequired         = apperror.Invalid("PDF file is required.")
	ErrImageType           = apperror.Invalid("Only .jpg, .jpeg and .png images are allowed.")
	ErrPDFType             = apperror.Invalid("Only .pdf files are allowed for the book file.")
)

var (
	imageExtensions = map[string]string{".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png"}
	pdfExtensions   = map[string]string{".pdf": "application/pdf"}
)

type BookService interface {
	ListBooks(ctx context.Context, page PageRequest) (*dto.PaginatedBookResponse, error)
	GetBook(ctx context.Context, id string) (*dto.BookResponse, error)
	FeaturedBooks(ctx context.Context) (*dto.FeaturedBooksResponse, error)
	CreateBook(ctx context.Context, in dto.CreateBookInput) (*dto.BookResponse, error)
	DeleteBook(ctx context.Context, id string) error
}

// BookOptions carries the upload settings of the book service.
type BookOptions struct {
	DefaultCoverURL string
	MaxUploadBytes  int64
}

type bookService struct {
	bookRepo   repository.BookRepository
	reviewRepo repository.ReviewRepository
	assets     storage.AssetStore
	opts       BookOptions
	logger     *slog.Logger
}

func NewBookService(
	bookRepo repository.BookRepository,
	reviewRepo repository.ReviewRepository,
	assets storage.AssetStore,
	opts BookOptions,
	logger *slog.Logger,
) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		assets:     assets,
		opts:       opts,
		logger:     logger,
	}
}

// ListBooks returns one page of books with their reviews populated.
func (s *bookService) ListBooks(ctx context.Context, page PageRequest) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.bookRepo.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var reviewIDs []string
	for _, b := range books {
		reviewIDs = append(reviewIDs, b.ReviewIDs...)
	}
	byID := map[string]models.Review{}
	if len(reviewIDs) > 0 {
		reviews, err := s.reviewRepo.FindByIDs(ctx, reviewIDs)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		for _, r := range reviews {
			byID[r.ID] = r
		}
	}

	items := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		reviews := make([]models.Review, 0, len(books[i].ReviewIDs))
		for _, id := range books[i].ReviewIDs {
			if r, ok := byID[id]; ok {
				reviews = append(reviews, r)
			}
		}
		summary := SummarizeReviews(reviews)
		items = append(items, dto.FromModelToBookResponse(&books[i], reviews, summary.Average, summary.Count))
	}

	return &dto.PaginatedBookResponse{
		Total:      total,
		Page:       page.Page,
		TotalPages: page.TotalPages(total),
		Books:      items,
	}, nil
}

func (s *bookService) GetBook(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := s.findBook(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByIDs(ctx, book.ReviewIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	summary := SummarizeReviews(reviews)
	resp := dto.FromModelToBookResponse(book, reviews, summary.Average, summary.Count)
	return &resp, nil
}

// FeaturedBooks ranks every book by average rating and returns the top FeaturedCount.
func (s *bookService) FeaturedBooks(ctx context.Context) (*dto.FeaturedBooksResponse, error) {
	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	ratings, err := s.reviewRepo.RatingsByBook(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	rated := make([]RatedBook, len(books))
	for i, b := range books {
		rated[i] = RatedBook{Book: b, Summary: Summarize(ratings[b.ID])}
	}

	top := RankFeatured(rated, FeaturedCount)
	featured := make([]dto.BookResponse, 0, len(top))
	for i := range top {
		featured = append(featured, dto.FromModelToBookResponse(&top[i].Book, nil, top[i].Summary.Average, top[i].Summary.Count))
	}
	return &dto.FeaturedBooksResponse{Message: featuredMessage, FeaturedBooks: featured}, nil
}

// CreateBook uploads the PDF and optional cover, then stores the book.
// Uploaded assets are removed again when the insert fails.
func (s *bookService) CreateBook(ctx context.Context, in dto.CreateBookInput) (*dto.BookResponse, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if in.Title == "" || in.Author == "" {
		return nil, ErrTitleAuthorRequired
	}
	if in.PDF == nil {
		return nil, ErrPDFRequired
	}
	pdfType, err := s.checkUpload(in.PDF, pdfExtensions, ErrPDFType)
	if err != nil {
		return nil, err
	}
	var imageType string
	if in.Image != nil {
		if imageType, err = s.checkUpload(in.Image, imageExtensions, ErrImageType); err != nil {
			return nil, err
		}
	}

	var uploaded []string
	pdf, err := s.upload(ctx, in.PDF, pdfType)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	uploaded = append(uploaded, pdf.ID)

	book := &models.Book{
		Title:         in.Title,
		Author:        in.Author,
		Description:   strings.TrimSpace(in.Description),
		Category:      datatypes.JSONSlice[string](normalizeCategories(in.Category)),
		PublishedYear: in.PublishedYear,
		ImageURL:      s.opts.DefaultCoverURL,
		PDFURL:        pdf.URL,
		PDFPublicID:   pdf.ID,
	}

	if in.Image != nil {
		image, err := s.upload(ctx, in.Image, imageType)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, apperror.Internal(err)
		}
		uploaded = append(uploaded, image.ID)
		book.ImageURL = image.URL
		book.ImagePublicID = image.ID
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		s.cleanup(ctx, uploaded)
		return nil, apperror.Internal(err)
	}

	s.logger.Info("book_created", "book_id", book.ID, "title", book.Title)
	resp := dto.FromModelToBookResponse(book, nil, 0, 0)
	return &resp, nil
}

// DeleteBook removes the book's assets, then its reviews, then the book.
// The first failure aborts; earlier steps are not rolled back.
func (s *bookService) DeleteBook(ctx context.Context, id string) error {
	book, err := s.findBook(ctx, id)
	if err != nil {
		return err
	}

	if book.ImagePublicID != "" {
		if err := s.deleteAsset(ctx, book.ImagePublicID); err != nil {
			return apperror.Internal(fmt.Errorf("delete cover: %w", err))
		}
	}
	if book.PDFPublicID != "" {
		if err := s.deleteAsset(ctx, book.PDFPublicID); err != nil {
			return apperror.Internal(fmt.Errorf("delete pdf: %w", err))
		}
	}

	listed, err := s.reviewRepo.DeleteByIDs(ctx, book.ReviewIDs)
	if err != nil {
		return apperror.Internal(err)
	}
	stray, err := s.reviewRepo.DeleteByBook(ctx, book.ID)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := s.bookRepo.Delete(ctx, book.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return apperror.Internal(err)
	}

	metrics.RecordBookDeleted()
	s.logger.Info("book_deleted", "book_id", book.ID, "reviews_deleted", listed+stray)
	return nil
}

func (s *bookService) findBook(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, apperror.Internal(err)
	}
	return book, nil
}

func (s *bookService) checkUpload(f *dto.FileUpload, allowed map[string]string, typeErr error) (string, error) {
	if s.opts.MaxUploadBytes > 0 && f.Size > s.opts.MaxUploadBytes {
		return "", apperror.Invalid(fmt.Sprintf("File size should not exceed %s.", humanSize(s.opts.MaxUploadBytes)))
	}
	contentType, ok := allowed[strings.ToLower(filepath.Ext(f.Filename))]
	if !ok {
		return "", typeErr
	}
	return contentType, nil
}

func (s *bookService) upload(ctx context.Context, f *dto.FileUpload, contentType string) (storage.Asset, error) {
	r, err := f.Open()
	if err != nil {
		return storage.Asset{}, fmt.Errorf("open upload %s: %w", f.Filename, err)
	}
	defer r.Close()

	key := assetKeyPrefix + uuid.New().String() + strings.ToLower(filepath.Ext(f.Filename))
	asset, err := s.assets.Upload(ctx, key, r, f.Size, contentType)
	metrics.RecordAssetOperation("upload", err == nil)
	return asset, err
}

func (s *bookService) deleteAsset(ctx context.Context, id string) error {
	err := s.assets.Delete(ctx, id)
	metrics.RecordAssetOperation("delete", err == nil)
	return err
}

func (s *bookService) cleanup(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := s.deleteAsset(ctx, id); err != nil {
			s.logger.Warn("asset_cleanup_failed", "asset_id", id, "error", err)
		}
	}
}

// normalizeCategories splits comma separated values and drops blanks.
func normalizeCategories(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
