package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bookhub/internal/apperror"
	"bookhub/internal/microservices/http-api/dto"
	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

var ErrInvalidYear = apperror.Invalid("Published year must be a number.")

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes registers book routes on an authenticated group
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.GET("/featured/get", h.Featured)
	router.GET("/:id", h.Get)

	admin := router.Group("", middleware.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.DELETE("/:id", h.Delete)
	}
}

// List returns one page of books
// GET /books?page=1&limit=10
func (h *BookHandler) List(c *gin.Context) {
	resp, err := h.bookService.ListBooks(c.Request.Context(), pageRequest(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Featured returns the top rated books
// GET /books/featured/get
func (h *BookHandler) Featured(c *gin.Context) {
	resp, err := h.bookService.FeaturedBooks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.bookService.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create stores a book from a multipart form with a pdf and an optional image
// POST /books
func (h *BookHandler) Create(c *gin.Context) {
	in := dto.CreateBookInput{
		Title:       c.PostForm("title"),
		Author:      c.PostForm("author"),
		Description: c.PostForm("description"),
		Category:    c.PostFormArray("category"),
	}

	if raw := strings.TrimSpace(c.PostForm("publishedYear")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(ErrInvalidYear)
			return
		}
		in.PublishedYear = year
	}

	if fh, err := c.FormFile("pdf"); err == nil {
		in.PDF = fileUpload(fh)
	}
	if fh, err := c.FormFile("image"); err == nil {
		in.Image = fileUpload(fh)
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book created successfully", "book": book})
}

// Delete removes a book with its files and reviews
// DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.bookService.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Book and associated reviews deleted successfully."})
}

func fileUpload(fh *multipart.FileHeader) *dto.FileUpload {
	return &dto.FileUpload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadSeekCloser, error) {
			return fh.Open()
		},
	}
}
