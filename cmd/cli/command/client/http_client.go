package client

// http_client.go = talks to the bookhub REST API for the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookhub/internal/microservices/http-api/dto"
)

// APIError is a non-2xx response; Message comes from the {"message": ...} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg dto.MessageResponse
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Auth

func (c *HTTPClient) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserMessageResponse, error) {
	var out dto.UserMessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Books

func (c *HTTPClient) ListBooks(ctx context.Context, page, limit int) (*dto.PaginatedBookResponse, error) {
	var out dto.PaginatedBookResponse
	if err := c.do(ctx, http.MethodGet, "/books"+pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetBook(ctx context.Context, id string) (*dto.BookResponse, error) {
	var out dto.BookResponse
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FeaturedBooks(ctx context.Context) (*dto.FeaturedBooksResponse, error) {
	var out dto.FeaturedBooksResponse
	if err := c.do(ctx, http.MethodGet, "/books/featured/get", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, nil)
}

// Reviews

func (c *HTTPClient) ListReviews(ctx context.Context, bookID string, page, limit int) (*dto.PaginatedReviewResponse, error) {
	var out dto.PaginatedReviewResponse
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(bookID)+pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddReview(ctx context.Context, bookID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var out struct {
		Message string             `json:"message"`
		Review  dto.ReviewResponse `json:"review"`
	}
	if err := c.do(ctx, http.MethodPost, "/reviews/"+url.PathEscape(bookID), req, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

// Users

func (c *HTTPClient) ListUsers(ctx context.Context, page, limit int) (*dto.PaginatedUserResponse, error) {
	var out dto.PaginatedUserResponse
	if err := c.do(ctx, http.MethodGet, "/users"+pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*dto.UserProfileResponse, error) {
	var out dto.UserProfileResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
