package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhub/internal/microservices/http-api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooksSendsTokenAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(dto.PaginatedBookResponse{Total: 1, Page: 2, TotalPages: 1, Books: []dto.BookResponse{{ID: "b1", Title: "Dune"}}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("jwt")
	resp, err := c.ListBooks(context.Background(), 2, 0)

	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Dune", resp.Books[0].Title)
}

func TestErrorMessageIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"You have already reviewed this book."}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).AddReview(context.Background(), "b1", &dto.CreateReviewRequest{Rating: 5, Comment: "again"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "You have already reviewed this book.", apiErr.Message)
}

func TestPageQuery(t *testing.T) {
	assert.Equal(t, "", pageQuery(0, 0))
	assert.Equal(t, "?limit=5&page=3", pageQuery(3, 5))
}
