package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/books/books/a%20b.pdf", JoinURL("http://minio:9000/", "books", "books/a b.pdf"))
	assert.Equal(t, "https://cdn.example.com/b/k", JoinURL("https://cdn.example.com", "b", "k"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("http://assets.local")

	asset, err := s.Upload(ctx, "books/cover.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "books/cover.png", asset.ID)
	assert.Equal(t, "http://assets.local/memory/books/cover.png", asset.URL)
	assert.True(t, s.Has("books/cover.png"))
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, asset.ID))
	assert.False(t, s.Has("books/cover.png"))
	assert.NoError(t, s.Delete(ctx, asset.ID))
}
