package service

import (
	"math"
	"testing"

	"bookhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, RatingSummary{Average: 4, Count: 3}, Summarize([]int{5, 3, 4}))
	assert.Equal(t, RatingSummary{}, Summarize(nil))
	assert.InDelta(t, 4.5, Summarize([]int{4, 5}).Average, 1e-9)

	reviews := []models.Review{{Rating: 1}, {Rating: 2}}
	assert.Equal(t, RatingSummary{Average: 1.5, Count: 2}, SummarizeReviews(reviews))
}

func rated(id string, avg float64, year int) RatedBook {
	return RatedBook{Book: models.Book{ID: id, PublishedYear: year}, Summary: RatingSummary{Average: avg, Count: 1}}
}

func ids(books []RatedBook) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Book.ID
	}
	return out
}

func TestRankFeatured(t *testing.T) {
	books := []RatedBook{
		rated("a", 3, 2001),
		rated("b", 5, 1990),
		rated("c", 5, 2010),
		rated("d", 0, 0),
		rated("e", 3, 2001),
		rated("f", 4, 0),
		rated("g", 2, 2020),
	}

	got := RankFeatured(books, FeaturedCount)
	assert.Equal(t, []string{"c", "b", "f", "a", "e"}, ids(got))
	assert.Equal(t, "a", books[0].Book.ID, "input is not reordered")

	assert.Len(t, RankFeatured(books[:2], FeaturedCount), 2)
	assert.Empty(t, RankFeatured(nil, FeaturedCount))
}

func TestPageRequest(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, Limit: 10}, NewPageRequest(0, -3))
	assert.Equal(t, PageRequest{Page: 3, Limit: 100}, NewPageRequest(3, 500))

	p := NewPageRequest(3, 5)
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 5, p.TotalPages(23))
	assert.Equal(t, 4, p.TotalPages(20))
	assert.Equal(t, 0, p.TotalPages(0))
}

func TestPageRequest_HugePageStaysBeyondRange(t *testing.T) {
	p := NewPageRequest(1<<62+1, 10)
	assert.Equal(t, MaxPage, p.Page)
	assert.Greater(t, p.Offset(), 0)

	p = NewPageRequest(math.MaxInt, MaxLimit)
	assert.Greater(t, p.Offset(), 0)
}
