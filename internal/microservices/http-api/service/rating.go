package service

import (
	"sort"

	"bookhub/internal/microservices/http-api/models"
)

// FeaturedCount is how many books the featured endpoint returns.
const FeaturedCount = 5

type RatingSummary struct {
	Average float64
	Count   int
}

// Summarize returns the arithmetic mean of ratings, 0 for none.
func Summarize(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RatingSummary{Average: float64(sum) / float64(len(ratings)), Count: len(ratings)}
}

func SummarizeReviews(reviews []models.Review) RatingSummary {
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return Summarize(ratings)
}

// RatedBook pairs a book with its rating summary.
type RatedBook struct {
	Book    models.Book
	Summary RatingSummary
}

// RankFeatured orders by average rating, then publication year, both descending.
// Equal books keep their input order. At most n books are returned.
func RankFeatured(books []RatedBook, n int) []RatedBook {
	ranked := make([]RatedBook, len(books))
	copy(ranked, books)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Summary.Average != b.Summary.Average {
			return a.Summary.Average > b.Summary.Average
		}
		return a.Book.PublishedYear > b.Book.PublishedYear
	})
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
