package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/books/:id", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/42", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/books/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesDomainCounters(t *testing.T) {
	RecordReviewCreated()
	RecordBookDeleted()
	RecordAssetOperation("upload", true)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(body, "bookhub_reviews_created_total"))
	assert.True(t, strings.Contains(body, "bookhub_books_deleted_total"))
	assert.True(t, strings.Contains(body, `bookhub_assets_operations_total{operation="upload",success="true"}`))
}
