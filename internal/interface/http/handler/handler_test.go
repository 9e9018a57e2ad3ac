package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestListQuery(t *testing.T) {
	t.Run("原样读取字符串参数", func(t *testing.T) {
		c, w := newContext("/books?page=abc&pageSize=-1&search=%25_&sortBy=price&sortOrder=ASC&priceFrom=1e2&priceTo=x")

		got := listQuery(c)
		assert.Equal(t, listing.RawQuery{
			Page:      "abc",
			PageSize:  "-1",
			Search:    "%_",
			SortBy:    "price",
			SortOrder: "ASC",
			PriceFrom: "1e2",
			PriceTo:   "x",
		}, got)
		assert.False(t, c.IsAborted())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("没有参数", func(t *testing.T) {
		c, _ := newContext("/books")
		assert.Equal(t, listing.RawQuery{}, listQuery(c))
	})
}

func TestQueryIDs(t *testing.T) {
	t.Run("两种写法混用", func(t *testing.T) {
		c, _ := newContext("/books?listIds=1,2&listIds=3&listIds=")
		ids, ok := queryIDs(c)
		assert.True(t, ok)
		assert.Equal(t, []uint{1, 2, 3}, ids)
	})

	t.Run("非整数", func(t *testing.T) {
		c, w := newContext("/books?listIds=1,abc")
		_, ok := queryIDs(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
