// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func listingParams(t *testing.T, rawQuery string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/products?"+rawQuery, nil)
	return GetPaginationParams(c)
}

func TestPaginationParamsDefaults(t *testing.T) {
	params := listingParams(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestPaginationParamsClampOutOfRange(t *testing.T) {
	params := listingParams(t, "page=0&limit=9999&order=sideways")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestPaginationParamsPassThrough(t *testing.T) {
	params := listingParams(t, "page=3&limit=12&sort=price&order=asc&category=Rings&search=ring")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 12, params.Limit)
	assert.Equal(t, "price", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "Rings", params.Category)
	assert.Equal(t, "ring", params.Search)
}

func TestCreatePaginationResultRoundsPagesUp(t *testing.T) {
	result := CreatePaginationResult(nil, 25, PaginationParams{Page: 1, Limit: 12})

	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}
