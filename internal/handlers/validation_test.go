// internal/handlers/validation_test.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shineline/storefront-backend/internal/cartstore"
	"github.com/shineline/storefront-backend/internal/middleware"
	"github.com/shineline/storefront-backend/internal/models"
	"github.com/shineline/storefront-backend/internal/services"
	"github.com/shineline/storefront-backend/internal/utils"
)

const testSigningSecret = "cart-handler-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret(testSigningSecret)
}

func catalogProduct(name string, price float64, inventory int, sizes ...string) *models.Product {
	p := &models.Product{
		Name:           name,
		Price:          price,
		InventoryCount: inventory,
		Sizes:          pq.StringArray(sizes),
	}
	p.ID = uuid.New()
	return p
}

func newValidationRouter(store *memStore, products ...*models.Product) *gin.Engine {
	svc := services.NewValidationService(store, newMemCatalog(products...))
	handler := NewValidationHandler(svc)

	router := gin.New()
	router.POST("/v1/cart/validate", middleware.AuthRequired(), handler.ValidateCart)
	return router
}

// bearerToken signs a short-lived token the way the external auth
// provider would.
func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := utils.JWTClaims{
		UserID: userID.String(),
		Email:  "shopper@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestValidateCartRequiresAuth(t *testing.T) {
	store := newMemStore()
	router := newValidationRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/validate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Unauthorized"}`, rec.Body.String())
	// Rejected before any cart read.
	assert.Equal(t, 0, store.listCalls)
}

func TestValidateCartRejectsMalformedToken(t *testing.T) {
	store := newMemStore()
	router := newValidationRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/validate", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Unauthorized"}`, rec.Body.String())
}

func TestValidateCartReturnsReport(t *testing.T) {
	ring := catalogProduct("Lumos Ring", 49.99, 25, "6", "7", "8")
	scarce := catalogProduct("Minimalist Bangle", 44.99, 1)

	store := newMemStore()
	userID := uuid.New()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, userID.String(), cartstore.Entry{ProductID: ring.ID, Quantity: 2, SelectedSize: "7"}, cartstore.AddModeIncrement))
	require.NoError(t, store.Add(ctx, userID.String(), cartstore.Entry{ProductID: scarce.ID, Quantity: 4}, cartstore.AddModeIncrement))

	router := newValidationRouter(store, ring, scarce)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/validate", nil)
	req.Header.Set("Authorization", bearerToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report models.CartValidationReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.False(t, report.Valid)
	require.Len(t, report.Items, 2)

	assert.True(t, report.Items[0].Valid)
	assert.Equal(t, "Lumos Ring", report.Items[0].ProductName)
	assert.Equal(t, 2, report.Items[0].RequestedQuantity)
	assert.Equal(t, 25, report.Items[0].AvailableQuantity)

	assert.False(t, report.Items[1].Valid)
	assert.Contains(t, report.Items[1].Errors, "Only 1 items available (requested 4)")

	// The total counts the valid line only.
	assert.InDelta(t, 2*49.99, report.TotalPrice, 0.001)
}

func TestValidateCartStoreFailureIsServerError(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("connection refused")
	router := newValidationRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/validate", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "failed to read cart: connection refused"}`, rec.Body.String())
}

func TestValidateCartEmptyCartIsValid(t *testing.T) {
	store := newMemStore()
	router := newValidationRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/validate", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report models.CartValidationReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Valid)
	assert.Zero(t, report.TotalPrice)
	assert.Empty(t, report.Items)
}
