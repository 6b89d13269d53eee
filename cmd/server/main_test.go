package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"neonix-orders/internal/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopService struct{}

func (noopService) List(ctx context.Context) ([]*order.Order, error)  { return nil, nil }
func (noopService) Get(ctx context.Context, id uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (noopService) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	return o, nil
}
func (noopService) Update(ctx context.Context, id uint, in *order.Order) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (noopService) Delete(ctx context.Context, id uint) error { return order.ErrOrderNotFound }
func (noopService) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	return nil, nil
}

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Only the HTTP wiring is under test; sqlmock answers the health ping.
	database, _, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	router := setupRouter(noopService{}, database)

	t.Run("Health Check", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "healthy")
	})

	t.Run("Order routes wired", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/orders", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/nope", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
