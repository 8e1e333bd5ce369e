package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/beniamp/orders-tracking/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	anchor := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	persian := func(n int) string {
		return calendar.FromGregorian(anchor.AddDate(0, 0, n)).String()
	}

	orders := []domain.OrderRecord{
		{ProductNameColor: "Phone X - Black", Category: "Phones", Quantity: 10, TotalPrice: 1000, TotalNetPrice: 900, DatePersian: persian(-7)},
		{ProductNameColor: "Phone X - Black", Category: "Phones", Quantity: 25, TotalPrice: 2500, TotalNetPrice: 2250, DatePersian: persian(0)},
		{ProductNameColor: "Laptop Y - Grey", Category: "Laptops", Quantity: 5, TotalPrice: 7500, TotalNetPrice: 7000, DatePersian: persian(3)},
		{ProductNameColor: "Phone X - Black", Category: "Phones", Quantity: 2, TotalPrice: 200, TotalNetPrice: 180, DatePersian: persian(6)},
	}
	stocks := []domain.StockRecord{
		{ProductColorName: "Phone X - Black", Category: "Phones", Brand: "Acme", Quantity: 100},
	}

	tracking := service.NewOrderTrackingService(orders, nil)
	balance := service.NewBalanceService(orders, stocks, nil)

	return NewRouter(&Services{OrderTracking: tracking, Balance: balance}, nil)
}

func TestGetSummary(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/summary?start=2024-03-20&end=2024-03-26", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report domain.ComparisonReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 7, report.Days)
	assert.Equal(t, 32, report.Current.Quantity)
	assert.Equal(t, 10, report.Previous.Quantity)
	assert.InDelta(t, 220.0, report.Growth.Quantity, 1e-9)
	assert.Len(t, report.Daily, 7)
}

func TestGetSummaryCategoryFilter(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/summary?start=2024-03-20&end=2024-03-26&category=Laptops", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report domain.ComparisonReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 5, report.Current.Quantity)
	assert.Equal(t, 0, report.Previous.Quantity)
	assert.Equal(t, 0.0, report.Growth.Quantity)
}

func TestGetSummaryBadDate(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/summary?start=20-03-2024", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSummaryRangeOutsideData(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/summary?start=2024-03-20&end=2025-01-01", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRangeOutsideDataConsistentAcrossEndpoints(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{
		"/api/v1/orders/summary",
		"/api/v1/orders/trend",
		"/api/v1/orders/daily",
		"/api/v1/orders/products",
	} {
		req := httptest.NewRequest(http.MethodGet, path+"?start=2024-03-20&end=2025-01-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, path)
	}
}

func TestGetCategories(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/categories", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []string{domain.AllCategories, "Laptops", "Phones"}, categories)
}

func TestGetBalanceDashboard(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance/dashboard?start=2024-03-20&end=2024-03-26", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var dash domain.BalanceDashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, 3, dash.DistinctDays)
	assert.Len(t, dash.Buckets, len(domain.AllStatuses))
}

func TestGetBalanceProductsUnknownStatus(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance/products?status=purple", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBalanceExportContentType(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance/export?start=2024-03-20&end=2024-03-26", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}
