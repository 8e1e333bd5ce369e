package restock

import (
	"testing"
	"time"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

func persianOffset(n int) string {
	return calendar.FromGregorian(anchor.AddDate(0, 0, n)).String()
}

func testRange(t *testing.T, days int) calendar.Range {
	t.Helper()
	rng, err := calendar.NewRange(anchor, anchor.AddDate(0, 0, days-1))
	require.NoError(t, err)
	return rng
}

func TestBuildDashboard(t *testing.T) {
	orders := []domain.OrderRecord{
		{ProductNameColor: "hot-item", Category: "Phones", Quantity: 20, DatePersian: persianOffset(0)},
		{ProductNameColor: "hot-item", Category: "Phones", Quantity: 30, DatePersian: persianOffset(4)},
		{ProductNameColor: "steady-item", Category: "Phones", Quantity: 2, DatePersian: persianOffset(4)},
		// sentinel rows never contribute volume or distinct days
		{ProductNameColor: "ghost", Category: "Phones", Quantity: 99, DatePersian: calendar.Sentinel},
	}
	stocks := []domain.StockRecord{
		{ProductColorName: "hot-item", Category: "Phones", Brand: "Acme", Quantity: 0},
		{ProductColorName: "steady-item", Category: "Phones", Brand: "Acme", Quantity: 40},
		{ProductColorName: "dusty-item", Category: "Phones", Brand: "Acme", Quantity: 15},
	}

	dash := BuildDashboard(orders, stocks, testRange(t, 10), domain.Filter{})

	assert.Equal(t, 2, dash.DistinctDays)

	byStatus := make(map[domain.ActionStatus]domain.StatusBucket)
	for _, b := range dash.Buckets {
		byStatus[b.Status] = b
	}

	// hot-item: 50 units over 2 distinct days, zero stock
	brown1 := byStatus[domain.StatusBrownType1]
	require.Equal(t, 1, brown1.Count)
	assert.Equal(t, "hot-item", brown1.Products[0].Product)
	// zero stock against a positive rate is a defined zero days, not Inf
	require.NotNil(t, brown1.Products[0].DaysRemaining)
	assert.Zero(t, *brown1.Products[0].DaysRemaining)

	// steady-item: rate 1/day against 40 units of stock
	red := byStatus[domain.StatusRed]
	require.Equal(t, 0, red.Count)
	yellow := byStatus[domain.StatusYellow]
	require.Equal(t, 0, yellow.Count)
	green := byStatus[domain.StatusGreen]
	require.Equal(t, 1, green.Count)
	steady := green.Products[0]
	assert.Equal(t, "steady-item", steady.Product)
	require.NotNil(t, steady.DaysRemaining)
	assert.InDelta(t, 40.0, *steady.DaysRemaining, 1e-9)

	// dusty-item has stock but no dated sales at all
	require.Len(t, dash.ZeroSales, 1)
	assert.Equal(t, "dusty-item", dash.ZeroSales[0].Product)
	assert.Equal(t, 15, dash.ZeroSales[0].MaxAvailability)
}

func TestBuildDashboardBrandFilterAppliesToStocks(t *testing.T) {
	orders := []domain.OrderRecord{
		{ProductNameColor: "a", Category: "Phones", Quantity: 5, DatePersian: persianOffset(0)},
	}
	stocks := []domain.StockRecord{
		{ProductColorName: "a", Category: "Phones", Brand: "Acme", Quantity: 10},
		{ProductColorName: "b", Category: "Phones", Brand: "Other", Quantity: 10},
	}

	dash := BuildDashboard(orders, stocks, testRange(t, 7), domain.Filter{Brand: "Acme"})
	assert.Empty(t, dash.ZeroSales, "other brands' stock must not appear")
}

func TestBuildDashboardBrandFilterScopesOrderedProducts(t *testing.T) {
	orders := []domain.OrderRecord{
		{ProductNameColor: "a", Category: "Phones", Quantity: 5, DatePersian: persianOffset(0)},
		{ProductNameColor: "b", Category: "Phones", Quantity: 8, DatePersian: persianOffset(0)},
	}
	stocks := []domain.StockRecord{
		{ProductColorName: "a", Category: "Phones", Brand: "Acme", Quantity: 10},
		{ProductColorName: "b", Category: "Phones", Brand: "Other", Quantity: 10},
	}

	dash := BuildDashboard(orders, stocks, testRange(t, 7), domain.Filter{Brand: "Acme"})

	// b sells under another brand; it must vanish from the selection
	// entirely rather than surface as a stockout with zero availability.
	for _, bucket := range dash.Buckets {
		for _, p := range bucket.Products {
			assert.NotEqual(t, "b", p.Product)
		}
	}
	brown1 := dash.Buckets[0]
	require.Equal(t, domain.StatusBrownType1, brown1.Status)
	assert.Zero(t, brown1.Count)
}

func TestBuildDashboardEmptySelection(t *testing.T) {
	dash := BuildDashboard(nil, nil, testRange(t, 7), domain.Filter{Category: "Nothing"})

	assert.Equal(t, 0, dash.DistinctDays)
	assert.Empty(t, dash.ZeroSales)
	for _, bucket := range dash.Buckets {
		assert.Zero(t, bucket.Count)
	}
}

func TestBuildDashboardPeakAcrossSnapshotDates(t *testing.T) {
	orders := []domain.OrderRecord{
		{ProductNameColor: "a", Category: "Phones", Quantity: 7, DatePersian: persianOffset(0)},
	}
	stocks := []domain.StockRecord{
		{ProductColorName: "a", Category: "Phones", Quantity: 10, DatePersian: persianOffset(0)},
		{ProductColorName: "a", Category: "Phones", Quantity: 25, DatePersian: persianOffset(1)},
		{ProductColorName: "a", Category: "Phones", Quantity: 5, DatePersian: persianOffset(2)},
	}

	dash := BuildDashboard(orders, stocks, testRange(t, 7), domain.Filter{})

	var found *domain.ProductHealth
	for _, bucket := range dash.Buckets {
		for i := range bucket.Products {
			if bucket.Products[i].Product == "a" {
				found = &bucket.Products[i]
			}
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 25, found.MaxAvailability, "peak across snapshot dates wins")
}
