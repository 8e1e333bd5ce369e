package restock

import (
	"math"
	"sort"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
)

// BuildDashboard joins ordered volume per product in the selected range
// against peak stock availability, classifies every product and buckets the
// results by action status. Stocked products without a single dated order
// line are reported separately as the zero-sales list.
func BuildDashboard(orders []domain.OrderRecord, stocks []domain.StockRecord, rng calendar.Range, f domain.Filter) *domain.BalanceDashboard {
	startPersian, endPersian := rng.Persian()

	volume := make(map[string]int)
	days := make(map[string]struct{})
	for _, o := range orders {
		if o.DatePersian == calendar.Sentinel || o.DatePersian == "" {
			continue
		}
		if o.DatePersian < startPersian || o.DatePersian > endPersian {
			continue
		}
		if !f.MatchesCategory(o.Category) {
			continue
		}
		days[o.DatePersian] = struct{}{}
		volume[o.ProductNameColor] += o.Quantity
	}
	distinctDays := len(days)

	availability := maxAvailability(stocks, f)

	// A selected brand is known only from the stock snapshot, so it scopes
	// the whole dashboard to products present in the filtered stocks.
	products := make(map[string]struct{}, len(volume)+len(availability))
	for p := range volume {
		if _, stocked := availability[p]; f.BrandActive() && !stocked {
			continue
		}
		products[p] = struct{}{}
	}
	for p := range availability {
		products[p] = struct{}{}
	}

	names := make([]string, 0, len(products))
	for p := range products {
		names = append(names, p)
	}
	sort.Strings(names)

	byStatus := make(map[domain.ActionStatus][]domain.ProductHealth)
	var zeroSales []domain.ProductHealth
	for _, name := range names {
		vol := volume[name]
		avail := availability[name]

		if vol == 0 {
			if avail > 0 {
				zeroSales = append(zeroSales, domain.ProductHealth{
					Product:         name,
					MaxAvailability: avail,
				})
			}
			continue
		}

		m := Compute(float64(vol), distinctDays, float64(avail))
		health := domain.ProductHealth{
			Product:         name,
			TotalVolume:     vol,
			MaxAvailability: avail,
			OrderRate:       m.OrderRate,
			RestockRatio:    m.RestockRatio,
			DaysRemaining:   finiteDays(m.DaysRemaining),
			Status:          Classify(m),
		}
		byStatus[health.Status] = append(byStatus[health.Status], health)
	}

	buckets := make([]domain.StatusBucket, 0, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		rows := byStatus[status]
		buckets = append(buckets, domain.StatusBucket{
			Status:   status,
			Label:    status.Label(),
			Count:    len(rows),
			Products: rows,
		})
	}

	return &domain.BalanceDashboard{
		StartPersian: startPersian,
		EndPersian:   endPersian,
		DistinctDays: distinctDays,
		Buckets:      buckets,
		ZeroSales:    zeroSales,
	}
}

// maxAvailability reduces the stock snapshot to peak availability per
// product: quantities are summed per snapshot date and the maximum across
// dates is kept. A snapshot without dates collapses to a single total.
func maxAvailability(stocks []domain.StockRecord, f domain.Filter) map[string]int {
	perDate := make(map[string]map[string]int)
	for _, s := range stocks {
		if !f.MatchesCategory(s.Category) || !f.MatchesBrand(s.Brand) {
			continue
		}
		byDate, ok := perDate[s.ProductColorName]
		if !ok {
			byDate = make(map[string]int)
			perDate[s.ProductColorName] = byDate
		}
		byDate[s.DatePersian] += s.Quantity
	}

	out := make(map[string]int, len(perDate))
	for product, byDate := range perDate {
		peak := 0
		for _, qty := range byDate {
			if qty > peak {
				peak = qty
			}
		}
		out[product] = peak
	}
	return out
}

func finiteDays(d float64) *float64 {
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return nil
	}
	return &d
}
