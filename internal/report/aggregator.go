// Package report implements date-range comparative aggregation over the
// in-memory orders table: current vs shadow period summaries, growth
// percentages, zero-filled daily breakdowns and per-product trend rows.
package report

import (
	"errors"
	"sort"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
)

// ErrRangeOutsideData reports a requested range that falls outside the
// dates present in the orders table.
var ErrRangeOutsideData = errors.New("date range outside snapshot data")

// AvailableDates returns the sorted distinct Persian dates present in the
// table, sentinel rows excluded.
func AvailableDates(orders []domain.OrderRecord) []string {
	seen := make(map[string]struct{})
	for _, o := range orders {
		if o.DatePersian == calendar.Sentinel || o.DatePersian == "" {
			continue
		}
		seen[o.DatePersian] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Categories returns the sorted distinct categories in the table.
func Categories(orders []domain.OrderRecord) []string {
	seen := make(map[string]struct{})
	for _, o := range orders {
		if o.Category == "" {
			continue
		}
		seen[o.Category] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ValidateRange rejects a range whose Persian endpoints fall outside the
// dates present in the table. An empty table accepts any range.
func ValidateRange(orders []domain.OrderRecord, rng calendar.Range) error {
	dates := AvailableDates(orders)
	if len(dates) == 0 {
		return nil
	}
	startPersian, endPersian := rng.Persian()
	if startPersian < dates[0] || endPersian > dates[len(dates)-1] {
		return ErrRangeOutsideData
	}
	return nil
}

// selectRows returns a fresh slice of the rows whose Persian date falls in
// [startPersian, endPersian] and which pass the filter. The input slice is
// never mutated.
func selectRows(orders []domain.OrderRecord, startPersian, endPersian string, f domain.Filter) []domain.OrderRecord {
	out := make([]domain.OrderRecord, 0)
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
		out = append(out, o)
	}
	return out
}

// Summarize sums quantity, price and net price for one range.
func Summarize(orders []domain.OrderRecord, rng calendar.Range, f domain.Filter) domain.PeriodSummary {
	startPersian, endPersian := rng.Persian()
	sum := domain.PeriodSummary{StartPersian: startPersian, EndPersian: endPersian}
	for _, o := range selectRows(orders, startPersian, endPersian, f) {
		sum.Quantity += o.Quantity
		sum.TotalPrice += o.TotalPrice
		sum.TotalNetPrice += o.TotalNetPrice
	}
	return sum
}

// Growth computes the percent change from previous to current. A zero
// previous total is defined as zero growth, not an error.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Daily produces one row per calendar day in the range, including days
// with no matching orders, so trend charts never omit zero-activity days.
func Daily(orders []domain.OrderRecord, rng calendar.Range, f domain.Filter) []domain.DailyQuantity {
	startPersian, endPersian := rng.Persian()

	byDate := make(map[string]int)
	for _, o := range selectRows(orders, startPersian, endPersian, f) {
		byDate[o.DatePersian] += o.Quantity
	}

	days := rng.Dates()
	out := make([]domain.DailyQuantity, 0, len(days))
	for _, day := range days {
		p := calendar.FromGregorian(day).String()
		out = append(out, domain.DailyQuantity{
			DatePersian: p,
			Label:       calendar.FormatShort(p),
			Quantity:    byDate[p],
		})
	}
	return out
}

// ProductBreakdown groups quantity by product for each range of the series
// (oldest first), outer-merging across ranges with zero fill. Peak range
// resolution is a first-wins scan in chronological order.
func ProductBreakdown(orders []domain.OrderRecord, series []calendar.Range, f domain.Filter) []domain.ProductRangeBreakdown {
	perRange := make([]map[string]int, len(series))
	products := make(map[string]struct{})
	for i, rng := range series {
		startPersian, endPersian := rng.Persian()
		byProduct := make(map[string]int)
		for _, o := range selectRows(orders, startPersian, endPersian, f) {
			byProduct[o.ProductNameColor] += o.Quantity
			products[o.ProductNameColor] = struct{}{}
		}
		perRange[i] = byProduct
	}

	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ProductRangeBreakdown, 0, len(names))
	for _, name := range names {
		row := domain.ProductRangeBreakdown{
			Product:    name,
			Quantities: make([]int, len(series)),
		}
		for i := range series {
			q := perRange[i][name]
			row.Quantities[i] = q
			row.Total += q
			if q > row.Peak {
				row.Peak = q
				row.PeakRange = i
			}
		}
		out = append(out, row)
	}
	return out
}

// Compare runs the full comparative aggregation: current summary, shadow
// summary, growth, the shadowCount-deep trend series, the daily breakdown
// of the current range and the per-product cross-range breakdown.
func Compare(orders []domain.OrderRecord, rng calendar.Range, f domain.Filter, shadowCount int) (*domain.ComparisonReport, error) {
	if err := ValidateRange(orders, rng); err != nil {
		return nil, err
	}

	if shadowCount < 1 {
		shadowCount = 1
	}

	series := rng.Series(shadowCount)
	shadows := make([]domain.PeriodSummary, len(series))
	for i, shadowRange := range series {
		shadows[i] = Summarize(orders, shadowRange, f)
	}

	current := shadows[len(shadows)-1]
	previous := shadows[len(shadows)-2]

	return &domain.ComparisonReport{
		Days:     rng.Days(),
		Current:  current,
		Previous: previous,
		Growth: domain.GrowthMetrics{
			Quantity:      Growth(float64(current.Quantity), float64(previous.Quantity)),
			TotalPrice:    Growth(current.TotalPrice, previous.TotalPrice),
			TotalNetPrice: Growth(current.TotalNetPrice, previous.TotalNetPrice),
		},
		Shadows:  shadows,
		Daily:    Daily(orders, rng, f),
		Products: ProductBreakdown(orders, series, f),
	}, nil
}
