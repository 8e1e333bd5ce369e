package service

import (
	"context"

	"github.com/beniamp/orders-tracking/internal/cache"
	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/beniamp/orders-tracking/internal/report"
	"github.com/rs/zerolog/log"
)

// OrderTrackingService serves the order trend dashboards. The base table is
// read-only; every request recomputes derived views from it.
type OrderTrackingService struct {
	orders []domain.OrderRecord
	cache  cache.ReportCache
}

func NewOrderTrackingService(orders []domain.OrderRecord, cacheImpl cache.ReportCache) *OrderTrackingService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &OrderTrackingService{orders: orders, cache: cacheImpl}
}

func (s *OrderTrackingService) Compare(ctx context.Context, rng calendar.Range, f domain.Filter, shadowCount int) (*domain.ComparisonReport, error) {
	key := reportKey(rng, f, shadowCount)
	if cached, ok, err := s.cache.GetComparison(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("order tracking: cache get comparison failed")
	}

	result, err := report.Compare(s.orders, rng, f, shadowCount)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetComparison(ctx, key, result); err != nil {
		log.Warn().Err(err).Msg("order tracking: cache set comparison failed")
	}

	return result, nil
}

func (s *OrderTrackingService) Daily(rng calendar.Range, f domain.Filter) ([]domain.DailyQuantity, error) {
	if err := report.ValidateRange(s.orders, rng); err != nil {
		return nil, err
	}
	return report.Daily(s.orders, rng, f), nil
}

func (s *OrderTrackingService) Products(rng calendar.Range, f domain.Filter, shadowCount int) ([]domain.ProductRangeBreakdown, error) {
	if err := report.ValidateRange(s.orders, rng); err != nil {
		return nil, err
	}
	if shadowCount < 1 {
		shadowCount = 1
	}
	return report.ProductBreakdown(s.orders, rng.Series(shadowCount), f), nil
}

func (s *OrderTrackingService) Categories() []string {
	return report.Categories(s.orders)
}

func (s *OrderTrackingService) AvailableDates() []string {
	return report.AvailableDates(s.orders)
}

// Bounds returns the Gregorian span covered by the dated rows of the table.
// ok is false when the table has no dated rows.
func (s *OrderTrackingService) Bounds() (calendar.Range, bool) {
	dates := report.AvailableDates(s.orders)
	if len(dates) == 0 {
		return calendar.Range{}, false
	}

	first, err := calendar.ParsePersian(dates[0])
	if err != nil {
		return calendar.Range{}, false
	}
	last, err := calendar.ParsePersian(dates[len(dates)-1])
	if err != nil {
		return calendar.Range{}, false
	}

	rng, err := calendar.NewRange(first.ToGregorian(), last.ToGregorian())
	if err != nil {
		return calendar.Range{}, false
	}
	return rng, true
}

func reportKey(rng calendar.Range, f domain.Filter, shadowCount int) cache.ReportKey {
	start, end := rng.Persian()
	return cache.ReportKey{
		Start:       start,
		End:         end,
		Category:    f.Category,
		Brand:       f.Brand,
		ShadowCount: shadowCount,
	}
}
