package service

import (
	"context"
	"io"

	"github.com/beniamp/orders-tracking/internal/cache"
	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/beniamp/orders-tracking/internal/export"
	"github.com/beniamp/orders-tracking/internal/restock"
	"github.com/rs/zerolog/log"
)

// BalanceService serves the inventory balance dashboard: restock
// classification of every product over a selected range.
type BalanceService struct {
	orders []domain.OrderRecord
	stocks []domain.StockRecord
	cache  cache.ReportCache
}

func NewBalanceService(orders []domain.OrderRecord, stocks []domain.StockRecord, cacheImpl cache.ReportCache) *BalanceService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &BalanceService{orders: orders, stocks: stocks, cache: cacheImpl}
}

func (s *BalanceService) Dashboard(ctx context.Context, rng calendar.Range, f domain.Filter) (*domain.BalanceDashboard, error) {
	key := reportKey(rng, f, 0)
	if cached, ok, err := s.cache.GetBalance(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("balance: cache get dashboard failed")
	}

	dash := restock.BuildDashboard(s.orders, s.stocks, rng, f)

	if err := s.cache.SetBalance(ctx, key, dash); err != nil {
		log.Warn().Err(err).Msg("balance: cache set dashboard failed")
	}

	return dash, nil
}

// Products returns the classified rows, optionally limited to one status.
func (s *BalanceService) Products(ctx context.Context, rng calendar.Range, f domain.Filter, status domain.ActionStatus) ([]domain.ProductHealth, error) {
	dash, err := s.Dashboard(ctx, rng, f)
	if err != nil {
		return nil, err
	}

	var rows []domain.ProductHealth
	for _, bucket := range dash.Buckets {
		if status != "" && bucket.Status != status {
			continue
		}
		rows = append(rows, bucket.Products...)
	}
	return rows, nil
}

// ExportXLSX writes the balance dashboard as an Excel workbook.
func (s *BalanceService) ExportXLSX(ctx context.Context, rng calendar.Range, f domain.Filter, w io.Writer) error {
	dash, err := s.Dashboard(ctx, rng, f)
	if err != nil {
		return err
	}
	return export.WriteBalanceWorkbook(w, dash)
}
