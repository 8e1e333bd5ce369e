// Package export renders dashboard payloads as Excel workbooks for
// download from the balance dashboard.
package export

import (
	"fmt"
	"io"

	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/xuri/excelize/v2"
)

var balanceHeader = []string{
	"Product", "Total Volume", "Max Availability",
	"Order Rate", "Restock Ratio", "Days Remaining", "Status",
}

// WriteBalanceWorkbook writes one sheet per status bucket plus a sheet for
// the zero-sales products.
func WriteBalanceWorkbook(w io.Writer, dash *domain.BalanceDashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, bucket := range dash.Buckets {
		sheet := sheetName(bucket.Status)
		if first {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		if err := writeRows(f, sheet, bucket.Products); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("ZeroSales"); err != nil {
		return fmt.Errorf("failed to create sheet ZeroSales: %w", err)
	}
	if err := writeRows(f, "ZeroSales", dash.ZeroSales); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows []domain.ProductHealth) error {
	if err := f.SetSheetRow(sheet, "A1", &balanceHeader); err != nil {
		return fmt.Errorf("failed to write header on %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		days := any("")
		if row.DaysRemaining != nil {
			days = *row.DaysRemaining
		}

		values := []any{
			row.Product,
			row.TotalVolume,
			row.MaxAvailability,
			row.OrderRate,
			row.RestockRatio,
			days,
			row.Status.Label(),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row on %s: %w", sheet, err)
		}
	}
	return nil
}

func sheetName(status domain.ActionStatus) string {
	switch status {
	case domain.StatusBrownType1:
		return "BrownType1"
	case domain.StatusBrownType2:
		return "BrownType2"
	case domain.StatusRed:
		return "Red"
	case domain.StatusYellow:
		return "Yellow"
	case domain.StatusGreen:
		return "Green"
	case domain.StatusGrey:
		return "Grey"
	default:
		return string(status)
	}
}
