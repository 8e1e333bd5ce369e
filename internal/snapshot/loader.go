// Package snapshot loads the flat Orders and Stocks tables the dashboards
// run on. Files are CSV, or XLSX converted from the first sheet.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
)

// LoadOrders reads an Orders snapshot from path. Empty dates are normalized
// to the sentinel, category names are trimmed of stray whitespace.
func LoadOrders(path string) ([]domain.OrderRecord, error) {
	f, err := openTabular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadOrders(f)
}

// ReadOrders parses order lines from CSV data.
func ReadOrders(r io.Reader) ([]domain.OrderRecord, error) {
	reader := csv.NewReader(r)
	colMap, err := headerMap(reader)
	if err != nil {
		return nil, err
	}

	required := []string{"ProductNameColor", "Category", "Quantity", "Date_Formatted"}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("orders snapshot missing column %q", col)
		}
	}

	var orders []domain.OrderRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		quantity, _ := strconv.Atoi(field(record, colMap, "Quantity"))
		totalPrice, _ := strconv.ParseFloat(field(record, colMap, "TotalPrice"), 64)
		totalNet, _ := strconv.ParseFloat(field(record, colMap, "TotalNetPrice"), 64)

		orders = append(orders, domain.OrderRecord{
			ProductName:      field(record, colMap, "ProductName"),
			ProductNameColor: field(record, colMap, "ProductNameColor"),
			Category:         strings.TrimSpace(field(record, colMap, "Category")),
			ColorName:        field(record, colMap, "ColorName"),
			Quantity:         quantity,
			TotalPrice:       totalPrice,
			TotalNetPrice:    totalNet,
			DatePersian:      normalizeDate(field(record, colMap, "Date_Formatted")),
		})
	}

	return orders, nil
}

// LoadStocks reads a Stocks snapshot from path.
func LoadStocks(path string) ([]domain.StockRecord, error) {
	f, err := openTabular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadStocks(f)
}

// ReadStocks parses stock availability lines from CSV data.
func ReadStocks(r io.Reader) ([]domain.StockRecord, error) {
	reader := csv.NewReader(r)
	colMap, err := headerMap(reader)
	if err != nil {
		return nil, err
	}

	if _, ok := colMap["ProductColorName"]; !ok {
		return nil, fmt.Errorf("stocks snapshot missing column %q", "ProductColorName")
	}

	var stocks []domain.StockRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		quantity, _ := strconv.Atoi(field(record, colMap, "Quantity"))

		stocks = append(stocks, domain.StockRecord{
			ProductColorName: field(record, colMap, "ProductColorName"),
			Category:         strings.TrimSpace(field(record, colMap, "Category")),
			Brand:            strings.TrimSpace(field(record, colMap, "Brand")),
			Color:            field(record, colMap, "Color"),
			Quantity:         quantity,
			DatePersian:      normalizeDate(field(record, colMap, "Date")),
		})
	}

	return stocks, nil
}

// openTabular opens path as a CSV stream, converting the first XLSX sheet
// in memory when needed.
func openTabular(path string) (io.ReadCloser, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return openXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	return f, nil
}

func headerMap(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}
	return colMap, nil
}

func field(record []string, colMap map[string]int, name string) string {
	idx, ok := colMap[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func normalizeDate(s string) string {
	if s == "" {
		return calendar.Sentinel
	}
	return s
}
