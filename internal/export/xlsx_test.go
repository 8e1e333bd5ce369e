package export

import (
	"bytes"
	"testing"

	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBalanceWorkbook(t *testing.T) {
	days := 8.0
	dash := &domain.BalanceDashboard{
		Buckets: []domain.StatusBucket{
			{
				Status: domain.StatusRed,
				Label:  domain.StatusRed.Label(),
				Count:  1,
				Products: []domain.ProductHealth{
					{
						Product:         "Phone X - Black",
						TotalVolume:     40,
						MaxAvailability: 40,
						OrderRate:       5,
						RestockRatio:    0.125,
						DaysRemaining:   &days,
						Status:          domain.StatusRed,
					},
				},
			},
			{Status: domain.StatusGreen, Label: domain.StatusGreen.Label()},
		},
		ZeroSales: []domain.ProductHealth{
			{Product: "Dusty Thing", MaxAvailability: 9},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBalanceWorkbook(&buf, dash))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Red", "Green", "ZeroSales"}, f.GetSheetList())

	header, err := f.GetCellValue("Red", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Product", header)

	product, err := f.GetCellValue("Red", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Phone X - Black", product)

	status, err := f.GetCellValue("Red", "G2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRed.Label(), status)

	zero, err := f.GetCellValue("ZeroSales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Dusty Thing", zero)
}
