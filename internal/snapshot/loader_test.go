package snapshot

import (
	"strings"
	"testing"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `ProductName,ProductNameColor,Category,ColorName,Quantity,TotalPrice,TotalNetPrice,Date_Formatted
Phone X,Phone X - Black,Phones ,Black,2,1200.50,1100,1403-01-01
Phone X,Phone X - Blue,Phones,Blue,1,600,550,
Laptop Y,Laptop Y - Grey,Laptops,Grey,3,4500,4200,0000-00-00
`

func TestReadOrders(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(ordersCSV))
	require.NoError(t, err)
	require.Len(t, orders, 3)

	first := orders[0]
	assert.Equal(t, "Phone X - Black", first.ProductNameColor)
	assert.Equal(t, "Phones", first.Category, "category whitespace must be trimmed")
	assert.Equal(t, 2, first.Quantity)
	assert.InDelta(t, 1200.50, first.TotalPrice, 1e-9)
	assert.Equal(t, "1403-01-01", first.DatePersian)

	// empty dates normalize to the sentinel
	assert.Equal(t, calendar.Sentinel, orders[1].DatePersian)
	assert.Equal(t, calendar.Sentinel, orders[2].DatePersian)
}

func TestReadOrdersColumnOrderIndependent(t *testing.T) {
	shuffled := `Date_Formatted,Quantity,ProductNameColor,Category
1403-02-10,4,Phone Z - Red,Phones
`
	orders, err := ReadOrders(strings.NewReader(shuffled))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Phone Z - Red", orders[0].ProductNameColor)
	assert.Equal(t, 4, orders[0].Quantity)
	assert.Equal(t, "1403-02-10", orders[0].DatePersian)
}

func TestReadOrdersMissingColumn(t *testing.T) {
	_, err := ReadOrders(strings.NewReader("ProductNameColor,Category,Quantity\nA,Phones,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date_Formatted")
}

func TestReadStocks(t *testing.T) {
	stocksCSV := `ProductColorName,Category,Brand,Color,Quantity
Phone X - Black,Phones,Acme ,Black,12
Laptop Y - Grey,Laptops,Bravo,Grey,0
`
	stocks, err := ReadStocks(strings.NewReader(stocksCSV))
	require.NoError(t, err)
	require.Len(t, stocks, 2)

	assert.Equal(t, "Phone X - Black", stocks[0].ProductColorName)
	assert.Equal(t, "Acme", stocks[0].Brand)
	assert.Equal(t, 12, stocks[0].Quantity)
	assert.Equal(t, 0, stocks[1].Quantity)
}

func TestReadStocksMissingColumn(t *testing.T) {
	_, err := ReadStocks(strings.NewReader("Name,Quantity\nA,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProductColorName")
}
