// internal/domain/models.go
package domain

// Filter wildcard values matching the dashboard select boxes.
const (
	AllCategories = "All Categories"
	AllBrands     = "All Brands"
)

// OrderRecord is one order line from the Orders snapshot.
type OrderRecord struct {
	ProductName      string  `json:"product_name"`
	ProductNameColor string  `json:"product_name_color"`
	Category         string  `json:"category"`
	ColorName        string  `json:"color_name"`
	Quantity         int     `json:"quantity"`
	TotalPrice       float64 `json:"total_price"`
	TotalNetPrice    float64 `json:"total_net_price"`
	DatePersian      string  `json:"date_persian"`
}

// StockRecord is one availability line from the Stocks snapshot.
type StockRecord struct {
	ProductColorName string `json:"product_color_name"`
	Category         string `json:"category"`
	Brand            string `json:"brand"`
	Color            string `json:"color"`
	Quantity         int    `json:"quantity"`
	DatePersian      string `json:"date_persian,omitempty"`
}

// Filter narrows orders and stocks to a category and brand selection.
// Empty or wildcard values select everything.
type Filter struct {
	Category string `json:"category"`
	Brand    string `json:"brand"`
}

// MatchesCategory reports whether the category passes the filter.
func (f Filter) MatchesCategory(category string) bool {
	return f.Category == "" || f.Category == AllCategories || f.Category == category
}

// MatchesBrand reports whether the brand passes the filter.
func (f Filter) MatchesBrand(brand string) bool {
	return f.Brand == "" || f.Brand == AllBrands || f.Brand == brand
}

// BrandActive reports whether the filter names a specific brand.
func (f Filter) BrandActive() bool {
	return f.Brand != "" && f.Brand != AllBrands
}

// PeriodSummary sums the order metrics over one date range.
type PeriodSummary struct {
	StartPersian  string  `json:"start_persian"`
	EndPersian    string  `json:"end_persian"`
	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"total_price"`
	TotalNetPrice float64 `json:"total_net_price"`
}

// GrowthMetrics holds percent change of the current period against the
// previous one. A zero previous total yields zero growth by policy.
type GrowthMetrics struct {
	Quantity      float64 `json:"quantity"`
	TotalPrice    float64 `json:"total_price"`
	TotalNetPrice float64 `json:"total_net_price"`
}

// DailyQuantity is one day of the zero-filled daily breakdown.
type DailyQuantity struct {
	DatePersian string `json:"date_persian"`
	Label       string `json:"label"`
	Quantity    int    `json:"quantity"`
}

// ProductRangeBreakdown carries one product's quantity per analysis range,
// oldest range first, absences filled with zero.
type ProductRangeBreakdown struct {
	Product    string `json:"product"`
	Quantities []int  `json:"quantities"`
	Total      int    `json:"total"`
	Peak       int    `json:"peak"`
	PeakRange  int    `json:"peak_range"`
}

// ComparisonReport is the full output of a comparative aggregation run.
type ComparisonReport struct {
	Days     int                     `json:"days"`
	Current  PeriodSummary           `json:"current"`
	Previous PeriodSummary           `json:"previous"`
	Growth   GrowthMetrics           `json:"growth"`
	Shadows  []PeriodSummary         `json:"shadows"`
	Daily    []DailyQuantity         `json:"daily"`
	Products []ProductRangeBreakdown `json:"products"`
}

// ProductHealth is one classified row of the balance dashboard.
type ProductHealth struct {
	Product         string       `json:"product"`
	TotalVolume     int          `json:"total_volume"`
	MaxAvailability int          `json:"max_availability"`
	OrderRate       float64      `json:"order_rate"`
	RestockRatio    float64      `json:"restock_ratio"`
	DaysRemaining   *float64     `json:"days_remaining,omitempty"`
	Status          ActionStatus `json:"status"`
}

// StatusBucket groups classified products under one action status.
type StatusBucket struct {
	Status   ActionStatus    `json:"status"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
	Products []ProductHealth `json:"products"`
}

// BalanceDashboard is the inventory balance view: every product bucketed
// by action status, plus the stocked products with no dated sales at all.
type BalanceDashboard struct {
	StartPersian string          `json:"start_persian"`
	EndPersian   string          `json:"end_persian"`
	DistinctDays int             `json:"distinct_days"`
	Buckets      []StatusBucket  `json:"buckets"`
	ZeroSales    []ProductHealth `json:"zero_sales"`
}
