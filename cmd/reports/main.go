// Command reports runs the order tracking and inventory balance reports
// against local snapshot files, without the HTTP server.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/beniamp/orders-tracking/internal/export"
	"github.com/beniamp/orders-tracking/internal/report"
	"github.com/beniamp/orders-tracking/internal/restock"
	"github.com/beniamp/orders-tracking/internal/snapshot"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const dateLayout = "2006-01-02"

func newOrdersFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "orders",
		Usage:   "Path to the Orders snapshot (csv or xlsx)",
		Value:   "./data/Orders.csv",
		EnvVars: []string{"SNAPSHOT_ORDERS_PATH"},
	}
}

func newRangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start", Usage: "Range start (Gregorian YYYY-MM-DD), defaults to first dated row"},
		&cli.StringFlag{Name: "end", Usage: "Range end (Gregorian YYYY-MM-DD), defaults to last dated row"},
		&cli.StringFlag{Name: "category", Usage: "Category filter", Value: domain.AllCategories},
	}
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env file")
	}

	app := &cli.App{
		Name:  "reports",
		Usage: "Offline order tracking and inventory balance reports",
		Commands: []*cli.Command{
			{
				Name:  "summary",
				Usage: "Comparative period summary with growth percentages",
				Flags: append([]cli.Flag{
					newOrdersFlag(),
					&cli.IntFlag{Name: "shadows", Usage: "Number of historical shadow ranges", Value: 1},
				}, newRangeFlags()...),
				Action: runSummary,
			},
			{
				Name:  "balance",
				Usage: "Restock classification buckets",
				Flags: append([]cli.Flag{
					newOrdersFlag(),
					&cli.StringFlag{
						Name:    "stocks",
						Usage:   "Path to the Stocks snapshot (csv or xlsx)",
						Value:   "./data/Stocks.csv",
						EnvVars: []string{"SNAPSHOT_STOCKS_PATH"},
					},
					&cli.StringFlag{Name: "brand", Usage: "Brand filter", Value: domain.AllBrands},
					&cli.StringFlag{Name: "out", Usage: "Write the report as an XLSX workbook to this path"},
				}, newRangeFlags()...),
				Action: runBalance,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("report failed")
	}
}

func resolveRange(c *cli.Context, orders []domain.OrderRecord) (calendar.Range, error) {
	dates := report.AvailableDates(orders)
	if len(dates) == 0 {
		return calendar.Range{}, fmt.Errorf("orders snapshot has no dated rows")
	}

	first, err := calendar.ParsePersian(dates[0])
	if err != nil {
		return calendar.Range{}, err
	}
	last, err := calendar.ParsePersian(dates[len(dates)-1])
	if err != nil {
		return calendar.Range{}, err
	}

	start := first.ToGregorian()
	end := last.ToGregorian()

	if raw := strings.TrimSpace(c.String("start")); raw != "" {
		start, err = time.Parse(dateLayout, raw)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if raw := strings.TrimSpace(c.String("end")); raw != "" {
		end, err = time.Parse(dateLayout, raw)
		if err != nil {
			return calendar.Range{}, fmt.Errorf("invalid --end: %w", err)
		}
	}

	return calendar.NewRange(start, end)
}

func runSummary(c *cli.Context) error {
	orders, err := snapshot.LoadOrders(c.String("orders"))
	if err != nil {
		return err
	}

	rng, err := resolveRange(c, orders)
	if err != nil {
		return err
	}

	filter := domain.Filter{Category: c.String("category")}
	result, err := report.Compare(orders, rng, filter, c.Int("shadows"))
	if err != nil {
		return err
	}

	fmt.Printf("Period: %s to %s (%d days)\n", result.Current.StartPersian, result.Current.EndPersian, result.Days)
	fmt.Printf("Previous: %s to %s\n", result.Previous.StartPersian, result.Previous.EndPersian)
	fmt.Printf("Quantity:  %d (%.2f%%)\n", result.Current.Quantity, result.Growth.Quantity)
	fmt.Printf("Price:     %.0f (%.2f%%)\n", result.Current.TotalPrice, result.Growth.TotalPrice)
	fmt.Printf("Net price: %.0f (%.2f%%)\n", result.Current.TotalNetPrice, result.Growth.TotalNetPrice)

	fmt.Println("\nTrend (oldest first):")
	for _, shadow := range result.Shadows {
		fmt.Printf("  %s .. %s  qty=%d price=%.0f\n", shadow.StartPersian, shadow.EndPersian, shadow.Quantity, shadow.TotalPrice)
	}
	return nil
}

func runBalance(c *cli.Context) error {
	orders, err := snapshot.LoadOrders(c.String("orders"))
	if err != nil {
		return err
	}
	stocks, err := snapshot.LoadStocks(c.String("stocks"))
	if err != nil {
		return err
	}

	rng, err := resolveRange(c, orders)
	if err != nil {
		return err
	}

	filter := domain.Filter{Category: c.String("category"), Brand: c.String("brand")}
	dash := restock.BuildDashboard(orders, stocks, rng, filter)

	fmt.Printf("Period: %s to %s, %d distinct order days\n\n", dash.StartPersian, dash.EndPersian, dash.DistinctDays)
	for _, bucket := range dash.Buckets {
		fmt.Printf("%-24s %4d products\n", bucket.Label, bucket.Count)
	}
	fmt.Printf("%-24s %4d products\n", "Zero sales, stock held", len(dash.ZeroSales))

	if out := strings.TrimSpace(c.String("out")); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()

		if err := export.WriteBalanceWorkbook(f, dash); err != nil {
			return err
		}
		log.Info().Str("path", out).Msg("wrote balance workbook")
	}
	return nil
}
