package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"salescrm/internal/table"
)

// MarketShareAggregator converts validated sales transactions into the
// tracked product's market-share series with trailing moving averages.
type MarketShareAggregator struct {
	product string
	windows WindowSpec
	digits  int
	logger  *slog.Logger
}

// NewMarketShareAggregator creates the aggregator. product is the tracked
// product whose share is reported; digits is the rounding precision for
// shares and averages.
func NewMarketShareAggregator(product string, windows WindowSpec, digits int, logger *slog.Logger) *MarketShareAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketShareAggregator{product: product, windows: windows, digits: digits, logger: logger}
}

// Process computes, per sale date, each product's fraction of that date's
// total unit sales, keeps the tracked product's series, and appends one
// trailing-average column per configured window size. The frame index is
// exactly the set of dates the tracked product sold on.
func (a *MarketShareAggregator) Process(ctx context.Context, sales *table.Table) (*Frame, error) {
	type key struct {
		date    time.Time
		product string
	}

	salesByProduct := map[key]int64{}
	totalByDate := map[time.Time]int64{}
	for i, row := range sales.Rows() {
		date, ok := row["date"].(time.Time)
		if !ok {
			return nil, fmt.Errorf("sales row %d: date is not a validated date", i)
		}
		product, ok := row["product_name"].(string)
		if !ok {
			return nil, fmt.Errorf("sales row %d: product_name is not a validated string", i)
		}
		units, ok := row["unit_sales"].(int64)
		if !ok {
			return nil, fmt.Errorf("sales row %d: unit_sales is not a validated integer", i)
		}

		day := truncateToDay(date)
		salesByProduct[key{day, product}] += units
		totalByDate[day] += units
	}

	var index []time.Time
	for k := range salesByProduct {
		if k.product == a.product {
			index = append(index, k.date)
		}
	}

	frame := NewFrame(index)
	share := frame.AddColumn("market_share", KindRatio)
	for _, date := range frame.Index() {
		units := salesByProduct[key{date, a.product}]
		// A date with a single product trivially yields a share of 1.
		share.Set(date, round(float64(units)/float64(totalByDate[date]), a.digits))
	}

	series, _ := frame.Series("market_share")
	for _, size := range a.windows.Sizes() {
		col := frame.AddColumn(fmt.Sprintf("lagged_%d_month_avg_market_share", size-1), KindRatio)
		rollingMean(frame, col, series, size, a.digits)
	}

	a.logger.InfoContext(ctx, "market share aggregated",
		"product", a.product,
		"periods", len(frame.Index()),
		"windows", len(a.windows),
	)
	return frame, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
