package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"salescrm/internal/table"
)

// MarketEventAggregator converts validated CRM events into monthly activity
// counts per event type, a monthly total, and trailing moving averages of
// the total (unweighted per window size, weighted per non-empty weight
// sequence).
type MarketEventAggregator struct {
	windows WindowSpec
	digits  int
	logger  *slog.Logger
}

// NewMarketEventAggregator creates the aggregator.
func NewMarketEventAggregator(windows WindowSpec, digits int, logger *slog.Logger) *MarketEventAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketEventAggregator{windows: windows, digits: digits, logger: logger}
}

// Process pivots events into per-month, per-event-type counts (missing
// combinations count as zero) plus an event_count total, then appends the
// trailing-average columns. The frame index is exactly the set of months
// with at least one event.
func (a *MarketEventAggregator) Process(ctx context.Context, crm *table.Table) (*Frame, error) {
	type key struct {
		month time.Time
		event string
	}

	countByEvent := map[key]int{}
	totalByMonth := map[time.Time]int{}
	eventTypes := map[string]struct{}{}
	for i, row := range crm.Rows() {
		date, ok := row["date"].(time.Time)
		if !ok {
			return nil, fmt.Errorf("crm row %d: date is not a validated date", i)
		}
		event, ok := row["event_type"].(string)
		if !ok {
			return nil, fmt.Errorf("crm row %d: event_type is not a validated string", i)
		}

		month := truncateToMonth(date)
		countByEvent[key{month, event}]++
		totalByMonth[month]++
		eventTypes[event] = struct{}{}
	}

	var index []time.Time
	for month := range totalByMonth {
		index = append(index, month)
	}
	frame := NewFrame(index)

	types := make([]string, 0, len(eventTypes))
	for event := range eventTypes {
		types = append(types, event)
	}
	sort.Strings(types)

	for _, event := range types {
		col := frame.AddColumn(strings.ReplaceAll(event, " ", "_"), KindCount)
		for _, month := range frame.Index() {
			col.Set(month, float64(countByEvent[key{month, event}]))
		}
	}

	total := frame.AddColumn("event_count", KindCount)
	for _, month := range frame.Index() {
		total.Set(month, float64(totalByMonth[month]))
	}

	series, _ := frame.Series("event_count")
	for _, size := range a.windows.Sizes() {
		col := frame.AddColumn(fmt.Sprintf("lagged_%d_month_sum_events", size-1), KindRatio)
		rollingMean(frame, col, series, size, a.digits)
	}
	for _, size := range a.windows.Sizes() {
		weights := a.windows[size]
		if len(weights) == 0 {
			continue
		}
		col := frame.AddColumn(fmt.Sprintf("lagged_%d_month_weighted_sum_events", size-1), KindRatio)
		rollingWeightedMean(frame, col, series, weights, a.digits)
	}

	a.logger.InfoContext(ctx, "market events aggregated",
		"months", len(frame.Index()),
		"event_types", len(types),
		"windows", len(a.windows),
	)
	return frame, nil
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
