// Package reports computes time-windowed financial KPIs from the order and
// product history. Every figure excludes cancelled orders, and the cost side
// always prefers the cost frozen at sale time so historical margins survive
// supplier price changes.
package reports

import (
	"sort"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// DateFilter selects the reporting window relative to "today".
type DateFilter string

const (
	FilterToday     DateFilter = "today"
	FilterYesterday DateFilter = "yesterday"
	FilterWeek      DateFilter = "week"
	FilterMonth     DateFilter = "month"
	FilterCustom    DateFilter = "custom"
	FilterAll       DateFilter = "all"
)

// Range is a resolved date predicate over order timestamps.
type Range struct {
	filter DateFilter
	start  time.Time
	end    time.Time
}

// NewRange resolves a relative filter against now. Week means the trailing
// seven days, month the trailing calendar month, both inclusive of today.
func NewRange(filter DateFilter, now time.Time) Range {
	return Range{filter: filter, start: now, end: now}
}

// NewCustomRange covers the inclusive start–end interval, expanded to whole
// calendar days.
func NewCustomRange(start, end time.Time) Range {
	return Range{filter: FilterCustom, start: start, end: end}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Contains reports whether an order timestamp falls inside the range.
func (r Range) Contains(t time.Time) bool {
	day := midnight(t)
	today := midnight(r.start)
	switch r.filter {
	case FilterToday:
		return day.Equal(today)
	case FilterYesterday:
		return day.Equal(today.AddDate(0, 0, -1))
	case FilterWeek:
		return !day.Before(today.AddDate(0, 0, -7))
	case FilterMonth:
		return !day.Before(today.AddDate(0, -1, 0))
	case FilterCustom:
		start := midnight(r.start)
		end := midnight(r.end).AddDate(0, 0, 1)
		return !t.Before(start) && t.Before(end)
	default: // FilterAll
		return true
	}
}

// Summary holds the headline KPIs for one reporting window. InventoryValue
// is a point-in-time figure and ignores the date filter.
type Summary struct {
	Revenue        float64 `json:"revenue"`
	COGS           float64 `json:"cogs"`
	NetProfit      float64 `json:"net_profit"`
	MarginPct      float64 `json:"margin_pct"`
	InventoryValue float64 `json:"inventory_value"`
	OrderCount     int     `json:"order_count"`
}

// DayBucket is one calendar day of the revenue/profit series.
type DayBucket struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"`
	Revenue float64   `json:"revenue"`
	Profit  float64   `json:"profit"`
}

// SeriesStats summarizes the daily revenue distribution.
type SeriesStats struct {
	MeanDailyRevenue   float64 `json:"mean_daily_revenue"`
	MedianDailyRevenue float64 `json:"median_daily_revenue"`
}

// ProductIndex builds the id → product map used for cost fallback and
// valuation, so consumers never re-scan the product list per lookup.
func ProductIndex(products []domain.Product) map[string]*domain.Product {
	index := make(map[string]*domain.Product, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
	}
	return index
}

// itemCost resolves the unit cost for a sold item: the frozen costAtSale
// when present, the product's current cost for legacy records, zero when
// the product itself no longer exists.
func itemCost(item domain.OrderItem, index map[string]*domain.Product) float64 {
	if item.CostAtSale != nil {
		return *item.CostAtSale
	}
	if p, ok := index[item.ProductID]; ok {
		return p.Cost
	}
	return 0
}

func orderCOGS(o *domain.Order, index map[string]*domain.Product) float64 {
	var cost float64
	for _, item := range o.Items {
		cost += item.Quantity * itemCost(item, index)
	}
	return cost
}

// Summarize computes revenue, COGS, profit and margin over the filtered,
// non-cancelled order set, plus the current inventory valuation.
func Summarize(orders []domain.Order, index map[string]*domain.Product, rng Range) Summary {
	var s Summary
	for i := range orders {
		o := &orders[i]
		if o.Cancelled() || !rng.Contains(o.Date) {
			continue
		}
		s.Revenue += o.Total
		s.COGS += orderCOGS(o, index)
		s.OrderCount++
	}
	s.NetProfit = s.Revenue - s.COGS
	if s.Revenue > 0 {
		s.MarginPct = s.NetProfit / s.Revenue * 100
	}
	for _, p := range index {
		s.InventoryValue += p.Stock * p.Cost
	}
	return s
}

// DailySeries groups filtered, non-cancelled orders by calendar day,
// summing revenue and profit per bucket with the same cost-fallback rule
// as Summarize. Buckets come back in chronological order.
func DailySeries(orders []domain.Order, index map[string]*domain.Product, rng Range) []DayBucket {
	buckets := make(map[time.Time]*DayBucket)
	for i := range orders {
		o := &orders[i]
		if o.Cancelled() || !rng.Contains(o.Date) {
			continue
		}
		day := midnight(o.Date)
		b, ok := buckets[day]
		if !ok {
			b = &DayBucket{Date: day, Label: day.Format("02/01")}
			buckets[day] = b
		}
		b.Revenue += o.Total
		b.Profit += o.Total - orderCOGS(o, index)
	}
	series := make([]DayBucket, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// SeriesStatistics computes mean and median daily revenue over a series.
func SeriesStatistics(series []DayBucket) SeriesStats {
	if len(series) == 0 {
		return SeriesStats{}
	}
	revenues := make([]float64, len(series))
	for i, b := range series {
		revenues[i] = b.Revenue
	}
	mean, _ := stats.Mean(revenues)
	median, _ := stats.Median(revenues)
	return SeriesStats{MeanDailyRevenue: mean, MedianDailyRevenue: median}
}

// Round2 rounds a money figure to cents. Core arithmetic stays unrounded;
// this is applied only at the display and export boundary.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
