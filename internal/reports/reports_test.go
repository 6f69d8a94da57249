package reports

import (
	"testing"
	"time"

	"github.com/granjalabs/granjapos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)

func costPtr(v float64) *float64 { return &v }

func testProducts() map[string]*domain.Product {
	return ProductIndex([]domain.Product{
		{ID: "p-chicken", Name: "Pechuga de Pollo", Cost: 6.00, Stock: 40},
		{ID: "p-eggs", Name: "Huevo Rosado", Cost: 0.12, Stock: 1000},
	})
}

func orderAt(date time.Time, status string, items ...domain.OrderItem) domain.Order {
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return domain.Order{
		ID:     "o-" + date.Format("0102-150405"),
		Date:   date,
		Status: status,
		Total:  total,
		Items:  items,
	}
}

func TestSummarizeExcludesCancelled(t *testing.T) {
	index := testProducts()
	orders := []domain.Order{
		orderAt(now, domain.OrderStatusDelivered,
			domain.OrderItem{ProductID: "p-chicken", Quantity: 2, CostAtSale: costPtr(6.00), Subtotal: 17.00}),
		orderAt(now, domain.OrderStatusCancelled,
			domain.OrderItem{ProductID: "p-chicken", Quantity: 5, CostAtSale: costPtr(6.00), Subtotal: 42.50}),
	}

	s := Summarize(orders, index, NewRange(FilterToday, now))
	assert.InDelta(t, 17.00, s.Revenue, 1e-9)
	assert.InDelta(t, 12.00, s.COGS, 1e-9)
	assert.InDelta(t, 5.00, s.NetProfit, 1e-9)
	assert.Equal(t, 1, s.OrderCount)
}

func TestSummarizeCostFallbackChain(t *testing.T) {
	index := testProducts()
	orders := []domain.Order{
		orderAt(now, domain.OrderStatusDelivered,
			// frozen cost wins over the catalog's 6.00
			domain.OrderItem{ProductID: "p-chicken", Quantity: 1, CostAtSale: costPtr(5.50), Subtotal: 8.50},
			// legacy record without a frozen cost falls back to current cost
			domain.OrderItem{ProductID: "p-chicken", Quantity: 1, Subtotal: 8.50},
			// missing product with no frozen cost contributes zero
			domain.OrderItem{ProductID: "p-gone", Quantity: 3, Subtotal: 9.00},
		),
	}

	s := Summarize(orders, index, NewRange(FilterAll, now))
	assert.InDelta(t, 5.50+6.00, s.COGS, 1e-9)
}

func TestSummarizeZeroRevenueHasZeroMargin(t *testing.T) {
	s := Summarize(nil, testProducts(), NewRange(FilterAll, now))
	assert.Equal(t, 0.0, s.Revenue)
	assert.Equal(t, 0.0, s.MarginPct)
}

func TestSummarizeInventoryValueIgnoresFilter(t *testing.T) {
	index := testProducts()
	// today filter with no matching orders: valuation still reflects
	// the full current catalog
	s := Summarize(nil, index, NewRange(FilterToday, now))
	assert.InDelta(t, 40*6.00+1000*0.12, s.InventoryValue, 1e-9)
}

func TestRangeToday(t *testing.T) {
	rng := NewRange(FilterToday, now)
	assert.True(t, rng.Contains(now))
	assert.True(t, rng.Contains(midnight(now)))
	assert.True(t, rng.Contains(midnight(now).Add(23*time.Hour+59*time.Minute)))
	assert.False(t, rng.Contains(now.AddDate(0, 0, -1)))
	assert.False(t, rng.Contains(now.AddDate(0, 0, 1)))
}

func TestRangeYesterday(t *testing.T) {
	rng := NewRange(FilterYesterday, now)
	assert.True(t, rng.Contains(now.AddDate(0, 0, -1)))
	assert.False(t, rng.Contains(now))
	assert.False(t, rng.Contains(now.AddDate(0, 0, -2)))
}

func TestRangeWeekIsTrailingSevenDays(t *testing.T) {
	rng := NewRange(FilterWeek, now)
	assert.True(t, rng.Contains(now))
	assert.True(t, rng.Contains(now.AddDate(0, 0, -7)))
	assert.False(t, rng.Contains(now.AddDate(0, 0, -8)))
	// future orders are not cut off by the week filter
	assert.True(t, rng.Contains(now.AddDate(0, 0, 2)))
}

func TestRangeMonthIsTrailingCalendarMonth(t *testing.T) {
	rng := NewRange(FilterMonth, now)
	assert.True(t, rng.Contains(now.AddDate(0, -1, 0)))
	assert.False(t, rng.Contains(now.AddDate(0, -1, -1)))
}

func TestCustomRangeIsInclusiveWholeDays(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.Local) // intra-day times ignored
	end := time.Date(2026, 3, 10, 6, 0, 0, 0, time.Local)
	rng := NewCustomRange(start, end)

	assert.True(t, rng.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, rng.Contains(time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)))
	assert.False(t, rng.Contains(time.Date(2026, 2, 28, 23, 59, 59, 0, time.Local)))
	assert.False(t, rng.Contains(time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)))
}

func TestDailySeriesBucketsAndOrdering(t *testing.T) {
	index := testProducts()
	day1 := time.Date(2026, 3, 13, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	orders := []domain.Order{
		orderAt(day2, domain.OrderStatusDelivered,
			domain.OrderItem{ProductID: "p-chicken", Quantity: 1, CostAtSale: costPtr(6.00), Subtotal: 8.50}),
		orderAt(day1, domain.OrderStatusDelivered,
			domain.OrderItem{ProductID: "p-eggs", Quantity: 12, CostAtSale: costPtr(0.12), Subtotal: 2.16}),
		orderAt(day1.Add(4*time.Hour), domain.OrderStatusDelivered,
			domain.OrderItem{ProductID: "p-eggs", Quantity: 30, CostAtSale: costPtr(0.12), Subtotal: 5.40}),
		orderAt(day1, domain.OrderStatusCancelled,
			domain.OrderItem{ProductID: "p-eggs", Quantity: 100, CostAtSale: costPtr(0.12), Subtotal: 18.00}),
	}

	series := DailySeries(orders, index, NewRange(FilterWeek, now))
	require.Len(t, series, 2)

	assert.Equal(t, "13/03", series[0].Label)
	assert.InDelta(t, 2.16+5.40, series[0].Revenue, 1e-9)
	assert.InDelta(t, (2.16-12*0.12)+(5.40-30*0.12), series[0].Profit, 1e-9)

	assert.Equal(t, "14/03", series[1].Label)
	assert.InDelta(t, 8.50, series[1].Revenue, 1e-9)
}

func TestSeriesStatistics(t *testing.T) {
	series := []DayBucket{
		{Revenue: 10},
		{Revenue: 20},
		{Revenue: 60},
	}
	s := SeriesStatistics(series)
	assert.InDelta(t, 30.0, s.MeanDailyRevenue, 1e-9)
	assert.InDelta(t, 20.0, s.MedianDailyRevenue, 1e-9)

	assert.Equal(t, SeriesStats{}, SeriesStatistics(nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.86, Round2(8.50/2.20462))
	assert.Equal(t, 17.0, Round2(17.004))
}
