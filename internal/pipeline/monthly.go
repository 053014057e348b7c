package pipeline

import (
	"time"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

// monthLabel is the "Mon-Year" format the dashboard shows on its time axes.
const monthLabel = "Jan-2006"

// MonthlyBucket is one row of the monthly trends table.
type MonthlyBucket struct {
	Month        string  `json:"month"`
	OrderCount   int     `json:"order_count"`
	Revenue      float64 `json:"revenue"`
	NewCustomers int     `json:"new_customers"`
}

// MonthlySeries buckets the filtered rows by calendar month of the purchase
// timestamp. The series is continuous from the first to the last month in
// the filtered window; months without orders appear with zero counts.
// NewCustomers counts the customers whose first-ever purchase (over the
// entire dataset, not the filtered window) falls in that month.
func (p *Pipeline) MonthlySeries(rows []dataset.Transaction) []MonthlyBucket {
	type monthAgg struct {
		orders  map[string]struct{}
		revenue float64
	}

	buckets := map[time.Time]*monthAgg{}
	var minMonth, maxMonth time.Time
	for _, t := range rows {
		if t.PurchaseTimestamp.IsZero() {
			continue
		}
		m := monthOf(t.PurchaseTimestamp)
		agg, ok := buckets[m]
		if !ok {
			agg = &monthAgg{orders: map[string]struct{}{}}
			buckets[m] = agg
		}
		agg.orders[t.OrderID] = struct{}{}
		agg.revenue += t.PaymentValue
		if minMonth.IsZero() || m.Before(minMonth) {
			minMonth = m
		}
		if m.After(maxMonth) {
			maxMonth = m
		}
	}

	if minMonth.IsZero() {
		return []MonthlyBucket{}
	}

	series := []MonthlyBucket{}
	for m := minMonth; !m.After(maxMonth); m = m.AddDate(0, 1, 0) {
		row := MonthlyBucket{
			Month:        m.Format(monthLabel),
			NewCustomers: p.newCustomersByMonth[m],
		}
		if agg, ok := buckets[m]; ok {
			row.OrderCount = len(agg.orders)
			row.Revenue = agg.revenue
		}
		series = append(series, row)
	}
	return series
}

// Summary are the three headline scalars above the trend charts.
type Summary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCustomers int     `json:"total_customers"`
	TotalOrders    int     `json:"total_orders"`
}

// Summarize folds a monthly series into its headline totals.
func Summarize(series []MonthlyBucket) Summary {
	var s Summary
	for _, b := range series {
		s.TotalRevenue += b.Revenue
		s.TotalCustomers += b.NewCustomers
		s.TotalOrders += b.OrderCount
	}
	return s
}
