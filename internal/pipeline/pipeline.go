// Package pipeline holds the pure transforms that turn a filtered slice of
// the transaction table into the derived tables the dashboard renders. Every
// transform allocates a fresh result and never mutates its input.
package pipeline

import (
	"time"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

// CategoryCount is one row of a category → distinct-customer-count table.
type CategoryCount struct {
	Category      string `json:"category"`
	CustomerCount int    `json:"customer_count"`
}

// Pipeline carries the one piece of global state the transforms need: the
// first-purchase month of every customer, indexed over the FULL dataset.
// New-customer counts always refer to a customer's absolute first purchase
// in the entire table, so narrowing a filter never relabels a returning
// customer as new.
type Pipeline struct {
	newCustomersByMonth map[time.Time]int
	totalCustomers      int
}

// New builds a pipeline from the full, unfiltered dataset.
func New(full []dataset.Transaction) *Pipeline {
	firstPurchase := map[string]time.Time{}
	for _, t := range full {
		if t.CustomerID == "" || t.PurchaseTimestamp.IsZero() {
			continue
		}
		cur, ok := firstPurchase[t.CustomerID]
		if !ok || t.PurchaseTimestamp.Before(cur) {
			firstPurchase[t.CustomerID] = t.PurchaseTimestamp
		}
	}

	byMonth := map[time.Time]int{}
	for _, ts := range firstPurchase {
		byMonth[monthOf(ts)]++
	}

	return &Pipeline{
		newCustomersByMonth: byMonth,
		totalCustomers:      len(firstPurchase),
	}
}

// TotalCustomers is the distinct customer count of the full dataset.
func (p *Pipeline) TotalCustomers() int {
	return p.totalCustomers
}

// monthOf normalizes a timestamp to its calendar-month bucket.
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// countDistinctCustomers groups rows by key and counts distinct customers
// per group. Rows with an empty key are dropped, matching how the source
// data treats missing categories. Groups come back sorted by key.
func countDistinctCustomers(rows []dataset.Transaction, key func(dataset.Transaction) string) []CategoryCount {
	groups := map[string]map[string]struct{}{}
	for _, t := range rows {
		k := key(t)
		if k == "" {
			continue
		}
		if groups[k] == nil {
			groups[k] = map[string]struct{}{}
		}
		groups[k][t.CustomerID] = struct{}{}
	}
	return sortedCounts(groups)
}
