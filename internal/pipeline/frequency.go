package pipeline

import (
	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

// Purchase-frequency bucket labels. The thresholds are mutually exclusive
// and exhaustive: every customer in the table has at least one order.
const (
	BucketOnce      = "1 time"
	BucketUpToFive  = "2 to 5 times"
	BucketMoreThan5 = "more than 5 times"
)

func frequencyBucket(orderCount int) string {
	switch {
	case orderCount > 5:
		return BucketMoreThan5
	case orderCount >= 2:
		return BucketUpToFive
	default:
		return BucketOnce
	}
}

// PurchaseFrequency counts distinct orders per customer, classifies each
// customer into a frequency bucket and returns the distinct customer count
// per bucket, sorted descending.
func PurchaseFrequency(rows []dataset.Transaction) []CategoryCount {
	ordersByCustomer := map[string]map[string]struct{}{}
	for _, t := range rows {
		if t.CustomerID == "" {
			continue
		}
		if ordersByCustomer[t.CustomerID] == nil {
			ordersByCustomer[t.CustomerID] = map[string]struct{}{}
		}
		ordersByCustomer[t.CustomerID][t.OrderID] = struct{}{}
	}

	groups := map[string]map[string]struct{}{}
	for customer, orders := range ordersByCustomer {
		bucket := frequencyBucket(len(orders))
		if groups[bucket] == nil {
			groups[bucket] = map[string]struct{}{}
		}
		groups[bucket][customer] = struct{}{}
	}

	counts := sortedCounts(groups)
	sortByCountDesc(counts)
	return counts
}
