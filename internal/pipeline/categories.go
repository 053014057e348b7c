package pipeline

import (
	"sort"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

// CustomersByCity counts distinct customers per customer city.
func CustomersByCity(rows []dataset.Transaction) []CategoryCount {
	return countDistinctCustomers(rows, func(t dataset.Transaction) string { return t.City })
}

// CustomersByPayment counts distinct customers per payment type.
func CustomersByPayment(rows []dataset.Transaction) []CategoryCount {
	return countDistinctCustomers(rows, func(t dataset.Transaction) string { return t.PaymentType })
}

// CustomersByCategory counts distinct customers per product category.
func CustomersByCategory(rows []dataset.Transaction) []CategoryCount {
	return countDistinctCustomers(rows, func(t dataset.Transaction) string { return t.ProductCategory })
}

// CustomersByReview counts distinct customers per review category, sorted
// descending by count.
func CustomersByReview(rows []dataset.Transaction) []CategoryCount {
	counts := countDistinctCustomers(rows, func(t dataset.Transaction) string { return t.ReviewCategory })
	sortByCountDesc(counts)
	return counts
}

// TopN returns the n largest groups by customer count. The input is not
// modified.
func TopN(counts []CategoryCount, n int) []CategoryCount {
	sorted := make([]CategoryCount, len(counts))
	copy(sorted, counts)
	sortByCountDesc(sorted)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func sortedCounts(groups map[string]map[string]struct{}) []CategoryCount {
	counts := make([]CategoryCount, 0, len(groups))
	for k, customers := range groups {
		counts = append(counts, CategoryCount{Category: k, CustomerCount: len(customers)})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Category < counts[j].Category
	})
	return counts
}

// sortByCountDesc sorts in place, descending by count. The sort is stable
// so groups with equal counts keep their key order.
func sortByCountDesc(counts []CategoryCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].CustomerCount > counts[j].CustomerCount
	})
}
