package pipeline

import (
	"testing"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

func cityTx(order, customer, city string) dataset.Transaction {
	t := tx(order, customer, "2018-01-01", 1)
	t.City = city
	return t
}

func TestCustomersByCityCountsDistinct(t *testing.T) {
	rows := []dataset.Transaction{
		cityTx("o1", "c1", "sao paulo"),
		cityTx("o2", "c1", "sao paulo"), // same customer again
		cityTx("o3", "c2", "sao paulo"),
		cityTx("o4", "c3", "rio de janeiro"),
	}
	counts := CustomersByCity(rows)
	if len(counts) != 2 {
		t.Fatalf("expected 2 cities, got %+v", counts)
	}
	// groups come back sorted by key
	if counts[0].Category != "rio de janeiro" || counts[0].CustomerCount != 1 {
		t.Fatalf("unexpected first group: %+v", counts)
	}
	if counts[1].Category != "sao paulo" || counts[1].CustomerCount != 2 {
		t.Fatalf("distinct customers per city wrong: %+v", counts)
	}
}

func TestCustomersByCategoryDropsMissing(t *testing.T) {
	with := tx("o1", "c1", "2018-01-01", 1)
	with.ProductCategory = "toys"
	without := tx("o2", "c2", "2018-01-02", 1)

	counts := CustomersByCategory([]dataset.Transaction{with, without})
	if len(counts) != 1 || counts[0].Category != "toys" {
		t.Fatalf("rows without a category must be dropped: %+v", counts)
	}
}

func TestCustomersByReviewSortedDescending(t *testing.T) {
	review := func(order, customer, cat string) dataset.Transaction {
		tr := tx(order, customer, "2018-01-01", 1)
		tr.ReviewCategory = cat
		return tr
	}
	rows := []dataset.Transaction{
		review("o1", "c1", "Satisfied"),
		review("o2", "c2", "Satisfied"),
		review("o3", "c3", "Not Satisfied"),
	}
	counts := CustomersByReview(rows)
	if counts[0].Category != "Satisfied" || counts[0].CustomerCount != 2 {
		t.Fatalf("expected Satisfied first, got %+v", counts)
	}
}

func TestTopN(t *testing.T) {
	counts := []CategoryCount{
		{Category: "a", CustomerCount: 1},
		{Category: "b", CustomerCount: 5},
		{Category: "c", CustomerCount: 3},
	}
	top := TopN(counts, 2)
	if len(top) != 2 || top[0].Category != "b" || top[1].Category != "c" {
		t.Fatalf("unexpected top 2: %+v", top)
	}
	// input order untouched
	if counts[0].Category != "a" {
		t.Fatalf("TopN must not reorder its input: %+v", counts)
	}

	if got := TopN(counts, 10); len(got) != 3 {
		t.Fatalf("n beyond length returns everything, got %+v", got)
	}
}

func TestCategoryAggregatorsEmptyInput(t *testing.T) {
	if counts := CustomersByPayment(nil); len(counts) != 0 {
		t.Fatalf("expected empty result, got %+v", counts)
	}
}
