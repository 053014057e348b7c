package dataset

import (
	"sort"
	"time"
)

// Transaction is one line of the denormalized Olist table: an order line
// joined with customer, payment, review and delivery-timing facts.
type Transaction struct {
	OrderID             string    `json:"order_id"`
	CustomerID          string    `json:"customer_unique_id"`
	PurchaseTimestamp   time.Time `json:"order_purchase_timestamp"`
	ApprovedAt          time.Time `json:"order_approved_at"`
	DeliveredCarrierAt  time.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerAt time.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryAt time.Time `json:"order_estimated_delivery_date"`
	PaymentValue        float64   `json:"payment_value"`
	City                string    `json:"customer_city"`
	State               string    `json:"customer_state"`
	PaymentType         string    `json:"payment_type"`
	ProductCategory     string    `json:"product_category_name_english"`
	ReviewCategory      string    `json:"review_category"`
	ApprovalDays        float64   `json:"approval_time_diff"`
	DeliveryDays        float64   `json:"delivery_time_diff"`
}

// Dataset is an immutable snapshot of the full transaction table, sorted
// ascending by purchase timestamp. Monthly bucketing depends on that order.
type Dataset struct {
	records []Transaction
}

func New(records []Transaction) *Dataset {
	sorted := make([]Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PurchaseTimestamp.Before(sorted[j].PurchaseTimestamp)
	})
	return &Dataset{records: sorted}
}

// Records returns the full sorted table. Callers must not mutate it.
func (d *Dataset) Records() []Transaction {
	return d.records
}

func (d *Dataset) Len() int {
	return len(d.records)
}

// Filter holds the three dashboard filter parameters. Zero dates mean an
// open bound; empty category/state mean no filter.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	Category  string
	State     string
}

func (f Filter) matches(t Transaction) bool {
	if !f.StartDate.IsZero() && t.PurchaseTimestamp.Before(f.StartDate) {
		return false
	}
	// End bound is an inclusive calendar date: the whole end day is in range.
	if !f.EndDate.IsZero() && !t.PurchaseTimestamp.Before(f.EndDate.AddDate(0, 0, 1)) {
		return false
	}
	if f.Category != "" && t.ProductCategory != f.Category {
		return false
	}
	if f.State != "" && t.State != f.State {
		return false
	}
	return true
}

// Filter returns the rows matching f, preserving the dataset's sort order.
func (d *Dataset) Filter(f Filter) []Transaction {
	matched := []Transaction{}
	for _, t := range d.records {
		if f.matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

// FilterOptions lists the values the presentation layer offers in its
// select boxes, plus the purchase-date bounds used as date-input defaults.
type FilterOptions struct {
	Categories []string  `json:"categories"`
	States     []string  `json:"states"`
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
}

func (d *Dataset) Options() FilterOptions {
	opts := FilterOptions{Categories: []string{}, States: []string{}}

	categories := map[string]struct{}{}
	states := map[string]struct{}{}
	for _, t := range d.records {
		if t.ProductCategory != "" {
			categories[t.ProductCategory] = struct{}{}
		}
		if t.State != "" {
			states[t.State] = struct{}{}
		}
	}
	for c := range categories {
		opts.Categories = append(opts.Categories, c)
	}
	for s := range states {
		opts.States = append(opts.States, s)
	}
	sort.Strings(opts.Categories)
	sort.Strings(opts.States)

	if len(d.records) > 0 {
		opts.MinDate = d.records[0].PurchaseTimestamp
		opts.MaxDate = d.records[len(d.records)-1].PurchaseTimestamp
	}
	return opts
}
