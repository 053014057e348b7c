package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
)

// PostgresSource reads the same flat transaction table from a Postgres
// database instead of a CSV file. The table layout mirrors the CSV columns.
type PostgresSource struct {
	db    *sqlx.DB
	table string
}

type transactionRow struct {
	OrderID             string          `db:"order_id"`
	CustomerID          string          `db:"customer_unique_id"`
	PurchaseTimestamp   sql.NullTime    `db:"order_purchase_timestamp"`
	ApprovedAt          sql.NullTime    `db:"order_approved_at"`
	DeliveredCarrierAt  sql.NullTime    `db:"order_delivered_carrier_date"`
	DeliveredCustomerAt sql.NullTime    `db:"order_delivered_customer_date"`
	EstimatedDeliveryAt sql.NullTime    `db:"order_estimated_delivery_date"`
	PaymentValue        sql.NullFloat64 `db:"payment_value"`
	City                sql.NullString  `db:"customer_city"`
	State               sql.NullString  `db:"customer_state"`
	PaymentType         sql.NullString  `db:"payment_type"`
	ProductCategory     sql.NullString  `db:"product_category_name_english"`
	ReviewCategory      sql.NullString  `db:"review_category"`
	ApprovalDays        sql.NullFloat64 `db:"approval_time_diff"`
	DeliveryDays        sql.NullFloat64 `db:"delivery_time_diff"`
}

func NewPostgresSource(db *sqlx.DB, table string) (*PostgresSource, error) {
	if !isValidIdentifier(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	return &PostgresSource{db: db, table: table}, nil
}

func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

// Load reads the whole table into a sorted Dataset.
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	query := fmt.Sprintf(`
	SELECT
		order_id,
		customer_unique_id,
		order_purchase_timestamp,
		order_approved_at,
		order_delivered_carrier_date,
		order_delivered_customer_date,
		order_estimated_delivery_date,
		payment_value,
		customer_city,
		customer_state,
		payment_type,
		product_category_name_english,
		review_category,
		approval_time_diff,
		delivery_time_diff
	FROM %s`, s.table)

	rows := []transactionRow{}
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query transactions table %s: %v", s.table, err)
	}

	records := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toTransaction())
	}
	return New(records), nil
}

func (r transactionRow) toTransaction() Transaction {
	return Transaction{
		OrderID:             r.OrderID,
		CustomerID:          r.CustomerID,
		PurchaseTimestamp:   r.PurchaseTimestamp.Time,
		ApprovedAt:          r.ApprovedAt.Time,
		DeliveredCarrierAt:  r.DeliveredCarrierAt.Time,
		DeliveredCustomerAt: r.DeliveredCustomerAt.Time,
		EstimatedDeliveryAt: r.EstimatedDeliveryAt.Time,
		PaymentValue:        r.PaymentValue.Float64,
		City:                r.City.String,
		State:               r.State.String,
		PaymentType:         r.PaymentType.String,
		ProductCategory:     r.ProductCategory.String,
		ReviewCategory:      r.ReviewCategory.String,
		ApprovalDays:        nullableDays(r.ApprovalDays),
		DeliveryDays:        nullableDays(r.DeliveryDays),
	}
}

func nullableDays(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
