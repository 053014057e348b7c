package dataset

import (
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func rowToTransaction(df dataframe.DataFrame, rowIdx int) Transaction {
	return Transaction{
		OrderID:             getStr("order_id", rowIdx, &df),
		CustomerID:          getStr("customer_unique_id", rowIdx, &df),
		PurchaseTimestamp:   getTime("order_purchase_timestamp", rowIdx, &df),
		ApprovedAt:          getTime("order_approved_at", rowIdx, &df),
		DeliveredCarrierAt:  getTime("order_delivered_carrier_date", rowIdx, &df),
		DeliveredCustomerAt: getTime("order_delivered_customer_date", rowIdx, &df),
		EstimatedDeliveryAt: getTime("order_estimated_delivery_date", rowIdx, &df),
		PaymentValue:        getFloat("payment_value", rowIdx, &df),
		City:                getStr("customer_city", rowIdx, &df),
		State:               getStr("customer_state", rowIdx, &df),
		PaymentType:         getStr("payment_type", rowIdx, &df),
		ProductCategory:     getStr("product_category_name_english", rowIdx, &df),
		ReviewCategory:      getStr("review_category", rowIdx, &df),
		ApprovalDays:        getNaNFloat("approval_time_diff", rowIdx, &df),
		DeliveryDays:        getNaNFloat("delivery_time_diff", rowIdx, &df),
	}
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

func getStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if !containsString(df.Names(), col) {
		return ""
	}
	val := df.Col(col).Elem(rowIdx).String()
	if val == "NaN" {
		return ""
	}
	return val
}

// getFloat returns 0 for missing or unparseable values. Used for payment
// amounts, where a missing line contributes nothing to sums.
func getFloat(col string, rowIdx int, df *dataframe.DataFrame) float64 {
	val := getNaNFloat(col, rowIdx, df)
	if math.IsNaN(val) {
		return 0
	}
	return val
}

// getNaNFloat returns NaN for missing or unparseable values. Used for the
// precomputed elapsed-time columns, where missing timestamps must stay
// undefined rather than collapse to zero days.
func getNaNFloat(col string, rowIdx int, df *dataframe.DataFrame) float64 {
	if !containsString(df.Names(), col) {
		return math.NaN()
	}
	return df.Col(col).Elem(rowIdx).Float()
}

// getTime parses a timestamp column, returning the zero time for missing
// or malformed values so they propagate as undefined through date math.
func getTime(col string, rowIdx int, df *dataframe.DataFrame) time.Time {
	raw := getStr(col, rowIdx, df)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
