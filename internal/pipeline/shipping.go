package pipeline

import (
	"math"
	"sort"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// BoxStats is the five-number summary behind a box plot.
type BoxStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// ApprovalTimeStats summarizes the order approval delay distribution in days.
func ApprovalTimeStats(rows []dataset.Transaction) BoxStats {
	return boxStats(rows, func(t dataset.Transaction) float64 { return t.ApprovalDays })
}

// DeliveryTimeStats summarizes the delivery time distribution in days.
func DeliveryTimeStats(rows []dataset.Transaction) BoxStats {
	return boxStats(rows, func(t dataset.Transaction) float64 { return t.DeliveryDays })
}

// boxStats computes the five-number summary of a numeric column. NaN values
// (rows with missing timestamps upstream) are excluded; an empty sample
// yields the zero value.
func boxStats(rows []dataset.Transaction, value func(dataset.Transaction) float64) BoxStats {
	values := []float64{}
	for _, t := range rows {
		v := value(t)
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return BoxStats{}
	}
	sort.Float64s(values)

	return BoxStats{
		Count:  len(values),
		Min:    values[0],
		Q1:     stat.Quantile(0.25, stat.LinInterp, values, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, values, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, values, nil),
		Max:    values[len(values)-1],
	}
}
