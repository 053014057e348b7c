package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// RFM segment labels, from best to worst.
const (
	SegmentTop    = "Top customers"
	SegmentHigh   = "High value customer"
	SegmentMedium = "Medium value customer"
	SegmentLow    = "Low value customers"
	SegmentLost   = "Lost customers"
)

// RFMRow is one customer's scored entry in the RFM table.
type RFMRow struct {
	CustomerID   string  `json:"customer_id"`
	Recency      int     `json:"recency"`
	Frequency    int     `json:"frequency"`
	Monetary     float64 `json:"monetary"`
	RecencyPct   float64 `json:"recency_rank_pct"`
	FrequencyPct float64 `json:"frequency_rank_pct"`
	MonetaryPct  float64 `json:"monetary_rank_pct"`
	Score        float64 `json:"rfm_score"`
	Segment      string  `json:"customer_segment"`
}

// RFM scores every customer in the filtered rows.
//
// Recency is the whole-day gap between a customer's latest purchase date and
// the latest purchase date in the filtered set (dates, not timestamps, so a
// same-day purchase is recency zero). Frequency is the distinct order count,
// monetary the summed payment value. Each dimension is fractional-rank
// transformed (ties get the average rank, recency ranked descending so the
// most recent customer ranks highest), normalized to 0-100 by the maximum
// rank, and combined as 0.05*(0.20*R + 0.40*F + 0.40*M).
func RFM(rows []dataset.Transaction) []RFMRow {
	type customerAgg struct {
		lastPurchase time.Time
		orders       map[string]struct{}
		monetary     float64
	}

	byCustomer := map[string]*customerAgg{}
	var recentDate time.Time
	for _, t := range rows {
		if t.CustomerID == "" {
			continue
		}
		agg, ok := byCustomer[t.CustomerID]
		if !ok {
			agg = &customerAgg{orders: map[string]struct{}{}}
			byCustomer[t.CustomerID] = agg
		}
		agg.orders[t.OrderID] = struct{}{}
		agg.monetary += t.PaymentValue
		if t.PurchaseTimestamp.After(agg.lastPurchase) {
			agg.lastPurchase = t.PurchaseTimestamp
		}
		if t.PurchaseTimestamp.After(recentDate) {
			recentDate = t.PurchaseTimestamp
		}
	}
	if len(byCustomer) == 0 {
		return []RFMRow{}
	}
	recentDay := dateOf(recentDate)

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]RFMRow, len(ids))
	recency := make([]float64, len(ids))
	frequency := make([]float64, len(ids))
	monetary := make([]float64, len(ids))
	for i, id := range ids {
		agg := byCustomer[id]
		days := int(recentDay.Sub(dateOf(agg.lastPurchase)).Hours() / 24)
		result[i] = RFMRow{
			CustomerID: id,
			Recency:    days,
			Frequency:  len(agg.orders),
			Monetary:   round2(agg.monetary),
		}
		recency[i] = float64(days)
		frequency[i] = float64(len(agg.orders))
		monetary[i] = agg.monetary
	}

	rPct := rankPercentiles(recency, true)
	fPct := rankPercentiles(frequency, false)
	mPct := rankPercentiles(monetary, false)

	for i := range result {
		result[i].RecencyPct = round2(rPct[i])
		result[i].FrequencyPct = round2(fPct[i])
		result[i].MonetaryPct = round2(mPct[i])
		score := round2(0.05 * (0.20*rPct[i] + 0.40*fPct[i] + 0.40*mPct[i]))
		result[i].Score = score
		result[i].Segment = segmentFor(score)
	}
	return result
}

// segmentFor maps a composite score to its segment. Thresholds are strict
// and evaluated top down, so the function is total with no gaps or overlaps.
func segmentFor(score float64) string {
	switch {
	case score > 4.5:
		return SegmentTop
	case score > 4.0:
		return SegmentHigh
	case score > 3.0:
		return SegmentMedium
	case score > 1.6:
		return SegmentLow
	default:
		return SegmentLost
	}
}

// SegmentCounts groups an RFM table by segment label and counts customers,
// sorted descending.
func SegmentCounts(rfm []RFMRow) []CategoryCount {
	groups := map[string]map[string]struct{}{}
	for _, row := range rfm {
		if groups[row.Segment] == nil {
			groups[row.Segment] = map[string]struct{}{}
		}
		groups[row.Segment][row.CustomerID] = struct{}{}
	}
	counts := sortedCounts(groups)
	sortByCountDesc(counts)
	return counts
}

// RFMAverages are the scalar metrics shown next to the segmentation chart.
type RFMAverages struct {
	Recency   float64 `json:"avg_recency"`
	Frequency float64 `json:"avg_frequency"`
	Monetary  float64 `json:"avg_monetary"`
}

// Averages computes mean recency, frequency and monetary over an RFM table.
// An empty table yields zeros.
func Averages(rfm []RFMRow) RFMAverages {
	if len(rfm) == 0 {
		return RFMAverages{}
	}
	recency := make([]float64, len(rfm))
	frequency := make([]float64, len(rfm))
	monetary := make([]float64, len(rfm))
	for i, row := range rfm {
		recency[i] = float64(row.Recency)
		frequency[i] = float64(row.Frequency)
		monetary[i] = row.Monetary
	}
	return RFMAverages{
		Recency:   stat.Mean(recency, nil),
		Frequency: stat.Mean(frequency, nil),
		Monetary:  stat.Mean(monetary, nil),
	}
}

// rankPercentiles fractional-ranks values (ties share the average of their
// positions) and scales by the maximum rank to a 0-100 percentile. With
// descending=true the largest value gets rank 1, so for recency fewer days
// since purchase means a higher percentile.
func rankPercentiles(values []float64, descending bool) []float64 {
	n := len(values)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if descending {
			return values[order[a]] > values[order[b]]
		}
		return values[order[a]] < values[order[b]]
	})

	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// positions i..j are a tie group; average their 1-based ranks
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}

	// Normalize by the maximum assigned rank, not n: a tie group at the
	// top shares an averaged rank below n and must still map to 100.
	maxRank := ranks[0]
	for _, r := range ranks[1:] {
		if r > maxRank {
			maxRank = r
		}
	}
	pcts := make([]float64, n)
	for i, r := range ranks {
		pcts[i] = r / maxRank * 100
	}
	return pcts
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
