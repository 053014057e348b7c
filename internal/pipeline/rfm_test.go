package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

func TestRankPercentiles(t *testing.T) {
	pcts := rankPercentiles([]float64{1, 1, 2}, false)
	// ties share the average rank 1.5, max assigned rank is 3
	want := []float64{50, 50, 100}
	for i := range want {
		if math.Abs(pcts[i]-want[i]) > 1e-9 {
			t.Fatalf("pcts = %v, want %v", pcts, want)
		}
	}

	desc := rankPercentiles([]float64{10, 0, 5}, true)
	// descending: largest value ranks first, so 0 days gets the top percentile
	if desc[1] != 100 {
		t.Fatalf("smallest value must rank highest descending, got %v", desc)
	}
	if desc[0] >= desc[2] {
		t.Fatalf("expected rank order 10 < 5 < 0, got %v", desc)
	}
}

func TestRankPercentilesAllEqual(t *testing.T) {
	pcts := rankPercentiles([]float64{7, 7, 7}, false)
	for _, p := range pcts {
		if p != 100 {
			t.Fatalf("equal values must all hit the max rank, got %v", pcts)
		}
	}
}

func TestRFMSingleCustomerScoresFive(t *testing.T) {
	rows := []dataset.Transaction{tx("o1", "c1", "2018-05-01", 99.9)}
	rfm := RFM(rows)
	if len(rfm) != 1 {
		t.Fatalf("expected one row, got %d", len(rfm))
	}
	r := rfm[0]
	if r.Score != 5.0 {
		t.Fatalf("single customer must score exactly 5.0, got %v", r.Score)
	}
	if r.Segment != SegmentTop {
		t.Fatalf("score 5.0 must be %q, got %q", SegmentTop, r.Segment)
	}
	if r.Recency != 0 {
		t.Fatalf("most recent purchase must have recency 0, got %d", r.Recency)
	}
}

func TestRFMRecencyUsesCalendarDates(t *testing.T) {
	old := tx("o1", "c1", "2018-01-10", 10)
	old.PurchaseTimestamp = old.PurchaseTimestamp.Add(23 * time.Hour)
	recent := tx("o2", "c2", "2018-01-12", 10)
	recent.PurchaseTimestamp = recent.PurchaseTimestamp.Add(1 * time.Hour)

	rfm := RFM([]dataset.Transaction{old, recent})
	if rfm[0].Recency != 2 {
		t.Fatalf("recency must diff truncated dates (2 days), got %d", rfm[0].Recency)
	}
}

func TestRFMWeighting(t *testing.T) {
	// five customers; c1 is the most recent buyer but has the lowest
	// frequency and monetary values
	rows := []dataset.Transaction{
		tx("a1", "c1", "2018-06-30", 1),

		tx("b1", "c2", "2018-06-01", 100),
		tx("b2", "c2", "2018-06-02", 100),

		tx("d1", "c3", "2018-05-01", 200),
		tx("d2", "c3", "2018-05-02", 200),
		tx("d3", "c3", "2018-05-03", 200),

		tx("e1", "c4", "2018-04-01", 300),
		tx("e2", "c4", "2018-04-02", 300),
		tx("e3", "c4", "2018-04-03", 300),
		tx("e4", "c4", "2018-04-04", 300),

		tx("f1", "c5", "2018-03-01", 400),
		tx("f2", "c5", "2018-03-02", 400),
		tx("f3", "c5", "2018-03-03", 400),
		tx("f4", "c5", "2018-03-04", 400),
		tx("f5", "c5", "2018-03-05", 400),
	}

	rfm := RFM(rows)
	byID := map[string]RFMRow{}
	for _, r := range rfm {
		byID[r.CustomerID] = r
	}

	c1 := byID["c1"]
	if c1.RecencyPct != 100 {
		t.Fatalf("most recent buyer must have recency pct 100, got %v", c1.RecencyPct)
	}
	if c1.FrequencyPct != 20 || c1.MonetaryPct != 20 {
		t.Fatalf("lowest frequency/monetary must rank 1 of 5 (pct 20), got f=%v m=%v",
			c1.FrequencyPct, c1.MonetaryPct)
	}
	// 0.05 * (0.20*100 + 0.40*20 + 0.40*20) = 1.8: a perfect recency alone
	// contributes at most 1.0 to the composite
	if c1.Score != 1.8 {
		t.Fatalf("expected score 1.8, got %v", c1.Score)
	}

	// monetary percentiles are monotone in the underlying value
	for _, pair := range [][2]string{{"c5", "c4"}, {"c4", "c3"}, {"c3", "c2"}, {"c2", "c1"}} {
		hi, lo := byID[pair[0]], byID[pair[1]]
		if hi.MonetaryPct < lo.MonetaryPct {
			t.Fatalf("monetary pct not monotone: %s=%v < %s=%v",
				pair[0], hi.MonetaryPct, pair[1], lo.MonetaryPct)
		}
	}
}

func TestRFMScoreBounds(t *testing.T) {
	rows := []dataset.Transaction{
		tx("o1", "c1", "2018-01-01", 5),
		tx("o2", "c2", "2018-02-01", 50),
		tx("o3", "c3", "2018-03-01", 500),
		tx("o4", "c3", "2018-03-02", 500),
	}
	for _, r := range RFM(rows) {
		if r.Score < 0 || r.Score > 5 {
			t.Fatalf("score out of [0,5]: %+v", r)
		}
		if r.Segment == "" {
			t.Fatalf("segment must always be assigned: %+v", r)
		}
	}
}

func TestSegmentFor(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{5.0, SegmentTop},
		{4.51, SegmentTop},
		{4.5, SegmentHigh}, // strict threshold
		{4.1, SegmentHigh},
		{4.0, SegmentMedium},
		{3.5, SegmentMedium},
		{3.0, SegmentLow},
		{1.61, SegmentLow},
		{1.6, SegmentLost},
		{0, SegmentLost},
	}
	for _, tc := range cases {
		if got := segmentFor(tc.score); got != tc.want {
			t.Fatalf("segmentFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSegmentCountsPartitionCustomers(t *testing.T) {
	rows := []dataset.Transaction{
		tx("o1", "c1", "2018-01-01", 5),
		tx("o2", "c2", "2018-02-01", 50),
		tx("o3", "c3", "2018-03-01", 500),
	}
	rfm := RFM(rows)
	counts := SegmentCounts(rfm)

	total := 0
	for _, c := range counts {
		total += c.CustomerCount
	}
	if total != len(rfm) {
		t.Fatalf("segment counts sum to %d, want %d", total, len(rfm))
	}
	for i := 1; i < len(counts); i++ {
		if counts[i].CustomerCount > counts[i-1].CustomerCount {
			t.Fatalf("segment counts not sorted descending: %+v", counts)
		}
	}
}

func TestAverages(t *testing.T) {
	rfm := []RFMRow{
		{Recency: 2, Frequency: 1, Monetary: 10},
		{Recency: 4, Frequency: 3, Monetary: 30},
	}
	avgs := Averages(rfm)
	if avgs.Recency != 3 || avgs.Frequency != 2 || avgs.Monetary != 20 {
		t.Fatalf("unexpected averages: %+v", avgs)
	}

	if zero := Averages(nil); zero != (RFMAverages{}) {
		t.Fatalf("empty table must yield zeros, got %+v", zero)
	}
}

func TestRFMEmptyInput(t *testing.T) {
	if rows := RFM(nil); len(rows) != 0 {
		t.Fatalf("expected empty table, got %+v", rows)
	}
}
