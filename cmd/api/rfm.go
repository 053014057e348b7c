package main

import (
	"math"
	"net/http"

	"github.com/dewoprasetyo/olist-insights/internal/currency"
	"github.com/dewoprasetyo/olist-insights/internal/pipeline"
	"github.com/dewoprasetyo/olist-insights/internal/response"
)

type RFMSummary struct {
	AvgRecency           float64 `json:"avg_recency"`
	AvgFrequency         float64 `json:"avg_frequency"`
	AvgMonetary          float64 `json:"avg_monetary"`
	AvgMonetaryFormatted string  `json:"avg_monetary_formatted"`
}

type GetRFMResponse = response.APIResponse[[]pipeline.RFMRow]
type GetRFMSummaryResponse = response.APIResponse[RFMSummary]

// @Summary		RFM customer scoring
// @Description	Recency, frequency, monetary values with percentile ranks, composite score and segment per customer.
// @Tags			RFM
// @Produce		json
// @Success		200	{object}	GetRFMResponse
// @Router			/rfm [get]
func (app *application) handleGetRFM(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	response := &GetRFMResponse{
		Success: true,
		Message: "Successfully scored customers",
		Data:    pipeline.RFM(rows),
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		RFM scalar metrics
// @Description	Mean recency (1 decimal), frequency (2 decimals) and monetary (BRL formatted) over the scored customers.
// @Tags			RFM
// @Produce		json
// @Success		200	{object}	GetRFMSummaryResponse
// @Router			/rfm/summary [get]
func (app *application) handleGetRFMSummary(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	avgs := pipeline.Averages(pipeline.RFM(rows))

	response := &GetRFMSummaryResponse{
		Success: true,
		Message: "Successfully computed RFM summary",
		Data: RFMSummary{
			AvgRecency:           math.Round(avgs.Recency*10) / 10,
			AvgFrequency:         math.Round(avgs.Frequency*100) / 100,
			AvgMonetary:          avgs.Monetary,
			AvgMonetaryFormatted: currency.FormatBRL(avgs.Monetary),
		},
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		RFM segment counts
// @Description	Distinct customer count per RFM segment, sorted descending.
// @Tags			RFM
// @Produce		json
// @Success		200	{object}	GetCategoryCountsResponse
// @Router			/rfm/segments [get]
func (app *application) handleGetRFMSegments(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	counts := pipeline.SegmentCounts(pipeline.RFM(rows))
	app.writeCategoryCounts(w, counts, "Successfully counted customers by RFM segment")
}
