package main

import (
	"net/http"

	"github.com/dewoprasetyo/olist-insights/internal/currency"
	"github.com/dewoprasetyo/olist-insights/internal/dataset"
	"github.com/dewoprasetyo/olist-insights/internal/pipeline"
	"github.com/dewoprasetyo/olist-insights/internal/response"
)

type DashboardSummary struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalRevenueFormatted string  `json:"total_revenue_formatted"`
	TotalCustomers        int     `json:"total_customers"`
	TotalOrders           int     `json:"total_orders"`
}

type GetSummaryResponse = response.APIResponse[DashboardSummary]
type GetMonthlyTrendsResponse = response.APIResponse[[]pipeline.MonthlyBucket]
type GetFilterOptionsResponse = response.APIResponse[dataset.FilterOptions]

// @Summary		Dashboard headline metrics
// @Description	Total revenue (BRL formatted), new customers and orders for the filtered window.
// @Tags			Metrics
// @Produce		json
// @Param			start_date	query		string	false	"Start date for filtering (YYYY-MM-DD)"
// @Param			end_date	query		string	false	"End date for filtering (YYYY-MM-DD)"
// @Param			category	query		string	false	"Exact product category filter"
// @Param			state		query		string	false	"Exact customer state filter"
// @Success		200			{object}	GetSummaryResponse
// @Router			/metrics/summary [get]
func (app *application) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	totals := pipeline.Summarize(app.pipeline.MonthlySeries(rows))

	response := &GetSummaryResponse{
		Success: true,
		Message: "Successfully computed dashboard summary",
		Data: DashboardSummary{
			TotalRevenue:          totals.TotalRevenue,
			TotalRevenueFormatted: currency.FormatBRL(totals.TotalRevenue),
			TotalCustomers:        totals.TotalCustomers,
			TotalOrders:           totals.TotalOrders,
		},
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Monthly trends
// @Description	Order count, revenue and new-customer count per calendar month of the filtered window.
// @Tags			Metrics
// @Produce		json
// @Success		200	{object}	GetMonthlyTrendsResponse
// @Router			/trends/monthly [get]
func (app *application) handleGetMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	response := &GetMonthlyTrendsResponse{
		Success: true,
		Message: "Successfully computed monthly trends",
		Data:    app.pipeline.MonthlySeries(rows),
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Filter options
// @Description	Distinct product categories, customer states and the purchase-date bounds of the dataset.
// @Tags			Metrics
// @Produce		json
// @Success		200	{object}	GetFilterOptionsResponse
// @Router			/filters/options [get]
func (app *application) handleGetFilterOptions(w http.ResponseWriter, r *http.Request) {
	response := &GetFilterOptionsResponse{
		Success: true,
		Message: "Successfully listed filter options",
		Data:    app.data.Options(),
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
