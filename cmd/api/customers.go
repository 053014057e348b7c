package main

import (
	"net/http"

	"github.com/dewoprasetyo/olist-insights/internal/pipeline"
	"github.com/dewoprasetyo/olist-insights/internal/response"
)

type GetCategoryCountsResponse = response.APIResponse[[]pipeline.CategoryCount]

const (
	defaultCityLimit     = 10
	defaultCategoryLimit = 5
)

func (app *application) writeCategoryCounts(w http.ResponseWriter, counts []pipeline.CategoryCount, message string) {
	response := &GetCategoryCountsResponse{
		Success: true,
		Message: message,
		Data:    counts,
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Customers by city
// @Description	Distinct customer count per city, top N descending.
// @Tags			Customers
// @Produce		json
// @Param			limit	query		int	false	"Number of cities to return (default 10)"
// @Success		200		{object}	GetCategoryCountsResponse
// @Router			/customers/by-city [get]
func (app *application) handleGetCustomersByCity(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	counts := pipeline.TopN(pipeline.CustomersByCity(rows), limitOrDefault(r, defaultCityLimit))
	app.writeCategoryCounts(w, counts, "Successfully counted customers by city")
}

// @Summary		Customers by payment method
// @Tags			Customers
// @Produce		json
// @Success		200	{object}	GetCategoryCountsResponse
// @Router			/customers/by-payment [get]
func (app *application) handleGetCustomersByPayment(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	app.writeCategoryCounts(w, pipeline.CustomersByPayment(rows), "Successfully counted customers by payment type")
}

// @Summary		Customers by product category
// @Description	Distinct customer count per product category, top N descending.
// @Tags			Customers
// @Produce		json
// @Param			limit	query		int	false	"Number of categories to return (default 5)"
// @Success		200		{object}	GetCategoryCountsResponse
// @Router			/customers/by-category [get]
func (app *application) handleGetCustomersByCategory(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	counts := pipeline.TopN(pipeline.CustomersByCategory(rows), limitOrDefault(r, defaultCategoryLimit))
	app.writeCategoryCounts(w, counts, "Successfully counted customers by product category")
}

// @Summary		Customers by review satisfaction
// @Tags			Customers
// @Produce		json
// @Success		200	{object}	GetCategoryCountsResponse
// @Router			/customers/by-review [get]
func (app *application) handleGetCustomersByReview(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	app.writeCategoryCounts(w, pipeline.CustomersByReview(rows), "Successfully counted customers by review category")
}

// @Summary		Purchase frequency segmentation
// @Description	Distinct customer count per order-frequency bucket.
// @Tags			Customers
// @Produce		json
// @Success		200	{object}	GetCategoryCountsResponse
// @Router			/customers/frequency [get]
func (app *application) handleGetPurchaseFrequency(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	app.writeCategoryCounts(w, pipeline.PurchaseFrequency(rows), "Successfully segmented customers by purchase frequency")
}
