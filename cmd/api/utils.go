package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
)

func parseDateOrDefault(dateStr, defaultStr string) string {
	if dateStr == "" {
		return defaultStr
	}
	return dateStr
}

// filterFromRequest builds the dashboard filter from query parameters.
// Date bounds default to an open range, category and state to no filter.
func filterFromRequest(r *http.Request) (dataset.Filter, error) {
	startParam := parseDateOrDefault(r.URL.Query().Get("start_date"), "2000-01-01")
	endParam := parseDateOrDefault(r.URL.Query().Get("end_date"), "2100-12-31")

	var filter dataset.Filter
	var err error

	filter.StartDate, err = time.Parse("2006-01-02", startParam)
	if err != nil {
		return dataset.Filter{}, fmt.Errorf("invalid start_date: %s", startParam)
	}
	filter.EndDate, err = time.Parse("2006-01-02", endParam)
	if err != nil {
		return dataset.Filter{}, fmt.Errorf("invalid end_date: %s", endParam)
	}

	filter.Category = r.URL.Query().Get("category")
	filter.State = r.URL.Query().Get("state")
	return filter, nil
}

// filteredRows applies the request filter, writing a 400 response on a
// malformed filter. The bool reports whether the caller may proceed.
func (app *application) filteredRows(w http.ResponseWriter, r *http.Request) ([]dataset.Transaction, bool) {
	filter, err := filterFromRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return app.data.Filter(filter), true
}

func limitOrDefault(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}
