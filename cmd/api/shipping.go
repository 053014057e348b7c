package main

import (
	"net/http"

	"github.com/dewoprasetyo/olist-insights/internal/pipeline"
	"github.com/dewoprasetyo/olist-insights/internal/response"
)

type ShippingTimes struct {
	Approval pipeline.BoxStats `json:"approval"`
	Delivery pipeline.BoxStats `json:"delivery"`
}

type GetShippingTimesResponse = response.APIResponse[ShippingTimes]

// @Summary		Shipping time distributions
// @Description	Five-number summaries of the approval and delivery delay distributions, in days.
// @Tags			Shipping
// @Produce		json
// @Success		200	{object}	GetShippingTimesResponse
// @Router			/shipping/times [get]
func (app *application) handleGetShippingTimes(w http.ResponseWriter, r *http.Request) {
	rows, ok := app.filteredRows(w, r)
	if !ok {
		return
	}

	response := &GetShippingTimesResponse{
		Success: true,
		Message: "Successfully computed shipping time distributions",
		Data: ShippingTimes{
			Approval: pipeline.ApprovalTimeStats(rows),
			Delivery: pipeline.DeliveryTimeStats(rows),
		},
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
