package handlers

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
)

type analyticsService interface {
	ComputeSummary(ctx context.Context, uid string, r dto.DateRange) (dto.SummaryResult, error)
	BuildChartSeries(ctx context.Context, uid string, r dto.DateRange) (dto.ChartResult, error)
}

func (h *transactionHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := dateRangeQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.AnalyticsSvc.ComputeSummary(r.Context(), middleware.UID(r.Context()), rng)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *transactionHandlers) GetChart(w http.ResponseWriter, r *http.Request) {
	rng, err := dateRangeQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.AnalyticsSvc.BuildChartSeries(r.Context(), middleware.UID(r.Context()), rng)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
