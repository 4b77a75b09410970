package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/internal/response"
)

type transactionService interface {
	List(ctx context.Context, uid string, q dto.TransactionQuery) (dto.TransactionListResult, error)
	Create(ctx context.Context, uid string, req dto.TransactionRequest) (*models.Transaction, error)
	Update(ctx context.Context, uid, id string, req dto.TransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, uid, id string) error
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
	AnalyticsSvc    analyticsService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTransactions)
	r.Post("/", h.CreateTransaction)
	r.Post("/add", h.CreateTransaction)
	r.Get("/summary", h.GetSummary) // must be before /{id}
	r.Get("/chart", h.GetChart)
	r.Put("/{id}", h.UpdateTransaction)
	r.Delete("/{id}", h.DeleteTransaction)
	return r
}

func (h *transactionHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	rng, err := dateRangeQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	q := dto.TransactionQuery{Range: rng}
	if typ := r.URL.Query().Get("type"); typ != "" {
		q.Type = &typ
	}

	res, err := h.TransactionSvc.List(r.Context(), middleware.UID(r.Context()), q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *transactionHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	tx, err := h.TransactionSvc.Create(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req dto.TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	tx, err := h.TransactionSvc.Update(r.Context(), middleware.UID(r.Context()), id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.TransactionSvc.Delete(r.Context(), middleware.UID(r.Context()), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
