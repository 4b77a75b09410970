package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/GregMSThompson/cost-tracker/internal/response"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

const healthTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	DB              pinger
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{ResponseHandler: deps.ResponseHandler, DB: deps.DB}
}

// Health reports 503 when the database does not answer a ping.
func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("database ping failed", "error", err)
		h.ResponseHandler.WriteError(w, r, http.StatusServiceUnavailable, "unavailable", "database unavailable")
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
