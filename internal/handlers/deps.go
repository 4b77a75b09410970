package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/cost-tracker/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	TransactionSvc  transactionService
	AnalyticsSvc    analyticsService
	CategorySvc     categoryService
	DB              pinger
}
