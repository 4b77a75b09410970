package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/cost-tracker/internal/handlers"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
)

func NewRouter(deps *handlers.Deps, mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	hh := handlers.NewHealthHandlers(deps)
	ush := handlers.NewUserHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	cth := handlers.NewCategoryHandlers(deps)

	r.Get("/healthz", hh.Health)
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", ush.AuthRoutes(mw.Auth))
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)
			r.Mount("/transactions", txh.TransactionRoutes())
			r.Mount("/categories", cth.CategoryRoutes())
			r.Mount("/subcategories", cth.SubcategoryRoutes())
		})
	})
	return r
}
