package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GregMSThompson/cost-tracker/internal/bootstrap"
	"github.com/GregMSThompson/cost-tracker/internal/config"
	"github.com/GregMSThompson/cost-tracker/internal/crypto"
	"github.com/GregMSThompson/cost-tracker/internal/handlers"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
	"github.com/GregMSThompson/cost-tracker/internal/response"
	"github.com/GregMSThompson/cost-tracker/internal/router"
	"github.com/GregMSThompson/cost-tracker/internal/services"
	"github.com/GregMSThompson/cost-tracker/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	hasher := crypto.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := crypto.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	loc := cfg.Location()

	// stores
	ustore := store.NewUserStore(bs.DB)
	tstore := store.NewTransactionStore(bs.DB)
	cstore := store.NewCategoryStore(bs.DB)

	// services
	userv := services.NewUserService(ustore, hasher, tokens)
	txserv := services.NewTransactionService(tstore, loc)
	anserv := services.NewAnalyticsService(tstore, loc, cfg.ChartWindowDays)
	catserv := services.NewCategoryService(cstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.TransactionSvc = txserv
	deps.AnalyticsSvc = anserv
	deps.CategorySvc = catserv
	deps.DB = bs.DB

	// router
	mw := middleware.NewMiddleware(tokens, rh)
	r := router.NewRouter(deps, mw)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		bs.Log.Info("server listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, bs.Log)
		}
	case <-ctx.Done():
		bs.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("graceful shutdown failed", "error", err)
		}
	}
}
