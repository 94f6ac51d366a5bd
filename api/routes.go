package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/category"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/dashboard"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/metrics"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage storage.Engine
	Metrics *metrics.Metrics
}

// Router builds the full HTTP surface: operational endpoints on chi and the
// v1 API as huma operations.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	statusHandler := status.NewHandler(r.Storage)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	if r.Metrics != nil {
		router.Handle("/metrics", r.Metrics.Handler())
	}

	api := humachi.New(router, huma.DefaultConfig("Budget Ledger API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	svc := r.Service
	transaction.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewListTransactionsHandler(svc.Transaction).Register(api)
	transaction.NewGetTransactionHandler(svc.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(svc.Transaction).Register(api)

	account.NewListAccountsHandler(svc.Account).Register(api)
	account.NewGetAccountHandler(svc.Account).Register(api)
	account.NewCreateAccountHandler(svc.Account).Register(api)

	dashboard.NewHandler(svc.Dashboard).Register(api)
	category.NewHandler(svc.Category).Register(api)

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
	return nil
}
