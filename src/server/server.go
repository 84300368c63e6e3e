package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"portfoliotracker/src/handler"
	"portfoliotracker/src/repository"
)

// requestID tags every request with a fresh UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
		logger.WithFields(map[string]interface{}{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Debug("request handled")
	})
}

func newRouter() *chi.Mux {
	users := repository.NewUserRepository()
	stocks := repository.NewStockRepository()
	stockReads := repository.NewStockRepositoryReadOnly()
	portfolios := repository.NewPortfolioRepository()
	portfolioReads := repository.NewPortfolioRepositoryReadOnly()
	holdings := repository.NewHoldingRepository()
	transactions := repository.NewTransactionRepository()
	alerts := repository.NewPriceAlertRepository()
	watchLists := repository.NewWatchListRepository()
	indices := repository.NewMarketIndexRepository()

	// Router with middleware
	r := chi.NewRouter()
	r.Use(requestID)

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck error")
		}
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", handler.CreateUserHandler(users))
		r.Get("/{id}", handler.GetUserHandler(users))
		r.Patch("/{id}", handler.UpdateUserHandler(users))
	})

	r.Route("/stocks", func(r chi.Router) {
		r.Post("/", handler.CreateStockHandler(stocks))
		r.Get("/", handler.SearchStocksHandler(stocks))
		r.Get("/{symbol}", handler.GetStockHandler(stocks))
		r.Get("/{symbol}/quote", handler.StockQuoteHandler(stockReads))
		r.Patch("/{symbol}", handler.UpdateStockHandler(stocks))
	})

	r.Route("/portfolios", func(r chi.Router) {
		r.Post("/", handler.CreatePortfolioHandler(portfolios))
		r.Get("/", handler.ListUserPortfoliosHandler(portfolios))
		r.Get("/{id}", handler.GetPortfolioHandler(portfolios))
		r.Patch("/{id}", handler.UpdatePortfolioHandler(portfolios))
		r.Get("/{id}/summary", handler.PortfolioSummaryHandler(portfolioReads))
		r.Get("/{id}/holdings", handler.ListPortfolioHoldingsHandler(holdings))
	})

	r.Route("/holdings", func(r chi.Router) {
		r.Post("/", handler.CreateHoldingHandler(holdings))
		r.Get("/{id}", handler.GetHoldingHandler(holdings))
		r.Get("/{id}/transactions", handler.SearchTransactionsHandler(transactions))
	})

	r.Post("/transactions", handler.CreateTransactionHandler(transactions))

	r.Route("/alerts", func(r chi.Router) {
		r.Post("/", handler.CreateAlertHandler(alerts))
		r.Get("/", handler.ListUserAlertsHandler(alerts))
		r.Patch("/{id}", handler.UpdateAlertHandler(alerts))
		r.Post("/{id}/disable", handler.DisableAlertHandler(alerts))
	})

	r.Route("/watchlists", func(r chi.Router) {
		r.Post("/", handler.CreateWatchListHandler(watchLists))
		r.Get("/", handler.ListUserWatchListsHandler(watchLists))
		r.Patch("/{id}", handler.UpdateWatchListHandler(watchLists))
	})

	r.Route("/indices", func(r chi.Router) {
		r.Get("/", handler.ListIndicesHandler(indices))
		r.Get("/{symbol}", handler.GetIndexHandler(indices))
	})

	return r
}

func StartServer(port string) {
	if port == "" {
		port = GetConfig().Port
	}

	r := newRouter()

	// Graceful server
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
