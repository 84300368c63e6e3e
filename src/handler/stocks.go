package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"

	logger "github.com/sirupsen/logrus"
)

type stockStore interface {
	Create(ctx context.Context, stock *model.Stock) error
	FindBySymbol(ctx context.Context, symbol string) (*model.Stock, error)
	Search(ctx context.Context, opts repository.StockSearchOptions) ([]model.Stock, error)
	Update(ctx context.Context, id uint, payload model.StockUpdate) (*model.Stock, error)
}

type stockQuoter interface {
	Quote(ctx context.Context, symbol string) (*model.StockQuote, error)
}

func CreateStockHandler(repo stockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.StockCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid stock create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		payload.Symbol = strings.ToUpper(strings.TrimSpace(payload.Symbol))

		stock, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), stock); err != nil {
			logger.WithError(err).Error("failed to create stock")
			http.Error(w, "Unable to create stock", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, stock)
	}
}

func GetStockHandler(repo stockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(symbolParam(r))

		stock, err := repo.FindBySymbol(r.Context(), symbol)
		if err != nil {
			http.Error(w, "Unable to fetch stock", http.StatusInternalServerError)
			return
		}
		if stock == nil {
			http.Error(w, "Stock not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, stock)
	}
}

// SearchStocksHandler lists stocks with optional exchange/sector filters and
// pagination (page, pageSize).
func SearchStocksHandler(repo stockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = parsedPage
		}

		pageSize := 50
		if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			pageSize = parsedSize
		}

		stocks, err := repo.Search(r.Context(), repository.StockSearchOptions{
			Exchange: r.URL.Query().Get("exchange"),
			Sector:   r.URL.Query().Get("sector"),
			Limit:    pageSize,
			Offset:   (page - 1) * pageSize,
		})
		if err != nil {
			http.Error(w, "Unable to list stocks", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, stocks)
	}
}

// UpdateStockHandler patches the stock named by its symbol. Stocks are
// addressed by symbol everywhere on the HTTP surface.
func UpdateStockHandler(repo stockStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(symbolParam(r))

		var payload model.StockUpdate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid stock update payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		existing, err := repo.FindBySymbol(r.Context(), symbol)
		if err != nil {
			http.Error(w, "Unable to fetch stock", http.StatusInternalServerError)
			return
		}
		if existing == nil {
			http.Error(w, "Stock not found", http.StatusNotFound)
			return
		}

		stock, err := repo.Update(r.Context(), existing.ID, payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if stock == nil {
			http.Error(w, "Stock not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, stock)
	}
}

func StockQuoteHandler(repo stockQuoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(symbolParam(r))

		quote, err := repo.Quote(r.Context(), symbol)
		if err != nil {
			http.Error(w, "Unable to fetch quote", http.StatusInternalServerError)
			return
		}
		if quote == nil {
			http.Error(w, "Stock not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, quote)
	}
}
