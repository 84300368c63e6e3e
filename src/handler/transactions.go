package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"

	logger "github.com/sirupsen/logrus"
)

type transactionStore interface {
	Create(ctx context.Context, tx *model.Transaction) error
	Search(ctx context.Context, opts repository.TransactionSearchOptions) ([]model.Transaction, error)
}

func CreateTransactionHandler(repo transactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.TransactionCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid transaction create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		tx, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), tx); err != nil {
			logger.WithError(err).Error("failed to create transaction")
			http.Error(w, "Unable to create transaction", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, tx)
	}
}

// SearchTransactionsHandler lists the fills of one holding.
// Supports pagination and filters (type, from, to).
func SearchTransactionsHandler(repo transactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		holdingID, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var txType *string
		if typeParam := r.URL.Query().Get("type"); typeParam != "" {
			txType = &typeParam
		}

		var after, before *time.Time
		if fromParam := r.URL.Query().Get("from"); fromParam != "" {
			parsed, err := time.Parse(time.RFC3339, fromParam)
			if err != nil {
				http.Error(w, "invalid from", http.StatusBadRequest)
				return
			}
			after = &parsed
		}

		if toParam := r.URL.Query().Get("to"); toParam != "" {
			parsed, err := time.Parse(time.RFC3339, toParam)
			if err != nil {
				http.Error(w, "invalid to", http.StatusBadRequest)
				return
			}
			before = &parsed
		}

		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = parsedPage
		}

		pageSize := 20
		if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			pageSize = parsedSize
		}

		txs, err := repo.Search(r.Context(), repository.TransactionSearchOptions{
			HoldingID:       holdingID,
			TransactionType: txType,
			After:           after,
			Before:          before,
			Limit:           pageSize,
			Offset:          (page - 1) * pageSize,
		})
		if err != nil {
			http.Error(w, "Unable to list transactions", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, txs)
	}
}
