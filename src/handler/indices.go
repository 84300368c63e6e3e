package handler

import (
	"context"
	"net/http"
	"strings"

	"portfoliotracker/src/model"
)

type indexStore interface {
	List(ctx context.Context) ([]model.MarketIndex, error)
	FindBySymbol(ctx context.Context, symbol string) (*model.MarketIndex, error)
}

func ListIndicesHandler(repo indexStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indices, err := repo.List(r.Context())
		if err != nil {
			http.Error(w, "Unable to list indices", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, indices)
	}
}

func GetIndexHandler(repo indexStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(symbolParam(r))

		index, err := repo.FindBySymbol(r.Context(), symbol)
		if err != nil {
			http.Error(w, "Unable to fetch index", http.StatusInternalServerError)
			return
		}
		if index == nil {
			http.Error(w, "Index not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, index)
	}
}
