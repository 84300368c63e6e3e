package handler

import (
	"context"
	"net/http"

	"portfoliotracker/src/model"

	logger "github.com/sirupsen/logrus"
)

type holdingStore interface {
	Create(ctx context.Context, holding *model.PortfolioHolding) error
	FindByID(ctx context.Context, id uint) (*model.PortfolioHolding, error)
	FindByPortfolio(ctx context.Context, portfolioID uint) ([]model.PortfolioHolding, error)
}

func CreateHoldingHandler(repo holdingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.PortfolioHoldingCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid holding create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		holding, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), holding); err != nil {
			logger.WithError(err).Error("failed to create holding")
			http.Error(w, "Unable to create holding", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, holding)
	}
}

func GetHoldingHandler(repo holdingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		holding, err := repo.FindByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Unable to fetch holding", http.StatusInternalServerError)
			return
		}
		if holding == nil {
			http.Error(w, "Holding not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, holding)
	}
}

// ListPortfolioHoldingsHandler lists the positions inside one portfolio.
func ListPortfolioHoldingsHandler(repo holdingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		holdings, err := repo.FindByPortfolio(r.Context(), portfolioID)
		if err != nil {
			http.Error(w, "Unable to list holdings", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, holdings)
	}
}
