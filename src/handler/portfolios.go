package handler

import (
	"context"
	"net/http"
	"strconv"

	"portfoliotracker/src/model"

	logger "github.com/sirupsen/logrus"
)

type portfolioStore interface {
	Create(ctx context.Context, portfolio *model.Portfolio) error
	FindByID(ctx context.Context, id uint) (*model.Portfolio, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Portfolio, error)
	Update(ctx context.Context, id uint, payload model.PortfolioUpdate) (*model.Portfolio, error)
}

type portfolioSummarizer interface {
	Summary(ctx context.Context, id uint) (*model.PortfolioSummary, error)
}

func CreatePortfolioHandler(repo portfolioStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.PortfolioCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid portfolio create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		portfolio, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), portfolio); err != nil {
			logger.WithError(err).Error("failed to create portfolio")
			http.Error(w, "Unable to create portfolio", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, portfolio)
	}
}

func GetPortfolioHandler(repo portfolioStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		portfolio, err := repo.FindByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Unable to fetch portfolio", http.StatusInternalServerError)
			return
		}
		if portfolio == nil {
			http.Error(w, "Portfolio not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, portfolio)
	}
}

// ListUserPortfoliosHandler lists the portfolios of the user named by the
// userId query parameter.
func ListUserPortfoliosHandler(repo portfolioStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userParam := r.URL.Query().Get("userId")
		userID, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil || userID == 0 {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}

		portfolios, err := repo.FindByUser(r.Context(), uint(userID))
		if err != nil {
			http.Error(w, "Unable to list portfolios", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, portfolios)
	}
}

func UpdatePortfolioHandler(repo portfolioStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var payload model.PortfolioUpdate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid portfolio update payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		portfolio, err := repo.Update(r.Context(), id, payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if portfolio == nil {
			http.Error(w, "Portfolio not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, portfolio)
	}
}

func PortfolioSummaryHandler(repo portfolioSummarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		summary, err := repo.Summary(r.Context(), id)
		if err != nil {
			http.Error(w, "Unable to build summary", http.StatusInternalServerError)
			return
		}
		if summary == nil {
			http.Error(w, "Portfolio not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
