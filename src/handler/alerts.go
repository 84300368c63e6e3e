package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"

	logger "github.com/sirupsen/logrus"
)

type alertStore interface {
	Create(ctx context.Context, alert *model.PriceAlert) error
	FindByUser(ctx context.Context, userID uint) ([]model.PriceAlert, error)
	Update(ctx context.Context, id uint, payload model.PriceAlertUpdate) (*model.PriceAlert, error)
	Disable(ctx context.Context, id uint) error
}

func CreateAlertHandler(repo alertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.PriceAlertCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid alert create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		alert, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), alert); err != nil {
			logger.WithError(err).Error("failed to create alert")
			http.Error(w, "Unable to create alert", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, alert)
	}
}

// ListUserAlertsHandler lists the alerts of the user named by the userId
// query parameter.
func ListUserAlertsHandler(repo alertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userParam := r.URL.Query().Get("userId")
		userID, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil || userID == 0 {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}

		alerts, err := repo.FindByUser(r.Context(), uint(userID))
		if err != nil {
			http.Error(w, "Unable to list alerts", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, alerts)
	}
}

func UpdateAlertHandler(repo alertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var payload model.PriceAlertUpdate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid alert update payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		alert, err := repo.Update(r.Context(), id, payload)
		if err != nil {
			if errors.Is(err, repository.ErrAlertNotActive) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if alert == nil {
			http.Error(w, "Alert not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, alert)
	}
}

func DisableAlertHandler(repo alertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := repo.Disable(r.Context(), id); err != nil {
			if errors.Is(err, repository.ErrAlertNotActive) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, "Unable to disable alert", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
