package handler

import (
	"context"
	"net/http"
	"strconv"

	"portfoliotracker/src/model"

	logger "github.com/sirupsen/logrus"
)

type watchListStore interface {
	Create(ctx context.Context, list *model.WatchList) error
	FindByUser(ctx context.Context, userID uint) ([]model.WatchList, error)
	Update(ctx context.Context, id uint, payload model.WatchListUpdate) (*model.WatchList, error)
}

func CreateWatchListHandler(repo watchListStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.WatchListCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid watch list create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		list, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), list); err != nil {
			logger.WithError(err).Error("failed to create watch list")
			http.Error(w, "Unable to create watch list", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, list)
	}
}

// ListUserWatchListsHandler lists the watch lists of the user named by the
// userId query parameter.
func ListUserWatchListsHandler(repo watchListStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userParam := r.URL.Query().Get("userId")
		userID, err := strconv.ParseUint(userParam, 10, 64)
		if err != nil || userID == 0 {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}

		lists, err := repo.FindByUser(r.Context(), uint(userID))
		if err != nil {
			http.Error(w, "Unable to list watch lists", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, lists)
	}
}

func UpdateWatchListHandler(repo watchListStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var payload model.WatchListUpdate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid watch list update payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		list, err := repo.Update(r.Context(), id, payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if list == nil {
			http.Error(w, "Watch list not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}
