package handler

import (
	"context"
	"net/http"

	"portfoliotracker/src/model"

	logger "github.com/sirupsen/logrus"
)

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, id uint, payload model.UserUpdate) (*model.User, error)
}

func CreateUserHandler(repo userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.UserCreate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid user create payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		user, err := payload.Model()
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if err := repo.Create(r.Context(), user); err != nil {
			logger.WithError(err).Error("failed to create user")
			http.Error(w, "Unable to create user", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

func GetUserHandler(repo userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		user, err := repo.FindByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Unable to fetch user", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func UpdateUserHandler(repo userStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id")
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var payload model.UserUpdate
		if err := decodeStrict(r, &payload); err != nil {
			logger.WithError(err).Warn("invalid user update payload")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		user, err := repo.Update(r.Context(), id, payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if user == nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
