package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

// WatchListRepository handles user watch lists.
type WatchListRepository struct {
	db *gorm.DB
}

func NewWatchListRepository() *WatchListRepository {
	logger.WithField("component", "WatchListRepository").
		Info("Creating new WatchListRepository with MainDB")

	return &WatchListRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *WatchListRepository) WithDB(db *gorm.DB) *WatchListRepository {
	return &WatchListRepository{db: db}
}

func (r *WatchListRepository) Create(ctx context.Context, list *model.WatchList) error {
	if err := model.Validate(list); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(list).Error
}

// FindByID returns (nil, nil) if the watch list is not found.
func (r *WatchListRepository) FindByID(ctx context.Context, id uint) (*model.WatchList, error) {
	var w model.WatchList
	err := r.db.WithContext(ctx).First(&w, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WatchListRepository) FindByUser(ctx context.Context, userID uint) ([]model.WatchList, error) {
	var lists []model.WatchList
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// Update applies a partial update and persists the merged record.
// Returns (nil, nil) if the watch list does not exist.
func (r *WatchListRepository) Update(
	ctx context.Context,
	id uint,
	payload model.WatchListUpdate,
) (*model.WatchList, error) {

	if err := model.Validate(payload); err != nil {
		return nil, err
	}

	list, err := r.FindByID(ctx, id)
	if err != nil || list == nil {
		return list, err
	}

	payload.Apply(list)
	if err := model.Validate(list); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "WatchListRepository",
			"op":   "Update",
			"id":   id,
		}).WithError(err).Error("Failed to update watch list")
		return nil, err
	}

	return list, nil
}
