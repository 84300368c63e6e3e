package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository() *GormUserRepository {
	logger.WithField("component", "GormUserRepository").
		Info("Creating new GormUserRepository with MainDB")

	return &GormUserRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *GormUserRepository) WithDB(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := model.Validate(user); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID fetches a single user by its primary ID.
// Returns (nil, nil) if the user is not found.
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByUsername(
	ctx context.Context,
	username string,
) (*model.User, error) {

	var u model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

func (r *GormUserRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*model.User, error) {

	var u model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// Update applies a partial update and persists the merged record.
// Returns (nil, nil) if the user does not exist.
func (r *GormUserRepository) Update(
	ctx context.Context,
	id uint,
	payload model.UserUpdate,
) (*model.User, error) {

	if err := model.Validate(payload); err != nil {
		return nil, err
	}

	user, err := r.FindByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}

	payload.Apply(user)
	if err := model.Validate(user); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "GormUserRepository",
			"op":   "Update",
			"id":   id,
		}).WithError(err).Error("Failed to update user")
		return nil, err
	}

	return user, nil
}
