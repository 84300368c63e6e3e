package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"portfoliotracker/src/database"
	"portfoliotracker/src/model"
)

// ErrAlertNotActive is returned when a lifecycle transition is requested on
// an alert that already reached a terminal state.
var ErrAlertNotActive = errors.New("price alert is not active")

// PriceAlertRepository handles alerts and their lifecycle transitions.
type PriceAlertRepository struct {
	db *gorm.DB
}

func NewPriceAlertRepository() *PriceAlertRepository {
	logger.WithField("component", "PriceAlertRepository").
		Info("Creating new PriceAlertRepository with MainDB")

	return &PriceAlertRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *PriceAlertRepository) WithDB(db *gorm.DB) *PriceAlertRepository {
	return &PriceAlertRepository{db: db}
}

func (r *PriceAlertRepository) Create(ctx context.Context, alert *model.PriceAlert) error {
	if err := model.Validate(alert); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(alert).Error
}

// FindByID returns (nil, nil) if the alert is not found.
func (r *PriceAlertRepository) FindByID(ctx context.Context, id uint) (*model.PriceAlert, error) {
	var a model.PriceAlert
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindByUser resolves the user -> alerts back-reference, newest first.
func (r *PriceAlertRepository) FindByUser(ctx context.Context, userID uint) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindActiveByStock returns the alerts still armed for one stock. The alert
// evaluator polls this set against fresh quotes.
func (r *PriceAlertRepository) FindActiveByStock(ctx context.Context, stockID uint) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.db.WithContext(ctx).
		Where("stock_id = ? AND status = ?", stockID, model.AlertStatusActive).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindActive returns every armed alert across all stocks, oldest first so
// long-waiting alerts are evaluated before fresh ones.
func (r *PriceAlertRepository) FindActive(ctx context.Context) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.db.WithContext(ctx).
		Where("status = ?", model.AlertStatusActive).
		Order("created_at ASC, id ASC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// Update applies a partial update. Moving status away from active goes
// through MarkTriggered/Disable so the guard below cannot be bypassed:
// a status change on a non-active alert is rejected.
func (r *PriceAlertRepository) Update(
	ctx context.Context,
	id uint,
	payload model.PriceAlertUpdate,
) (*model.PriceAlert, error) {

	if err := model.Validate(payload); err != nil {
		return nil, err
	}

	alert, err := r.FindByID(ctx, id)
	if err != nil || alert == nil {
		return alert, err
	}

	if payload.Status != nil && alert.Status != model.AlertStatusActive && *payload.Status != alert.Status {
		return nil, ErrAlertNotActive
	}

	payload.Apply(alert)
	if err := model.Validate(alert); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(alert).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "PriceAlertRepository",
			"op":   "Update",
			"id":   id,
		}).WithError(err).Error("Failed to update price alert")
		return nil, err
	}

	return alert, nil
}

// MarkTriggered moves an active alert to triggered, recording when and at
// what price. The WHERE guard makes the transition race-safe: once a row
// left active, concurrent triggers affect zero rows.
func (r *PriceAlertRepository) MarkTriggered(
	ctx context.Context,
	id uint,
	price decimal.Decimal,
	at time.Time,
) error {

	result := r.db.WithContext(ctx).
		Model(&model.PriceAlert{}).
		Where("id = ? AND status = ?", id, model.AlertStatusActive).
		Updates(map[string]interface{}{
			"status":          model.AlertStatusTriggered,
			"triggered_at":    at,
			"triggered_price": price.Round(4),
		})

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "PriceAlertRepository",
			"op":   "MarkTriggered",
			"id":   id,
		}).WithError(result.Error).Error("Failed to trigger price alert")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAlertNotActive
	}

	logger.WithFields(map[string]interface{}{
		"repo": "PriceAlertRepository",
		"op":   "MarkTriggered",
		"id":   id,
	}).Info("Price alert triggered")

	return nil
}

// Disable moves an active alert to disabled. Triggered and disabled are both
// terminal; disabling anything else returns ErrAlertNotActive.
func (r *PriceAlertRepository) Disable(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.PriceAlert{}).
		Where("id = ? AND status = ?", id, model.AlertStatusActive).
		Update("status", model.AlertStatusDisabled)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAlertNotActive
	}

	return nil
}
